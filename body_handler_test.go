package engine

import (
	"math"
	"strings"
	"testing"
)

// newMountedActor builds a width x height box actor of the given type
// and mounts it into the layer at position (x, y).
func newMountedActor(layer *Layer, bodyType BodyType, x, y, width, height float64) *Actor {
	actor := newTestActor(width, height)
	actor.SetBodyType(bodyType)
	actor.SetPosition(x, y)
	layer.Add(actor)
	return actor
}

func TestIsGrounded(t *testing.T) {
	layer := NewLayer()
	layer.SetGravityOfEarth()

	// Ground surface at y=0.
	newMountedActor(layer, Static, -5, -1, 10, 1)
	box := newMountedActor(layer, Dynamic, 0, 0, 1, 1)

	if !box.IsGrounded() {
		t.Error("box resting on the ground reports IsGrounded() = false")
	}

	// Broad-phase bounds are slightly fattened, so test well above them.
	box.MoveBy(NewVector(0, 0.5))
	if box.IsGrounded() {
		t.Error("airborne box reports IsGrounded() = true")
	}
}

func TestIsGroundedIgnoresNonStaticGround(t *testing.T) {
	layer := NewLayer()

	// A kinematic platform does not count as ground.
	newMountedActor(layer, Kinematic, -5, -1, 10, 1)
	box := newMountedActor(layer, Dynamic, 0, 0, 1, 1)

	if box.IsGrounded() {
		t.Error("box on a kinematic platform reports IsGrounded() = true")
	}
}

func TestIsGroundedPanicsForNonDynamic(t *testing.T) {
	layer := NewLayer()
	actor := newMountedActor(layer, Static, 0, 0, 1, 1)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a static body")
		}
	}()
	actor.IsGrounded()
}

func TestSetTypeUpdatesFixtureFilters(t *testing.T) {
	layer := NewLayer()
	actor := newMountedActor(layer, Sensor, 0, 0, 1, 1)

	types := []BodyType{Static, Kinematic, Dynamic, Particle, Sensor}
	for _, bodyType := range types {
		actor.SetBodyType(bodyType)

		wantFilter, wantSensor := bodyType.filter()
		body := actor.PhysicsHandler().Body()
		for fixture := body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
			filter := fixture.GetFilterData()
			if filter.CategoryBits != wantFilter.CategoryBits {
				t.Errorf("%v: category = %#x, want %#x", bodyType, filter.CategoryBits, wantFilter.CategoryBits)
			}
			if filter.MaskBits != wantFilter.MaskBits {
				t.Errorf("%v: mask = %#x, want %#x", bodyType, filter.MaskBits, wantFilter.MaskBits)
			}
			if fixture.IsSensor() != wantSensor {
				t.Errorf("%v: sensor = %v, want %v", bodyType, fixture.IsSensor(), wantSensor)
			}
		}
		if got := body.GetType(); got != bodyType.toB2Kind() {
			t.Errorf("%v: body kind = %d, want %d", bodyType, got, bodyType.toB2Kind())
		}
	}
}

func TestSetTypeRefiltersExistingContacts(t *testing.T) {
	layer := NewLayer()
	a := newMountedActor(layer, Dynamic, 0, 0, 1, 1)
	b := newMountedActor(layer, Dynamic, 0.5, 0.5, 1, 1)

	layer.step(1.0 / 60)
	if !layer.WorldHandler().IsBodyCollision(a.PhysicsHandler().Body(), b.PhysicsHandler().Body()) {
		t.Fatal("overlapping dynamic boxes do not touch")
	}

	// Dynamic and particle bodies never collide with each other; the
	// stale contact must not survive the type change.
	b.SetBodyType(Particle)
	layer.step(1.0 / 60)
	if layer.WorldHandler().IsBodyCollision(a.PhysicsHandler().Body(), b.PhysicsHandler().Body()) {
		t.Error("dynamic/particle contact survived the type change")
	}
}

func TestContains(t *testing.T) {
	layer := NewLayer()
	actor := newMountedActor(layer, Static, 1, 1, 2, 2)

	if !actor.Contains(NewVector(2, 2)) {
		t.Error("point inside the box not contained")
	}
	if actor.Contains(NewVector(4, 4)) {
		t.Error("point outside the box contained")
	}
}

func TestGetCenter(t *testing.T) {
	layer := NewLayer()

	static := newMountedActor(layer, Static, 1, 1, 2, 4)
	if got := static.Center(); !almostEqual(got.X, 2) || !almostEqual(got.Y, 3) {
		t.Errorf("static center = %v, want (2|3)", got)
	}

	dynamic := newMountedActor(layer, Dynamic, 0, 0, 2, 2)
	if got := dynamic.Center(); !almostEqual(got.X, 1) || !almostEqual(got.Y, 1) {
		t.Errorf("dynamic center = %v, want the center of mass (1|1)", got)
	}
}

func TestSetFixturesReplacesShapes(t *testing.T) {
	layer := NewLayer()
	actor := newMountedActor(layer, Dynamic, 0, 0, 1, 1)
	actor.SetDensity(1)

	actor.SetFixture(func() *FixtureData {
		return RectangleFixture(2, 2)
	})

	if !actor.Contains(NewVector(1.5, 1.5)) {
		t.Error("point inside the replacement shape not contained")
	}
	// A 2x2 box of density 1 weighs 4 kg.
	if got := actor.Mass(); !almostEqual(got, 4) {
		t.Errorf("mass = %g after fixture swap, want 4", got)
	}
	// Material carries over to the new fixtures.
	if got := actor.Density(); !almostEqual(got, 1) {
		t.Errorf("density = %g after fixture swap, want 1", got)
	}
}

func TestGetCollisionsListsTouchingActors(t *testing.T) {
	layer := NewLayer()
	a := newMountedActor(layer, Dynamic, 0, 0, 1, 1)
	b := newMountedActor(layer, Dynamic, 0.5, 0, 1, 1)
	newMountedActor(layer, Dynamic, 10, 10, 1, 1) // far away

	layer.step(1.0 / 60)

	collisions := a.GetCollisions()
	if len(collisions) != 1 {
		t.Fatalf("got %d collisions, want 1", len(collisions))
	}
	if collisions[0].Colliding() != b {
		t.Error("collision partner is not the overlapping actor")
	}
}

func TestCollisionListenersDispatch(t *testing.T) {
	layer := NewLayer()
	layer.SetGravityOfEarth()

	ground := newMountedActor(layer, Static, -5, -1, 10, 1)
	box := newMountedActor(layer, Dynamic, 0, 0.2, 1, 1)

	var begun, ended []*Actor
	box.AddCollisionListener(collisionRecorder{begun: &begun, ended: &ended})

	// Falls onto the ground, then is lifted away again.
	for i := 0; i < 60; i++ {
		layer.step(1.0 / 60)
	}
	if len(begun) == 0 || begun[0] != ground {
		t.Fatalf("collision begin not dispatched, got %v", begun)
	}

	box.MoveBy(NewVector(0, 5))
	box.ResetMovement()
	layer.step(1.0 / 60)
	if len(ended) == 0 || ended[0] != ground {
		t.Fatalf("collision end not dispatched, got %v", ended)
	}
}

type collisionRecorder struct {
	begun *[]*Actor
	ended *[]*Actor
}

func (r collisionRecorder) OnCollision(event CollisionEvent) {
	*r.begun = append(*r.begun, event.Colliding())
}

func (r collisionRecorder) OnCollisionEnd(event CollisionEvent) {
	*r.ended = append(*r.ended, event.Colliding())
}

func TestStructuralMutationDuringStepPanics(t *testing.T) {
	layer := NewLayer()
	layer.SetGravityOfEarth()

	newMountedActor(layer, Static, -5, -1, 10, 1)
	box := newMountedActor(layer, Dynamic, 0, 0.1, 1, 1)

	// Moving a body from a collision callback would corrupt the step.
	box.AddCollisionListener(CollisionListenerFunc(func(CollisionEvent) {
		box.MoveBy(NewVector(1, 0))
	}))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic from the reentrant mutation")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "world step") {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	for i := 0; i < 60; i++ {
		layer.step(1.0 / 60)
	}
}

func TestBodyHandlerDensityMustBePositive(t *testing.T) {
	layer := NewLayer()
	actor := newMountedActor(layer, Dynamic, 0, 0, 1, 1)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	actor.SetDensity(-1)
}

func TestBodyHandlerRejectsNaN(t *testing.T) {
	layer := NewLayer() // no gravity
	actor := newMountedActor(layer, Dynamic, 0, 0, 1, 1)
	actor.SetVelocity(NewVector(2, 1))
	actor.SetAngularVelocity(0.5)
	actor.SetRotation(30)

	nan := math.NaN()
	actor.SetVelocity(NewVector(nan, 0))
	actor.SetVelocity(NewVector(0, nan))
	actor.SetAngularVelocity(nan)
	actor.ApplyForce(NewVector(nan, nan))
	actor.ApplyForceAt(NewVector(1, 1), NewVector(nan, 0))
	actor.ApplyImpulse(NewVector(nan, 0))
	actor.ApplyTorque(nan)
	actor.ApplyRotationImpulse(nan)
	actor.MoveBy(NewVector(nan, 0))
	actor.SetRotation(nan)
	actor.RotateBy(nan)
	actor.SetGravityScale(nan)

	layer.step(1.0 / 60)

	if got := actor.Velocity(); !almostEqual(got.X, 2) || !almostEqual(got.Y, 1) {
		t.Errorf("velocity = %v, want (2|1)", got)
	}
	if got := actor.AngularVelocity(); !almostEqual(got, 0.5) {
		t.Errorf("angular velocity = %g, want 0.5", got)
	}
	if got := actor.Position(); math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Errorf("position corrupted to %v", got)
	}
	if math.IsNaN(actor.Rotation()) {
		t.Errorf("rotation corrupted to %g", actor.Rotation())
	}
	if got := actor.GravityScale(); !almostEqual(got, 1) {
		t.Errorf("gravity scale = %g, want 1", got)
	}
}

func TestMaterialGettersWithoutFixtures(t *testing.T) {
	layer := NewLayer()
	actor := newMountedActor(layer, Dynamic, 0, 0, 1, 1)

	// A supplier may legitimately produce no fixtures at all.
	actor.SetFixtures(func() []*FixtureData { return nil })

	if got := actor.Density(); got != 0 {
		t.Errorf("density = %g without fixtures, want 0", got)
	}
	if got := actor.Friction(); got != 0 {
		t.Errorf("friction = %g without fixtures, want 0", got)
	}
	if got := actor.Restitution(); got != 0 {
		t.Errorf("restitution = %g without fixtures, want 0", got)
	}
}
