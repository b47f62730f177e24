package engine

import (
	"math"
	"sync"
	"testing"
)

func newTestActor(width, height float64) *Actor {
	return NewActor(func() *FixtureData {
		return RectangleFixture(width, height)
	})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-5
}

func TestMountRealizesDetachedState(t *testing.T) {
	actor := newTestActor(1, 1)
	actor.SetPosition(2, 3)
	actor.SetRotation(45)
	actor.SetBodyType(Dynamic)
	actor.SetVelocity(NewVector(1, -1))
	actor.SetAngularVelocity(0.5)
	actor.SetGravityScale(2)
	actor.SetLinearDamping(0.1)
	actor.SetAngularDamping(0.2)
	actor.SetRotationLocked(true)
	actor.SetDensity(3)
	actor.SetFriction(0.4)
	actor.SetRestitution(0.6)

	layer := NewLayer()
	layer.Add(actor)

	if !actor.IsMounted() {
		t.Fatal("actor not mounted after Add")
	}
	if actor.PhysicsHandler().Body() == nil {
		t.Fatal("mounted actor has no live body")
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"x", actor.Position().X, 2},
		{"y", actor.Position().Y, 3},
		{"rotation", actor.Rotation(), 45},
		{"velocity x", actor.Velocity().X, 1},
		{"velocity y", actor.Velocity().Y, -1},
		{"angular velocity", actor.AngularVelocity(), 0.5},
		{"gravity scale", actor.GravityScale(), 2},
		{"linear damping", actor.LinearDamping(), 0.1},
		{"angular damping", actor.AngularDamping(), 0.2},
		{"density", actor.Density(), 3},
		{"friction", actor.Friction(), 0.4},
		{"restitution", actor.Restitution(), 0.6},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s = %g, want %g", c.name, c.got, c.want)
		}
	}
	if actor.BodyType() != Dynamic {
		t.Errorf("body type = %v, want dynamic", actor.BodyType())
	}
	if !actor.IsRotationLocked() {
		t.Error("rotation lock lost on mount")
	}
	// A 1x1 box of density 3 weighs 3 kg.
	if !almostEqual(actor.Mass(), 3) {
		t.Errorf("mass = %g, want 3", actor.Mass())
	}
}

func TestUnmountSnapshotsLiveState(t *testing.T) {
	actor := newTestActor(1, 1)
	actor.MakeDynamic()
	actor.SetDensity(1)

	layer := NewLayer()
	layer.SetGravityOfEarth()
	layer.Add(actor)

	for i := 0; i < 10; i++ {
		layer.step(1.0 / 60)
	}
	position := actor.Position()
	velocity := actor.Velocity()
	mass := actor.Mass()

	layer.Remove(actor)
	if actor.IsMounted() {
		t.Fatal("actor still mounted after Remove")
	}
	if actor.PhysicsHandler().Body() != nil {
		t.Fatal("detached actor still owns a body")
	}

	if got := actor.Position(); !almostEqual(got.X, position.X) || !almostEqual(got.Y, position.Y) {
		t.Errorf("position = %v, want %v", got, position)
	}
	if got := actor.Velocity(); !almostEqual(got.X, velocity.X) || !almostEqual(got.Y, velocity.Y) {
		t.Errorf("velocity = %v, want %v", got, velocity)
	}
	if got := actor.Mass(); !almostEqual(got, mass) {
		t.Errorf("mass = %g, want the recorded %g", got, mass)
	}
	if actor.BodyType() != Dynamic {
		t.Errorf("body type = %v, want dynamic", actor.BodyType())
	}
}

func TestRemountRoundTrip(t *testing.T) {
	actor := newTestActor(2, 1)
	actor.MakeDynamic()
	actor.SetPosition(-1, 4)
	actor.SetVelocity(NewVector(2, 0))
	actor.SetAngularVelocity(-0.25)

	first := NewLayer()
	first.Add(actor)
	first.Remove(actor)

	second := NewLayer()
	second.Add(actor)

	if got := actor.Position(); !almostEqual(got.X, -1) || !almostEqual(got.Y, 4) {
		t.Errorf("position = %v after remount", got)
	}
	if got := actor.Velocity(); !almostEqual(got.X, 2) || !almostEqual(got.Y, 0) {
		t.Errorf("velocity = %v after remount", got)
	}
	if got := actor.AngularVelocity(); !almostEqual(got, -0.25) {
		t.Errorf("angular velocity = %g after remount", got)
	}
	if actor.Layer() != second {
		t.Error("actor not mounted in the second layer")
	}
}

func TestMountIsIdempotent(t *testing.T) {
	actor := newTestActor(1, 1)
	layer := NewLayer()
	layer.Add(actor)
	body := actor.PhysicsHandler().Body()

	// A second Add must not create a second body.
	layer.Add(actor)
	if got := actor.PhysicsHandler().Body(); got != body {
		t.Error("second Add replaced the body")
	}
	if got := len(layer.Actors()); got != 1 {
		t.Errorf("layer holds %d actors, want 1", got)
	}

	// Adding to another layer while mounted is ignored too.
	other := NewLayer()
	other.Add(actor)
	if actor.Layer() != layer {
		t.Error("mounted actor was stolen by another layer")
	}
	if got := len(other.Actors()); got != 0 {
		t.Errorf("other layer holds %d actors, want 0", got)
	}
}

func TestConcurrentAddMountsOnce(t *testing.T) {
	layer := NewLayer()
	world := layer.WorldHandler().World()

	const actorCount = 25
	for i := 0; i < actorCount; i++ {
		actor := newTestActor(1, 1)
		var wg sync.WaitGroup
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				layer.Add(actor)
			}()
		}
		wg.Wait()
	}

	if got := len(layer.Actors()); got != actorCount {
		t.Errorf("layer holds %d actors, want %d", got, actorCount)
	}
	// Losers of the mount race must destroy their freshly created body.
	if got := world.GetBodyCount(); got != actorCount {
		t.Errorf("world holds %d bodies, want %d", got, actorCount)
	}
}

func TestConcurrentRemoveUnmountsOnce(t *testing.T) {
	layer := NewLayer()
	world := layer.WorldHandler().World()
	actor := newTestActor(1, 1)
	layer.Add(actor)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			layer.Remove(actor)
		}()
	}
	wg.Wait()

	if actor.IsMounted() {
		t.Fatal("actor still mounted")
	}
	if got := world.GetBodyCount(); got != 0 {
		t.Errorf("world holds %d bodies, want 0", got)
	}
	if got := len(layer.Actors()); got != 0 {
		t.Errorf("layer holds %d actors, want 0", got)
	}
}

func TestUnmountIsIdempotent(t *testing.T) {
	actor := newTestActor(1, 1)
	layer := NewLayer()

	// Removing a never-mounted actor is a no-op.
	layer.Remove(actor)

	layer.Add(actor)
	layer.Remove(actor)
	layer.Remove(actor)
	if actor.IsMounted() {
		t.Fatal("actor still mounted")
	}
}

func TestDeferredImpulseReplayedOnMount(t *testing.T) {
	actor := newTestActor(1, 1)
	actor.MakeDynamic()
	actor.SetDensity(1) // 1x1 box of density 1: mass 1 kg

	// Applied while detached, queued for the mount.
	actor.ApplyImpulse(NewVector(10, 0))

	layer := NewLayer() // no gravity
	layer.Add(actor)
	layer.step(1.0 / 60)

	// Impulse = mass * delta-v, so 10 Ns on 1 kg yields 10 m/s.
	if got := actor.Velocity(); !almostEqual(got.X, 10) || !almostEqual(got.Y, 0) {
		t.Errorf("velocity = %v after replay, want (10|0)", got)
	}

	// Remount must not replay the impulse a second time.
	layer.Remove(actor)
	actor.ResetMovement()
	layer.Add(actor)
	if got := actor.Velocity(); !almostEqual(got.X, 0) {
		t.Errorf("velocity = %v, impulse was replayed twice", got)
	}
}

func TestMountAndUnmountListeners(t *testing.T) {
	actor := newTestActor(1, 1)
	var events []string
	actor.AddMountListener(func() { events = append(events, "mount") })
	actor.AddUnmountListener(func() { events = append(events, "unmount") })

	layer := NewLayer()
	layer.Add(actor)
	layer.Remove(actor)
	layer.Add(actor)

	want := []string{"mount", "unmount", "mount"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}

	// Listeners added while mounted fire immediately.
	fired := false
	actor.AddMountListener(func() { fired = true })
	if !fired {
		t.Error("mount listener on a mounted actor did not fire")
	}
}

func TestUnmountListenersObserveMountedActor(t *testing.T) {
	actor := newTestActor(1, 1)
	layer := NewLayer()
	layer.Add(actor)
	actor.SetPosition(3, 4)

	var mounted bool
	var position Vector
	actor.AddUnmountListener(func() {
		mounted = actor.IsMounted()
		position = actor.Position()
	})

	layer.Remove(actor)
	if !mounted {
		t.Error("unmount listener saw a detached actor")
	}
	// The live body is still in place while the listener runs.
	if !almostEqual(position.X, 3) || !almostEqual(position.Y, 4) {
		t.Errorf("unmount listener read position %v, want (3|4)", position)
	}
}

func TestLayerPauseSuspendsStepping(t *testing.T) {
	actor := newTestActor(1, 1)
	actor.MakeDynamic()

	layer := NewLayer()
	layer.SetGravityOfEarth()
	layer.Add(actor)

	layer.SetPaused(true)
	for i := 0; i < 10; i++ {
		layer.step(1.0 / 60)
	}
	if got := actor.Position().Y; got != 0 {
		t.Errorf("paused actor fell to y=%g", got)
	}

	layer.SetPaused(false)
	for i := 0; i < 10; i++ {
		layer.step(1.0 / 60)
	}
	if got := actor.Position().Y; got >= 0 {
		t.Errorf("unpaused actor did not fall, y=%g", got)
	}
}

func TestLayerGravity(t *testing.T) {
	layer := NewLayer()
	if got := layer.Gravity(); !got.IsNil() {
		t.Errorf("fresh layer has gravity %v, want none", got)
	}
	layer.SetGravityOfEarth()
	if got := layer.Gravity(); !almostEqual(got.Y, -9.81) {
		t.Errorf("gravity = %v, want (0|-9.81)", got)
	}
}
