package engine

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
)

// groundProbeEpsilon is the height of the query band used by IsGrounded,
// spanning the full width of the body just below its lower edge.
const groundProbeEpsilon = 1e-4

// bodyHandler is the attached variant of PhysicsHandler. All state lives
// on a Box2D body owned exclusively by this handler; every mutation
// acquires the owning world handler's lock, and structural mutations
// additionally assert that no world step is in progress.
type bodyHandler struct {
	worldHandler *WorldHandler
	body         *box2d.B2Body
	bodyType     BodyType
}

// newBodyHandler realizes the given snapshot as a live body in the world
// and wraps it. The collision filter of every fixture is derived from
// the body type immediately.
func newBodyHandler(actor *Actor, data *PhysicsData, worldHandler *WorldHandler) *bodyHandler {
	h := &bodyHandler{
		worldHandler: worldHandler,
		bodyType:     -1, // force the first SetType through
	}

	worldHandler.mu.Lock()
	h.body = data.createBody(worldHandler, actor)
	worldHandler.mu.Unlock()

	h.SetType(data.Type())
	return h
}

func (h *bodyHandler) MoveBy(meters Vector) {
	if meters.IsNaN() {
		return
	}
	h.worldHandler.AssertNoWorldStep()
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	position := h.body.GetPosition()
	position.OperatorPlusInplace(meters.toB2Vec2())
	h.body.SetTransform(position, h.body.GetAngle())

	// Wake the body so the engine recomputes contacts even if it was
	// sleeping when it got moved.
	h.body.SetAwake(true)
}

// GetCenter returns the simulation's center of mass for dynamic and
// particle bodies; their mass distribution may shift the center away
// from the geometric one when fixture densities differ. All other types
// report the center of the fixture bounding box.
func (h *bodyHandler) GetCenter() Vector {
	if h.bodyType == Dynamic || h.bodyType == Particle {
		return vectorFromB2Vec2(h.body.GetWorldCenter())
	}
	return vectorFromB2Vec2(h.bodyAABB().GetCenter())
}

func (h *bodyHandler) Contains(point Vector) bool {
	p := point.toB2Vec2()
	for fixture := h.body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
		if fixture.TestPoint(p) {
			return true
		}
	}
	return false
}

func (h *bodyHandler) GetPosition() Vector {
	return vectorFromB2Vec2(h.body.GetPosition())
}

func (h *bodyHandler) GetRotation() float64 {
	return RadiansToDegrees(h.body.GetAngle())
}

func (h *bodyHandler) RotateBy(degrees float64) {
	if math.IsNaN(degrees) {
		return
	}
	h.worldHandler.AssertNoWorldStep()
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetTransform(h.body.GetPosition(), h.body.GetAngle()+DegreesToRadians(degrees))
}

func (h *bodyHandler) SetRotation(degrees float64) {
	if math.IsNaN(degrees) {
		return
	}
	h.worldHandler.AssertNoWorldStep()
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetTransform(h.body.GetPosition(), DegreesToRadians(degrees))
}

// SetDensity applies the density uniformly to every fixture, overwriting
// any per-fixture override, and recomputes the mass.
func (h *bodyHandler) SetDensity(density float64) {
	if density <= 0 {
		panic(fmt.Sprintf("engine: density must be positive, got %g", density))
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	for fixture := h.body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
		fixture.SetDensity(density)
	}
	h.body.ResetMassData()
}

// GetDensity reads the first fixture; a body without fixtures has no
// material and reports 0, as do GetFriction and GetRestitution.
func (h *bodyHandler) GetDensity() float64 {
	first := h.body.GetFixtureList()
	if first == nil {
		return 0
	}
	return first.GetDensity()
}

func (h *bodyHandler) SetGravityScale(factor float64) {
	if math.IsNaN(factor) {
		return
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetGravityScale(factor)
	h.body.SetAwake(true)
}

func (h *bodyHandler) GetGravityScale() float64 {
	return h.body.GetGravityScale()
}

func (h *bodyHandler) SetFriction(friction float64) {
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	for fixture := h.body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
		fixture.SetFriction(friction)
	}
}

func (h *bodyHandler) GetFriction() float64 {
	first := h.body.GetFixtureList()
	if first == nil {
		return 0
	}
	return first.GetFriction()
}

func (h *bodyHandler) SetRestitution(restitution float64) {
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	for fixture := h.body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
		fixture.SetRestitution(restitution)
	}
}

func (h *bodyHandler) GetRestitution() float64 {
	first := h.body.GetFixtureList()
	if first == nil {
		return 0
	}
	return first.GetRestitution()
}

func (h *bodyHandler) SetLinearDamping(damping float64) {
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetLinearDamping(damping)
}

func (h *bodyHandler) GetLinearDamping() float64 {
	return h.body.GetLinearDamping()
}

func (h *bodyHandler) SetAngularDamping(damping float64) {
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetAngularDamping(damping)
}

func (h *bodyHandler) GetAngularDamping() float64 {
	return h.body.GetAngularDamping()
}

func (h *bodyHandler) GetMass() float64 {
	return h.body.GetMass()
}

func (h *bodyHandler) ApplyForce(force Vector) {
	if force.IsNaN() {
		return
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.ApplyForceToCenter(force.toB2Vec2(), true)
}

func (h *bodyHandler) ApplyForceAt(force Vector, globalPoint Vector) {
	if force.IsNaN() || globalPoint.IsNaN() {
		return
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.ApplyForce(force.toB2Vec2(), globalPoint.toB2Vec2(), true)
}

func (h *bodyHandler) ApplyTorque(torque float64) {
	if math.IsNaN(torque) {
		return
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.ApplyTorque(torque, true)
}

func (h *bodyHandler) ApplyRotationImpulse(impulse float64) {
	if math.IsNaN(impulse) {
		return
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.ApplyAngularImpulse(impulse, true)
}

func (h *bodyHandler) ApplyImpulseAt(impulse Vector, globalPoint Vector) {
	if impulse.IsNaN() || globalPoint.IsNaN() {
		return
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.ApplyLinearImpulse(impulse.toB2Vec2(), globalPoint.toB2Vec2(), true)
}

// SetType switches the simulation kind of the body and recomputes the
// sensor flag and collision filter of every fixture. No fixture may keep
// a stale category from a previous type.
func (h *bodyHandler) SetType(bodyType BodyType) {
	h.worldHandler.AssertNoWorldStep()
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	if bodyType == h.bodyType {
		return
	}
	filter, sensor := bodyType.filter() // panics on unknown types
	h.bodyType = bodyType

	h.body.SetType(bodyType.toB2Kind())
	h.body.SetActive(true)
	h.body.SetAwake(true)

	for fixture := h.body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
		fixture.SetSensor(sensor)
		// SetFilterData refilters existing contacts, so collision pairs
		// that the new mask forbids end immediately.
		fixture.SetFilterData(filter)
	}
}

func (h *bodyHandler) GetType() BodyType {
	return h.bodyType
}

func (h *bodyHandler) ResetMovement() {
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
	h.body.SetAngularVelocity(0)
}

func (h *bodyHandler) SetVelocity(metersPerSecond Vector) {
	if metersPerSecond.IsNaN() {
		return
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetLinearVelocity(metersPerSecond.toB2Vec2())
}

func (h *bodyHandler) GetVelocity() Vector {
	return vectorFromB2Vec2(h.body.GetLinearVelocity())
}

func (h *bodyHandler) SetAngularVelocity(rotationsPerSecond float64) {
	if math.IsNaN(rotationsPerSecond) {
		return
	}
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetAngularVelocity(DegreesToRadians(rotationsPerSecond * 360))
}

func (h *bodyHandler) GetAngularVelocity() float64 {
	return RadiansToDegrees(h.body.GetAngularVelocity()) / 360
}

func (h *bodyHandler) SetRotationLocked(locked bool) {
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	h.body.SetFixedRotation(locked)
}

func (h *bodyHandler) IsRotationLocked() bool {
	return h.body.IsFixedRotation()
}

// bodyAABB unions the broad-phase bounds of all fixtures.
// TODO: include chain shapes (more than one child per fixture).
func (h *bodyHandler) bodyAABB() box2d.B2AABB {
	bounds := box2d.MakeB2AABB()
	bounds.LowerBound = box2d.MakeB2Vec2(math.MaxFloat64, math.MaxFloat64)
	bounds.UpperBound = box2d.MakeB2Vec2(-math.MaxFloat64, -math.MaxFloat64)

	for fixture := h.body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
		bounds.CombineInPlace(fixture.GetAABB(0))
	}
	return bounds
}

// IsGrounded probes a band spanning the full width of the body's
// bounding box, one groundProbeEpsilon high at its lower edge, and
// reports whether any static actor's fixture overlaps it. This is an
// approximation based on broad-phase bounds, not exact contact
// detection; it is only defined for dynamic bodies.
func (h *bodyHandler) IsGrounded() bool {
	if h.GetType() != Dynamic {
		panic("engine: the ground test is only defined for dynamic bodies")
	}

	bodyBounds := h.bodyAABB()

	probe := box2d.MakeB2AABB()
	probe.LowerBound = bodyBounds.LowerBound
	probe.UpperBound = box2d.MakeB2Vec2(bodyBounds.UpperBound.X, bodyBounds.LowerBound.Y+groundProbeEpsilon)

	for _, fixture := range h.worldHandler.QueryAABB(probe) {
		actor, ok := fixture.GetBody().GetUserData().(*Actor)
		if ok && actor.BodyType() == Static {
			return true
		}
	}
	return false
}

// SetFixtures destroys every fixture on the body and creates fresh ones
// from the supplier, atomically with respect to the world step.
func (h *bodyHandler) SetFixtures(fixtures func() []*FixtureData) {
	h.worldHandler.AssertNoWorldStep()
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	data := physicsDataFromBody(h.body, h.bodyType)

	var stale []*box2d.B2Fixture
	for fixture := h.body.GetFixtureList(); fixture != nil; fixture = fixture.GetNext() {
		stale = append(stale, fixture)
	}
	for _, fixture := range stale {
		h.body.DestroyFixture(fixture)
	}

	for _, fixture := range fixtures() {
		def := fixture.toFixtureDef(data)
		h.body.CreateFixtureFromDef(&def)
	}
}

func (h *bodyHandler) GetPhysicsData() *PhysicsData {
	h.worldHandler.mu.Lock()
	defer h.worldHandler.mu.Unlock()

	return physicsDataFromBody(h.body, h.bodyType)
}

// ApplyMountCallbacks is a no-op: an attached handler never defers.
func (h *bodyHandler) ApplyMountCallbacks(PhysicsHandler) {}

// GetCollisions walks the contact edges of the body and keeps the pairs
// that are actually touching. The engine tracks contacts for every
// broad-phase overlap; only touching ones count as collisions.
func (h *bodyHandler) GetCollisions() []CollisionEvent {
	var collisions []CollisionEvent
	for edge := h.body.GetContactList(); edge != nil; edge = edge.Next {
		if !edge.Contact.IsTouching() {
			continue
		}
		other, _ := edge.Other.GetUserData().(*Actor)
		collisions = append(collisions, CollisionEvent{contact: edge.Contact, other: other})
	}
	return collisions
}

func (h *bodyHandler) WorldHandler() *WorldHandler {
	return h.worldHandler
}

func (h *bodyHandler) Body() *box2d.B2Body {
	return h.body
}
