package engine

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
)

// nullHandler is the detached variant of PhysicsHandler. It performs all
// operations purely numerically on a PhysicsData value. Operations that
// only work against a live world (forces, torque, impulses) are queued
// and replayed once the actor is mounted, so nothing applied before
// mounting is lost.
type nullHandler struct {
	data *PhysicsData

	// mountCallbacks records deferred operations in call order. Replayed
	// exactly once by ApplyMountCallbacks.
	mountCallbacks []func(PhysicsHandler)
}

func newNullHandler(data *PhysicsData) *nullHandler {
	return &nullHandler{data: data}
}

func (h *nullHandler) MoveBy(meters Vector) {
	if meters.IsNaN() {
		return
	}
	h.data.x += meters.X
	h.data.y += meters.Y
}

func (h *nullHandler) GetCenter() Vector {
	var bounds box2d.B2AABB
	combined := false

	transform := box2d.MakeB2Transform()
	transform.Set(h.GetPosition().toB2Vec2(), DegreesToRadians(h.GetRotation()))

	for _, fixture := range h.data.fixtures() {
		shapeBounds := box2d.MakeB2AABB()
		fixture.Shape().ComputeAABB(&shapeBounds, transform, 0)
		if combined {
			bounds.CombineInPlace(shapeBounds)
		} else {
			bounds = shapeBounds
			combined = true
		}
	}
	if !combined {
		return h.GetPosition()
	}
	return vectorFromB2Vec2(bounds.GetCenter())
}

// Contains is always false: no shape is realized while detached.
func (h *nullHandler) Contains(Vector) bool {
	return false
}

func (h *nullHandler) GetPosition() Vector {
	return NewVector(h.data.x, h.data.y)
}

func (h *nullHandler) GetRotation() float64 {
	return h.data.rotation
}

func (h *nullHandler) RotateBy(degrees float64) {
	if math.IsNaN(degrees) {
		return
	}
	h.data.rotation += degrees
}

func (h *nullHandler) SetRotation(degrees float64) {
	if math.IsNaN(degrees) {
		return
	}
	h.data.rotation = degrees
}

func (h *nullHandler) SetDensity(density float64) {
	if density <= 0 {
		panic(fmt.Sprintf("engine: density must be positive, got %g", density))
	}
	h.data.globalDensity = density
}

func (h *nullHandler) GetDensity() float64 {
	return h.data.globalDensity
}

func (h *nullHandler) SetGravityScale(factor float64) {
	if math.IsNaN(factor) {
		return
	}
	h.data.gravityScale = factor
}

func (h *nullHandler) GetGravityScale() float64 {
	return h.data.gravityScale
}

func (h *nullHandler) SetFriction(friction float64) {
	h.data.globalFriction = friction
}

func (h *nullHandler) GetFriction() float64 {
	return h.data.globalFriction
}

func (h *nullHandler) SetRestitution(restitution float64) {
	h.data.globalRestitution = restitution
}

func (h *nullHandler) GetRestitution() float64 {
	return h.data.globalRestitution
}

func (h *nullHandler) SetLinearDamping(damping float64) {
	h.data.linearDamping = damping
}

func (h *nullHandler) GetLinearDamping() float64 {
	return h.data.linearDamping
}

func (h *nullHandler) SetAngularDamping(damping float64) {
	h.data.angularDamping = damping
}

func (h *nullHandler) GetAngularDamping() float64 {
	return h.data.angularDamping
}

// GetMass returns the mass recorded by the last unmount, or 0 if the
// actor has never lived on a body: without realized shapes the mass is
// undefined.
func (h *nullHandler) GetMass() float64 {
	if h.data.mass == nil {
		return 0
	}
	return *h.data.mass
}

func (h *nullHandler) ApplyForce(force Vector) {
	if force.IsNaN() {
		return
	}
	h.enqueue(func(other PhysicsHandler) { other.ApplyForce(force) })
}

func (h *nullHandler) ApplyForceAt(force Vector, globalPoint Vector) {
	if force.IsNaN() || globalPoint.IsNaN() {
		return
	}
	h.enqueue(func(other PhysicsHandler) { other.ApplyForceAt(force, globalPoint) })
}

func (h *nullHandler) ApplyTorque(torque float64) {
	if math.IsNaN(torque) {
		return
	}
	h.enqueue(func(other PhysicsHandler) { other.ApplyTorque(torque) })
}

func (h *nullHandler) ApplyRotationImpulse(impulse float64) {
	if math.IsNaN(impulse) {
		return
	}
	h.enqueue(func(other PhysicsHandler) { other.ApplyRotationImpulse(impulse) })
}

func (h *nullHandler) ApplyImpulseAt(impulse Vector, globalPoint Vector) {
	if impulse.IsNaN() || globalPoint.IsNaN() {
		return
	}
	h.enqueue(func(other PhysicsHandler) { other.ApplyImpulseAt(impulse, globalPoint) })
}

func (h *nullHandler) enqueue(callback func(PhysicsHandler)) {
	h.mountCallbacks = append(h.mountCallbacks, callback)
}

func (h *nullHandler) SetType(bodyType BodyType) {
	// Validate eagerly so an unknown type fails here, not at mount time.
	bodyType.filter()
	h.data.bodyType = bodyType
}

func (h *nullHandler) GetType() BodyType {
	return h.data.bodyType
}

func (h *nullHandler) ResetMovement() {
	h.data.velocity = NullVector
	h.data.angularVelocity = 0
}

func (h *nullHandler) SetVelocity(metersPerSecond Vector) {
	if metersPerSecond.IsNaN() {
		return
	}
	h.data.velocity = metersPerSecond
}

func (h *nullHandler) GetVelocity() Vector {
	return h.data.velocity
}

func (h *nullHandler) SetAngularVelocity(rotationsPerSecond float64) {
	if math.IsNaN(rotationsPerSecond) {
		return
	}
	h.data.angularVelocity = DegreesToRadians(rotationsPerSecond * 360)
}

func (h *nullHandler) GetAngularVelocity() float64 {
	return RadiansToDegrees(h.data.angularVelocity) / 360
}

func (h *nullHandler) SetRotationLocked(locked bool) {
	h.data.rotationLocked = locked
}

func (h *nullHandler) IsRotationLocked() bool {
	return h.data.rotationLocked
}

// IsGrounded is always false: a detached actor rests on nothing.
func (h *nullHandler) IsGrounded() bool {
	return false
}

func (h *nullHandler) SetFixtures(fixtures func() []*FixtureData) {
	h.data.setFixtures(fixtures)
}

func (h *nullHandler) GetPhysicsData() *PhysicsData {
	return h.data
}

func (h *nullHandler) ApplyMountCallbacks(other PhysicsHandler) {
	for _, callback := range h.mountCallbacks {
		callback(other)
	}
	h.mountCallbacks = nil
}

// GetCollisions is always empty: a detached actor touches nothing.
func (h *nullHandler) GetCollisions() []CollisionEvent {
	return nil
}

func (h *nullHandler) WorldHandler() *WorldHandler {
	return nil
}

func (h *nullHandler) Body() *box2d.B2Body {
	return nil
}
