package engine

import (
	"github.com/ByteArena/box2d"
)

// PhysicsHandler is the physical representation of a single actor. It
// has exactly two implementations: nullHandler keeps all state as plain
// numbers while the actor is not part of a live world, bodyHandler
// delegates everything to a live Box2D body. An actor swaps between the
// two on mount and unmount, carrying the full state across in a
// PhysicsData snapshot.
type PhysicsHandler interface {
	// MoveBy translates the actor by a delta in meters.
	MoveBy(meters Vector)

	// GetCenter returns the geometric center of the fixture bounding box,
	// except for attached dynamic and particle bodies, which report the
	// simulation's center of mass.
	GetCenter() Vector

	// Contains reports whether a world-space point lies inside any of
	// the actor's fixtures. Always false while detached.
	Contains(point Vector) bool

	GetPosition() Vector
	GetRotation() float64 // degrees

	RotateBy(degrees float64)
	SetRotation(degrees float64)

	SetDensity(density float64)
	GetDensity() float64

	SetGravityScale(factor float64)
	GetGravityScale() float64

	SetFriction(friction float64)
	GetFriction() float64

	SetRestitution(restitution float64)
	GetRestitution() float64

	SetLinearDamping(damping float64)
	GetLinearDamping() float64

	SetAngularDamping(damping float64)
	GetAngularDamping() float64

	// GetMass returns the simulation-computed mass in kg, or 0 while the
	// mass is not known.
	GetMass() float64

	ApplyForce(force Vector)
	ApplyForceAt(force Vector, globalPoint Vector)
	ApplyTorque(torque float64)
	ApplyRotationImpulse(impulse float64)
	ApplyImpulseAt(impulse Vector, globalPoint Vector)

	SetType(bodyType BodyType)
	GetType() BodyType

	ResetMovement()
	SetVelocity(metersPerSecond Vector)
	GetVelocity() Vector
	SetAngularVelocity(rotationsPerSecond float64)
	GetAngularVelocity() float64 // rotations/s

	SetRotationLocked(locked bool)
	IsRotationLocked() bool

	// IsGrounded reports whether a dynamic actor is resting on a static
	// surface. Panics for every other body type.
	IsGrounded() bool

	// SetFixtures atomically replaces all fixtures with the ones the
	// supplier produces.
	SetFixtures(fixtures func() []*FixtureData)

	// GetPhysicsData snapshots the complete current state into a
	// portable value, the inverse of attachment.
	GetPhysicsData() *PhysicsData

	// ApplyMountCallbacks replays every operation deferred while
	// detached against the given handler, then clears the queue.
	ApplyMountCallbacks(other PhysicsHandler)

	// GetCollisions lists the actors currently touching this one.
	GetCollisions() []CollisionEvent

	// WorldHandler returns the handler of the owning world, nil while
	// detached.
	WorldHandler() *WorldHandler

	// Body returns the live body, nil while detached.
	Body() *box2d.B2Body
}
