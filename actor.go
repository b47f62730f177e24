package engine

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Actor is a game object with a physical presence. It owns exactly one
// physics handler at any time: a detached one from construction until it
// joins a layer, an attached one while it lives in a layer's world.
// Mounting and unmounting swap the handler as a whole, carrying the full
// physical state across and replaying operations deferred while
// detached.
type Actor struct {
	mu             sync.Mutex
	physicsHandler PhysicsHandler
	transitioning  bool

	visible       bool
	opacity       float64
	layerPosition int

	render func(dst *ebiten.Image, camera *Camera)

	mountListeners   []func()
	unmountListeners []func()

	keyListeners         eventListeners[KeyListener]
	mouseClickListeners  eventListeners[MouseClickListener]
	frameUpdateListeners eventListeners[FrameUpdateListener]
	collisionListeners   eventListeners[CollisionListener]
}

// NewActor creates a detached actor. The supplier produces the default
// fixture, usually a tight axis-aligned box at rotation angle 0; it is
// re-invoked whenever the fixtures need to be rebuilt.
func NewActor(defaultFixture func() *FixtureData) *Actor {
	a := &Actor{
		visible:       true,
		opacity:       1,
		layerPosition: 1,
	}
	a.physicsHandler = newNullHandler(NewPhysicsData(func() []*FixtureData {
		return []*FixtureData{defaultFixture()}
	}))
	return a
}

// PhysicsHandler returns the current handler. Mostly useful for tests
// and engine internals.
func (a *Actor) PhysicsHandler() PhysicsHandler {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.physicsHandler
}

// setPhysicsHandler swaps the handler on mount and unmount and reports
// whether the swap happened. Mounting an already mounted actor and
// unmounting an already detached one are rejected, as is any swap while
// another one is still notifying its listeners; this keeps the
// check-and-swap atomic so racing callers cannot both claim it.
func (a *Actor) setPhysicsHandler(handler PhysicsHandler) bool {
	target := handler.WorldHandler()

	a.mu.Lock()
	previous := a.physicsHandler.WorldHandler()
	if a.transitioning || (target == nil) == (previous == nil) {
		a.mu.Unlock()
		return false
	}
	a.transitioning = true
	var notify []func()
	if target == nil {
		notify = append(notify, a.unmountListeners...)
	} else {
		notify = append(notify, a.mountListeners...)
	}
	a.mu.Unlock()

	if target == nil {
		// Deregister and notify before the swap; unmount listeners
		// observe the actor still mounted.
		layer := previous.Layer()
		a.keyListeners.invoke(layer.keyListeners.remove)
		a.mouseClickListeners.invoke(layer.mouseClickListeners.remove)
		a.frameUpdateListeners.invoke(layer.frameUpdateListeners.remove)
		for _, listener := range notify {
			listener()
		}

		a.mu.Lock()
		a.physicsHandler = handler
		a.transitioning = false
		a.mu.Unlock()
		return true
	}

	a.mu.Lock()
	a.physicsHandler = handler
	a.mu.Unlock()

	layer := target.Layer()
	for _, listener := range notify {
		listener()
	}
	a.keyListeners.invoke(layer.keyListeners.add)
	a.mouseClickListeners.invoke(layer.mouseClickListeners.add)
	a.frameUpdateListeners.invoke(layer.frameUpdateListeners.add)

	a.mu.Lock()
	a.transitioning = false
	a.mu.Unlock()
	return true
}

// IsMounted reports whether the actor is attached to a layer's world.
func (a *Actor) IsMounted() bool {
	return a.Layer() != nil
}

// Layer returns the layer the actor is mounted in, or nil.
func (a *Actor) Layer() *Layer {
	worldHandler := a.PhysicsHandler().WorldHandler()
	if worldHandler == nil {
		return nil
	}
	return worldHandler.Layer()
}

// Remove detaches the actor from its current layer, if any.
func (a *Actor) Remove() {
	if layer := a.Layer(); layer != nil {
		layer.Remove(a)
	}
}

// AddMountListener registers a listener that runs whenever the actor is
// mounted. If the actor is already mounted the listener runs right away.
func (a *Actor) AddMountListener(listener func()) {
	a.mu.Lock()
	a.mountListeners = append(a.mountListeners, listener)
	a.mu.Unlock()
	if a.IsMounted() {
		listener()
	}
}

// AddUnmountListener registers a listener that runs whenever the actor
// is unmounted.
func (a *Actor) AddUnmountListener(listener func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unmountListeners = append(a.unmountListeners, listener)
}

// AddKeyListener registers a key listener. While the actor is mounted
// the listener is also registered with the owning layer, and it follows
// the actor across mounts.
func (a *Actor) AddKeyListener(listener KeyListener) {
	a.keyListeners.add(listener)
	if layer := a.Layer(); layer != nil {
		layer.keyListeners.add(listener)
	}
}

func (a *Actor) RemoveKeyListener(listener KeyListener) {
	a.keyListeners.remove(listener)
	if layer := a.Layer(); layer != nil {
		layer.keyListeners.remove(listener)
	}
}

// AddMouseClickListener registers a mouse click listener, see
// AddKeyListener for the mount behavior.
func (a *Actor) AddMouseClickListener(listener MouseClickListener) {
	a.mouseClickListeners.add(listener)
	if layer := a.Layer(); layer != nil {
		layer.mouseClickListeners.add(listener)
	}
}

func (a *Actor) RemoveMouseClickListener(listener MouseClickListener) {
	a.mouseClickListeners.remove(listener)
	if layer := a.Layer(); layer != nil {
		layer.mouseClickListeners.remove(listener)
	}
}

// AddFrameUpdateListener registers a per-frame listener, see
// AddKeyListener for the mount behavior.
func (a *Actor) AddFrameUpdateListener(listener FrameUpdateListener) {
	a.frameUpdateListeners.add(listener)
	if layer := a.Layer(); layer != nil {
		layer.frameUpdateListeners.add(listener)
	}
}

func (a *Actor) RemoveFrameUpdateListener(listener FrameUpdateListener) {
	a.frameUpdateListeners.remove(listener)
	if layer := a.Layer(); layer != nil {
		layer.frameUpdateListeners.remove(listener)
	}
}

// AddCollisionListener registers a listener for every collision this
// actor experiences.
func (a *Actor) AddCollisionListener(listener CollisionListener) {
	a.collisionListeners.add(listener)
}

// AddCollisionListenerWith registers a listener for collisions between
// this actor and one specific partner.
func (a *Actor) AddCollisionListenerWith(partner *Actor, listener CollisionListener) {
	a.collisionListeners.add(&filteredCollisionListener{partner: partner, delegate: listener})
}

// RemoveCollisionListener removes a listener registered with
// AddCollisionListener.
func (a *Actor) RemoveCollisionListener(listener CollisionListener) {
	a.collisionListeners.remove(listener)
}

// GetCollisions lists the actors currently touching this one.
func (a *Actor) GetCollisions() []CollisionEvent {
	return a.PhysicsHandler().GetCollisions()
}

// IsVisible reports whether the actor takes part in rendering.
func (a *Actor) IsVisible() bool {
	return a.visible
}

func (a *Actor) SetVisible(visible bool) {
	a.visible = visible
}

// Opacity is 0 for fully transparent, 1 for fully opaque.
func (a *Actor) Opacity() float64 {
	return a.opacity
}

func (a *Actor) SetOpacity(opacity float64) {
	a.opacity = opacity
}

// LayerPosition is the z index within the layer; higher draws later.
func (a *Actor) LayerPosition() int {
	return a.layerPosition
}

func (a *Actor) SetLayerPosition(position int) {
	a.layerPosition = position
}

// Position returns the position of the actor's anchor in meters.
func (a *Actor) Position() Vector {
	return a.PhysicsHandler().GetPosition()
}

// SetPosition moves the actor's anchor to (x, y).
func (a *Actor) SetPosition(x, y float64) {
	a.MoveBy(NewVector(x, y).Subtract(a.Position()))
}

// MoveBy translates the actor by a delta in meters.
func (a *Actor) MoveBy(meters Vector) {
	a.PhysicsHandler().MoveBy(meters)
}

// Center returns the center of the actor, see PhysicsHandler.GetCenter.
func (a *Actor) Center() Vector {
	return a.PhysicsHandler().GetCenter()
}

// Contains reports whether a world point lies inside the actor.
func (a *Actor) Contains(point Vector) bool {
	return a.PhysicsHandler().Contains(point)
}

// Rotation returns the rotation in degrees, 0 right after construction.
func (a *Actor) Rotation() float64 {
	return a.PhysicsHandler().GetRotation()
}

func (a *Actor) SetRotation(degrees float64) {
	a.PhysicsHandler().SetRotation(degrees)
}

func (a *Actor) RotateBy(degrees float64) {
	a.PhysicsHandler().RotateBy(degrees)
}

// BodyType returns the actor's body type; new actors are sensors.
func (a *Actor) BodyType() BodyType {
	return a.PhysicsHandler().GetType()
}

func (a *Actor) SetBodyType(bodyType BodyType) {
	a.PhysicsHandler().SetType(bodyType)
}

// MakeStatic is shorthand for SetBodyType(Static).
func (a *Actor) MakeStatic() { a.SetBodyType(Static) }

// MakeDynamic is shorthand for SetBodyType(Dynamic).
func (a *Actor) MakeDynamic() { a.SetBodyType(Dynamic) }

// MakeSensor is shorthand for SetBodyType(Sensor).
func (a *Actor) MakeSensor() { a.SetBodyType(Sensor) }

func (a *Actor) Density() float64 {
	return a.PhysicsHandler().GetDensity()
}

func (a *Actor) SetDensity(density float64) {
	a.PhysicsHandler().SetDensity(density)
}

func (a *Actor) Friction() float64 {
	return a.PhysicsHandler().GetFriction()
}

func (a *Actor) SetFriction(friction float64) {
	a.PhysicsHandler().SetFriction(friction)
}

func (a *Actor) Restitution() float64 {
	return a.PhysicsHandler().GetRestitution()
}

func (a *Actor) SetRestitution(restitution float64) {
	a.PhysicsHandler().SetRestitution(restitution)
}

func (a *Actor) GravityScale() float64 {
	return a.PhysicsHandler().GetGravityScale()
}

// SetGravityScale scales the world gravity for this actor alone.
func (a *Actor) SetGravityScale(factor float64) {
	a.PhysicsHandler().SetGravityScale(factor)
}

func (a *Actor) LinearDamping() float64 {
	return a.PhysicsHandler().GetLinearDamping()
}

func (a *Actor) SetLinearDamping(damping float64) {
	a.PhysicsHandler().SetLinearDamping(damping)
}

func (a *Actor) AngularDamping() float64 {
	return a.PhysicsHandler().GetAngularDamping()
}

func (a *Actor) SetAngularDamping(damping float64) {
	a.PhysicsHandler().SetAngularDamping(damping)
}

// Mass returns the mass in kg, 0 while it is unknown.
func (a *Actor) Mass() float64 {
	return a.PhysicsHandler().GetMass()
}

// ApplyForce applies a continuous force in N to the actor's center.
// Applied while detached, the force is deferred and honored at the
// instant of mounting.
func (a *Actor) ApplyForce(force Vector) {
	a.PhysicsHandler().ApplyForce(force)
}

// ApplyForceAt applies a force in N at a world point.
func (a *Actor) ApplyForceAt(force Vector, globalPoint Vector) {
	a.PhysicsHandler().ApplyForceAt(force, globalPoint)
}

// ApplyTorque applies a torque in Nm.
func (a *Actor) ApplyTorque(torque float64) {
	a.PhysicsHandler().ApplyTorque(torque)
}

// ApplyImpulse applies an impulse in Ns to the actor's center.
func (a *Actor) ApplyImpulse(impulse Vector) {
	handler := a.PhysicsHandler()
	handler.ApplyImpulseAt(impulse, handler.GetCenter())
}

// ApplyImpulseAt applies an impulse in Ns at a world point.
func (a *Actor) ApplyImpulseAt(impulse Vector, globalPoint Vector) {
	a.PhysicsHandler().ApplyImpulseAt(impulse, globalPoint)
}

// ApplyRotationImpulse applies an angular impulse in kg*m*m/s.
func (a *Actor) ApplyRotationImpulse(impulse float64) {
	a.PhysicsHandler().ApplyRotationImpulse(impulse)
}

// ResetMovement zeroes the linear and angular velocity.
func (a *Actor) ResetMovement() {
	a.PhysicsHandler().ResetMovement()
}

// Velocity returns the linear velocity in m/s.
func (a *Actor) Velocity() Vector {
	return a.PhysicsHandler().GetVelocity()
}

func (a *Actor) SetVelocity(metersPerSecond Vector) {
	a.PhysicsHandler().SetVelocity(metersPerSecond)
}

// AngularVelocity returns the angular velocity in rotations/s.
func (a *Actor) AngularVelocity() float64 {
	return a.PhysicsHandler().GetAngularVelocity()
}

func (a *Actor) SetAngularVelocity(rotationsPerSecond float64) {
	a.PhysicsHandler().SetAngularVelocity(rotationsPerSecond)
}

// SetRotationLocked keeps the simulation from rotating the actor;
// direct rotation calls still work.
func (a *Actor) SetRotationLocked(locked bool) {
	a.PhysicsHandler().SetRotationLocked(locked)
}

func (a *Actor) IsRotationLocked() bool {
	return a.PhysicsHandler().IsRotationLocked()
}

// IsGrounded reports whether a dynamic actor rests on a static surface.
// This is an approximation, see PhysicsHandler.IsGrounded.
func (a *Actor) IsGrounded() bool {
	return a.PhysicsHandler().IsGrounded()
}

// SetFixture replaces all fixtures with the single one the supplier
// produces.
func (a *Actor) SetFixture(fixture func() *FixtureData) {
	a.SetFixtures(func() []*FixtureData {
		return []*FixtureData{fixture()}
	})
}

// SetFixtures atomically replaces all fixtures of the actor.
func (a *Actor) SetFixtures(fixtures func() []*FixtureData) {
	a.PhysicsHandler().SetFixtures(fixtures)
}

func (a *Actor) draw(dst *ebiten.Image, camera *Camera) {
	if !a.visible || a.render == nil {
		return
	}
	a.render(dst, camera)
}
