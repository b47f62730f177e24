package engine

import (
	"github.com/ByteArena/box2d"
)

// CollisionEvent describes one contact between the listening actor and a
// collision partner.
type CollisionEvent struct {
	contact box2d.B2ContactInterface
	other   *Actor
}

// Colliding returns the collision partner.
func (e CollisionEvent) Colliding() *Actor {
	return e.other
}

// Ignore disables the collision resolution for this contact, letting the
// bodies pass through each other. Only effective from within a collision
// callback.
func (e CollisionEvent) Ignore() {
	e.contact.SetEnabled(false)
}

// IsIgnored reports whether the contact has been disabled.
func (e CollisionEvent) IsIgnored() bool {
	return !e.contact.IsEnabled()
}

// CollisionListener reacts to collisions an actor experiences.
type CollisionListener interface {
	// OnCollision is called when the actor starts touching a partner.
	OnCollision(event CollisionEvent)

	// OnCollisionEnd is called when the contact ends.
	OnCollisionEnd(event CollisionEvent)
}

// CollisionListenerFunc adapts a plain function to a CollisionListener
// that ignores collision ends.
type CollisionListenerFunc func(event CollisionEvent)

func (f CollisionListenerFunc) OnCollision(event CollisionEvent) { f(event) }

func (CollisionListenerFunc) OnCollisionEnd(CollisionEvent) {}

// filteredCollisionListener forwards events to the wrapped listener only
// when the partner matches. Used by Actor.AddCollisionListenerWith.
type filteredCollisionListener struct {
	partner  *Actor
	delegate CollisionListener
}

func (l *filteredCollisionListener) OnCollision(event CollisionEvent) {
	if event.Colliding() == l.partner {
		l.delegate.OnCollision(event)
	}
}

func (l *filteredCollisionListener) OnCollisionEnd(event CollisionEvent) {
	if event.Colliding() == l.partner {
		l.delegate.OnCollisionEnd(event)
	}
}
