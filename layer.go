package engine

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// StandardGravity is the gravity of earth in m/s^2, ready for
// Layer.SetGravityOfEarth.
var StandardGravity = NewVector(0, -9.81)

// Layer groups actors that live in one shared simulation world and are
// drawn together. Adding an actor mounts it, removing it unmounts it.
type Layer struct {
	worldHandler *WorldHandler

	mu     sync.Mutex
	actors []*Actor

	position int
	visible  bool
	paused   atomic.Bool

	keyListeners         eventListeners[KeyListener]
	mouseClickListeners  eventListeners[MouseClickListener]
	frameUpdateListeners eventListeners[FrameUpdateListener]
}

// NewLayer creates an empty layer with its own simulation world. No
// gravity acts by default.
func NewLayer() *Layer {
	l := &Layer{visible: true}
	l.worldHandler = newWorldHandler(l, NullVector)
	return l
}

// WorldHandler returns the handler owning this layer's world.
func (l *Layer) WorldHandler() *WorldHandler {
	return l.worldHandler
}

// Add mounts actors into this layer's world. The detached handler's
// accumulated state seeds the new live body, and operations deferred
// while detached are replayed right after the swap. Actors that are
// already mounted are ignored.
func (l *Layer) Add(actors ...*Actor) {
	for _, actor := range actors {
		l.add(actor)
	}
}

func (l *Layer) add(actor *Actor) {
	previous := actor.PhysicsHandler()
	if previous.WorldHandler() != nil {
		return
	}

	handler := newBodyHandler(actor, previous.GetPhysicsData(), l.worldHandler)
	if !actor.setPhysicsHandler(handler) {
		// Lost a mount race; the fresh body must not linger in the
		// world as a ghost.
		l.worldHandler.AssertNoWorldStep()
		l.worldHandler.mu.Lock()
		l.worldHandler.world.DestroyBody(handler.Body())
		l.worldHandler.mu.Unlock()
		return
	}
	previous.ApplyMountCallbacks(handler)

	l.mu.Lock()
	l.actors = append(l.actors, actor)
	l.mu.Unlock()
}

// Remove unmounts actors from this layer. The live body's state is
// snapshot into a fresh detached handler before the body is destroyed.
// Actors that are not mounted in this layer are ignored.
func (l *Layer) Remove(actors ...*Actor) {
	for _, actor := range actors {
		l.remove(actor)
	}
}

func (l *Layer) remove(actor *Actor) {
	previous := actor.PhysicsHandler()
	if previous.WorldHandler() != l.worldHandler {
		return
	}

	data := previous.GetPhysicsData()
	if !actor.setPhysicsHandler(newNullHandler(data)) {
		// Lost an unmount race; the winner destroys the body.
		return
	}

	l.worldHandler.AssertNoWorldStep()
	l.worldHandler.mu.Lock()
	l.worldHandler.world.DestroyBody(previous.Body())
	l.worldHandler.mu.Unlock()

	l.mu.Lock()
	for i, a := range l.actors {
		if a == actor {
			l.actors = append(l.actors[:i], l.actors[i+1:]...)
			break
		}
	}
	l.mu.Unlock()
}

// Actors returns a snapshot of the mounted actors.
func (l *Layer) Actors() []*Actor {
	l.mu.Lock()
	defer l.mu.Unlock()
	actors := make([]*Actor, len(l.actors))
	copy(actors, l.actors)
	return actors
}

// SetGravity sets the global gravity of this layer's world in m/s^2.
func (l *Layer) SetGravity(gravity Vector) {
	l.worldHandler.SetGravity(gravity)
}

// Gravity returns the global gravity of this layer's world.
func (l *Layer) Gravity() Vector {
	return l.worldHandler.Gravity()
}

// SetGravityOfEarth sets the gravity to (0 | -9.81).
func (l *Layer) SetGravityOfEarth() {
	l.SetGravity(StandardGravity)
}

// SetPaused suspends or resumes the stepping of this layer's world.
// Rendering and event dispatch continue while paused.
func (l *Layer) SetPaused(paused bool) {
	l.paused.Store(paused)
}

// IsPaused reports whether stepping is suspended.
func (l *Layer) IsPaused() bool {
	return l.paused.Load()
}

// Position orders layers within a scene; higher positions draw later.
func (l *Layer) Position() int {
	return l.position
}

func (l *Layer) SetPosition(position int) {
	l.position = position
}

func (l *Layer) IsVisible() bool {
	return l.visible
}

func (l *Layer) SetVisible(visible bool) {
	l.visible = visible
}

// step advances this layer's world by deltaSeconds unless paused.
func (l *Layer) step(deltaSeconds float64) {
	if l.paused.Load() {
		return
	}
	l.worldHandler.Step(deltaSeconds)
}

// draw renders all visible actors ordered by their layer position.
func (l *Layer) draw(dst *ebiten.Image, camera *Camera) {
	if !l.visible {
		return
	}
	actors := l.Actors()
	sort.SliceStable(actors, func(i, j int) bool {
		return actors[i].LayerPosition() < actors[j].LayerPosition()
	})
	for _, actor := range actors {
		actor.draw(dst, camera)
	}
}
