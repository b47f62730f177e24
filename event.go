package engine

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyListener reacts to keyboard state changes.
type KeyListener interface {
	OnKeyDown(key ebiten.Key)
	OnKeyUp(key ebiten.Key)
}

// MouseClickListener reacts to mouse buttons, with the click position
// already translated to world coordinates.
type MouseClickListener interface {
	OnMouseDown(position Vector, button ebiten.MouseButton)
	OnMouseUp(position Vector, button ebiten.MouseButton)
}

// FrameUpdateListener is called once per frame with the elapsed time in
// seconds.
type FrameUpdateListener interface {
	OnFrameUpdate(deltaSeconds float64)
}

// FrameUpdateFunc adapts a plain function to a FrameUpdateListener.
type FrameUpdateFunc func(deltaSeconds float64)

func (f FrameUpdateFunc) OnFrameUpdate(deltaSeconds float64) { f(deltaSeconds) }

// eventListeners is an order-preserving listener registry. Invocation
// iterates over a snapshot, so listeners may add or remove listeners
// while being dispatched.
type eventListeners[T comparable] struct {
	mu        sync.Mutex
	listeners []T
}

func (e *eventListeners[T]) add(listener T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, listener)
}

func (e *eventListeners[T]) remove(listener T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, l := range e.listeners {
		if l == listener {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *eventListeners[T]) invoke(f func(listener T)) {
	e.mu.Lock()
	snapshot := make([]T, len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, listener := range snapshot {
		f(listener)
	}
}
