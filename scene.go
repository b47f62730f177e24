package engine

import (
	"image/color"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// Scene composes layers. Every frame all layer worlds step in parallel,
// and rendering only begins once every step has finished.
type Scene struct {
	mu     sync.Mutex
	layers []*Layer

	mainLayer       *Layer
	camera          *Camera
	backgroundColor color.Color
}

// NewScene creates a scene with one main layer at position 0.
func NewScene() *Scene {
	main := NewLayer()
	return &Scene{
		layers:          []*Layer{main},
		mainLayer:       main,
		camera:          NewCamera(),
		backgroundColor: color.Black,
	}
}

// MainLayer returns the default layer of the scene.
func (s *Scene) MainLayer() *Layer {
	return s.mainLayer
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetBackgroundColor sets the color the frame is cleared with.
func (s *Scene) SetBackgroundColor(c color.Color) {
	s.backgroundColor = c
}

// Add mounts actors into the main layer.
func (s *Scene) Add(actors ...*Actor) {
	s.mainLayer.Add(actors...)
}

// Remove unmounts actors from the main layer.
func (s *Scene) Remove(actors ...*Actor) {
	s.mainLayer.Remove(actors...)
}

// AddLayer inserts an additional layer, kept ordered by position.
func (s *Scene) AddLayer(layer *Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = append(s.layers, layer)
	sort.SliceStable(s.layers, func(i, j int) bool {
		return s.layers[i].Position() < s.layers[j].Position()
	})
}

// RemoveLayer detaches a layer from the scene. The main layer cannot be
// removed.
func (s *Scene) RemoveLayer(layer *Layer) {
	if layer == s.mainLayer {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.layers {
		if l == layer {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return
		}
	}
}

// Layers returns a snapshot of the layers in draw order.
func (s *Scene) Layers() []*Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	layers := make([]*Layer, len(s.layers))
	copy(layers, s.layers)
	return layers
}

// SetGravity sets the gravity of the main layer's world.
func (s *Scene) SetGravity(gravity Vector) {
	s.mainLayer.SetGravity(gravity)
}

// SetGravityOfEarth sets the main layer's gravity to (0 | -9.81).
func (s *Scene) SetGravityOfEarth() {
	s.mainLayer.SetGravityOfEarth()
}

// step fans the world step of every layer out to its own goroutine and
// joins them. Layers own disjoint worlds, so the steps never contend;
// the join is the barrier that keeps rendering off until every world
// has finished its step for this frame.
func (s *Scene) step(deltaSeconds float64) error {
	var group errgroup.Group
	for _, layer := range s.Layers() {
		group.Go(func() error {
			layer.step(deltaSeconds)
			return nil
		})
	}
	return group.Wait()
}

// draw renders all layers in order.
func (s *Scene) draw(dst *ebiten.Image) {
	dst.Fill(s.backgroundColor)
	for _, layer := range s.Layers() {
		layer.draw(dst, s.camera)
	}
}

// dispatchKeyDown forwards a key press to every layer's key listeners.
func (s *Scene) dispatchKeyDown(key ebiten.Key) {
	for _, layer := range s.Layers() {
		layer.keyListeners.invoke(func(l KeyListener) { l.OnKeyDown(key) })
	}
}

// dispatchKeyUp forwards a key release to every layer's key listeners.
func (s *Scene) dispatchKeyUp(key ebiten.Key) {
	for _, layer := range s.Layers() {
		layer.keyListeners.invoke(func(l KeyListener) { l.OnKeyUp(key) })
	}
}

// dispatchMouseDown forwards a mouse press in world coordinates.
func (s *Scene) dispatchMouseDown(position Vector, button ebiten.MouseButton) {
	for _, layer := range s.Layers() {
		layer.mouseClickListeners.invoke(func(l MouseClickListener) { l.OnMouseDown(position, button) })
	}
}

// dispatchMouseUp forwards a mouse release in world coordinates.
func (s *Scene) dispatchMouseUp(position Vector, button ebiten.MouseButton) {
	for _, layer := range s.Layers() {
		layer.mouseClickListeners.invoke(func(l MouseClickListener) { l.OnMouseUp(position, button) })
	}
}

// dispatchFrameUpdate forwards the frame tick to every layer's frame
// update listeners.
func (s *Scene) dispatchFrameUpdate(deltaSeconds float64) {
	for _, layer := range s.Layers() {
		layer.frameUpdateListeners.invoke(func(l FrameUpdateListener) { l.OnFrameUpdate(deltaSeconds) })
	}
}
