package engine

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// Game drives a scene through the ebiten game loop: every frame it
// dispatches input, ticks the frame update listeners, steps all layer
// worlds and renders the result.
type Game struct {
	config Config
	scene  *Scene
	debug  bool
}

// NewGame creates a game showing an empty scene.
func NewGame(config Config) *Game {
	if err := config.validate(); err != nil {
		panic(err.Error())
	}
	g := &Game{config: config, debug: config.Debug}
	g.SetScene(NewScene())
	return g
}

// Scene returns the scene currently shown.
func (g *Game) Scene() *Scene {
	return g.scene
}

// SetScene switches to another scene. The previous scene keeps its
// state and can be switched back to.
func (g *Game) SetScene(scene *Scene) {
	if scene == nil {
		panic("engine: cannot show a nil scene")
	}
	scene.Camera().SetPixelsPerMeter(g.config.PixelsPerMeter)
	if gravity := NewVector(g.config.Gravity.X, g.config.Gravity.Y); !gravity.IsNil() {
		scene.SetGravity(gravity)
	}
	g.scene = scene
}

// SetDebug toggles the fixture outline overlay.
func (g *Game) SetDebug(debug bool) {
	g.debug = debug
}

func (g *Game) IsDebug() bool {
	return g.debug
}

// Update runs one frame: input dispatch, frame listeners, world steps.
func (g *Game) Update() error {
	deltaSeconds := 1.0 / float64(ebiten.TPS())
	scene := g.scene

	for key := ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		if inpututil.IsKeyJustPressed(key) {
			scene.dispatchKeyDown(key)
		}
		if inpututil.IsKeyJustReleased(key) {
			scene.dispatchKeyUp(key)
		}
	}

	for _, button := range mouseButtons {
		pressed := inpututil.IsMouseButtonJustPressed(button)
		released := inpututil.IsMouseButtonJustReleased(button)
		if !pressed && !released {
			continue
		}
		x, y := ebiten.CursorPosition()
		position := scene.Camera().ToWorld(float64(x), float64(y), g.config.Width, g.config.Height)
		if pressed {
			scene.dispatchMouseDown(position, button)
		}
		if released {
			scene.dispatchMouseUp(position, button)
		}
	}

	scene.dispatchFrameUpdate(deltaSeconds)
	return scene.step(deltaSeconds)
}

// Draw renders the scene and, in debug mode, the fixture outlines.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.draw(screen)
	if g.debug {
		drawDebug(screen, g.scene)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Width, g.config.Height
}

// Run opens the window and blocks until the game ends.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
