package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	engine "github.com/Josef-Friedrich/engine-alpha"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "draw fixture outlines")
	flag.Parse()

	cfg := engine.DefaultConfig()
	cfg.Title = "engine demo"
	if *configPath != "" {
		loaded, err := engine.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug = true
	}

	game := engine.NewGame(cfg)
	scene := game.Scene()
	scene.SetGravityOfEarth()
	scene.SetBackgroundColor(color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})

	ground := engine.NewRectangle(20, 1)
	ground.SetPosition(-10, -6)
	ground.MakeStatic()
	ground.SetColor(color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff})

	box := engine.NewRectangle(1, 1)
	box.SetPosition(-0.5, 2)
	box.MakeDynamic()
	box.SetColor(color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff})

	ball := engine.NewCircle(1)
	ball.SetPosition(1, 4)
	ball.MakeDynamic()
	ball.SetRestitution(0.7)
	ball.SetColor(color.RGBA{R: 0x40, G: 0x80, B: 0xe0, A: 0xff})

	scene.Add(box.Actor, ball.Actor, ground.Actor)

	// Space gives the box a kick; applied before the box is added this
	// would simply be replayed when it mounts.
	box.AddKeyListener(keyListener{box: box})

	if *configPath != "" {
		watcher, err := engine.WatchConfig(*configPath)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			defer watcher.Close()
			go func() {
				for cfg := range watcher.Events {
					scene.Camera().SetPixelsPerMeter(cfg.PixelsPerMeter)
					game.SetDebug(cfg.Debug)
				}
			}()
		}
	}

	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}

type keyListener struct {
	box *engine.Rectangle
}

func (k keyListener) OnKeyDown(key ebiten.Key) {
	if key == ebiten.KeySpace && k.box.IsGrounded() {
		k.box.ApplyImpulse(engine.NewVector(0, 60))
	}
}

func (k keyListener) OnKeyUp(ebiten.Key) {}
