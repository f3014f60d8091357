package main

import (
	"flag"
	"image"
	"log"
	"time"

	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/scenes"
	"github.com/automoto/skyclimb/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(scene Scene) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scene,
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.Viewer.Width, config.Viewer.Height)
	return config.Viewer.Width, config.Viewer.Height
}

func main() {
	seed := flag.Int64("seed", 0, "Generator seed (0 = continue from the last saved run)")
	configPath := flag.String("config", "", "YAML config override (default $"+config.EnvConfigPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Apply()

	ebiten.SetWindowSize(int(float64(config.Viewer.Width)*config.Viewer.Scale), int(float64(config.Viewer.Height)*config.Viewer.Scale))
	ebiten.SetWindowTitle("skyclimb")

	persistence, err := systems.InitPersistence("skyclimb")
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
		saved, err := persistence.LoadProgress()
		if err != nil {
			log.Printf("Warning: Could not load progress: %v", err)
		}
		if saved != nil && saved.LastSeed != 0 {
			*seed = saved.LastSeed + 1
		}
	}

	scene := scenes.NewClimbScene(persistence, *seed)
	err = ebiten.RunGame(NewGame(scene))
	scene.Close()
	if err != nil {
		log.Fatal(err)
	}
}
