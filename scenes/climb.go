package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/skyclimb/assets"
	cfg "github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/core"
	"github.com/automoto/skyclimb/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

const layerDefault ecs.LayerID = iota

const maxStepsPerFrame = 8

// ClimbScene runs a Simulation and draws it. Space pauses, N starts a new
// run, D toggles the collision view, Up/Down change the speed.
type ClimbScene struct {
	ecs         *ecs.ECS
	sim         *core.Simulation
	persistence *systems.Persistence
	progress    *systems.SavedProgress

	seed   int64
	paused bool
	debug  bool
	speed  int
	once   sync.Once
}

// NewClimbScene creates a scene that starts climbing with seed.
func NewClimbScene(p *systems.Persistence, seed int64) *ClimbScene {
	return &ClimbScene{persistence: p, seed: seed, speed: 1}
}

func (cs *ClimbScene) Update() {
	cs.once.Do(cs.configure)
	cs.ecs.Update()
}

func (cs *ClimbScene) Draw(screen *ebiten.Image) {
	// Clear before the first configure as well
	screen.Fill(color.Black)

	if cs.ecs == nil {
		return
	}
	cs.ecs.Draw(screen)
}

// Close records the current run.
func (cs *ClimbScene) Close() {
	if cs.sim == nil || cs.sim.Tick() == 0 {
		return
	}
	progress, err := cs.persistence.RecordRun(cs.seed, cs.sim.Height(), cs.sim.Generator.Tier().Name)
	if err != nil {
		log.Printf("Warning: Could not record run: %v", err)
	}
	cs.progress = progress
}

func (cs *ClimbScene) configure() {
	if cs.progress == nil {
		progress, err := cs.persistence.LoadProgress()
		if err != nil {
			log.Printf("Warning: Could not load progress: %v", err)
		}
		cs.progress = progress
	}

	sim, err := core.NewSimulation(core.Options{
		Config:   cfg.Defaults(),
		Patterns: assets.MustLoadPatterns(),
		Seed:     cs.seed,
	})
	if err != nil {
		panic("failed to create simulation: " + err.Error())
	}
	cs.sim = sim
	log.Printf("Climbing with seed %d", cs.seed)

	e := ecs.NewECS(sim.Level.World())
	e.AddSystem(cs.updateInput)
	e.AddSystem(cs.updateSimulation)

	e.AddRenderer(layerDefault, cs.drawWorld)
	e.AddRenderer(layerDefault, cs.drawDebug)
	e.AddRenderer(layerDefault, cs.drawHUD)
	cs.ecs = e
}

func (cs *ClimbScene) restart() {
	cs.Close()
	cs.seed++
	cs.paused = false
	cs.configure()
}

func (cs *ClimbScene) updateInput(_ *ecs.ECS) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		cs.paused = !cs.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		cs.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		cs.debug = !cs.debug
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		cs.speed = min(cs.speed*2, maxStepsPerFrame)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		cs.speed = max(cs.speed/2, 1)
	}
}

func (cs *ClimbScene) updateSimulation(_ *ecs.ECS) {
	if cs.paused {
		return
	}
	for i := 0; i < cs.speed; i++ {
		cs.sim.Step()
	}
}
