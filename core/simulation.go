package core

import (
	"fmt"

	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/levelgen"
	"github.com/automoto/skyclimb/shared/leveldata"
)

// Options configure a Simulation.
type Options struct {
	Config   *config.File // nil: package defaults
	Patterns *leveldata.PatternTables
	Recorder levelgen.Recorder
	Profile  string
	Seed     int64
}

// Simulation couples a Level with the generator that fills it.
type Simulation struct {
	Level     *Level
	Generator *levelgen.Coordinator

	tick       int
	bestHeight float64
}

// NewSimulation builds a level and a generator that spawns into it.
func NewSimulation(opts Options) (*Simulation, error) {
	f := opts.Config
	if f == nil {
		f = config.Defaults()
	}

	level := NewLevel(f.Sim)
	level.platformHeight = f.Generation.PlatformHeight
	gen, err := levelgen.NewCoordinator(levelgen.Deps{
		Config:   f.Generation,
		Items:    f.Items,
		Tiers:    f.Tiers,
		Patterns: opts.Patterns,
		Pool:     level,
		World:    level,
		Recorder: opts.Recorder,
		Profile:  opts.Profile,
		Seed:     opts.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	gen.Reset(f.Sim.StartY)

	return &Simulation{Level: level, Generator: gen}, nil
}

// Step advances the world one tick and then lets the generator catch up.
func (s *Simulation) Step() {
	s.Level.Step(s.Generator.Tier().Hazard.Speed)
	s.Generator.Update(s.tick)
	s.tick++

	if y, ok := s.Level.CurrentPlayerY(); ok {
		s.bestHeight = max(s.bestHeight, s.Generator.AscentHeight(y))
	}
}

// Tick returns the number of steps taken.
func (s *Simulation) Tick() int { return s.tick }

// Height returns the highest ascent reached so far.
func (s *Simulation) Height() float64 { return s.bestHeight }
