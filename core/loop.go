package core

import (
	"context"
	"log"
	"sync"
	"time"
)

// GameLoop steps a Simulation at a fixed tick rate, or as fast as possible
// when the tick rate is zero.
type GameLoop struct {
	sim      *Simulation
	tickRate int
	maxTicks int
	onTick   func(*Simulation)

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	stopOnce sync.Once
}

// LoopOption configures a GameLoop.
type LoopOption func(*GameLoop)

// WithMaxTicks stops the loop after n steps. Zero runs until stopped.
func WithMaxTicks(n int) LoopOption {
	return func(g *GameLoop) { g.maxTicks = n }
}

// WithOnTick registers a callback run after every step.
func WithOnTick(fn func(*Simulation)) LoopOption {
	return func(g *GameLoop) { g.onTick = fn }
}

func NewGameLoop(sim *Simulation, tickRate int, opts ...LoopOption) *GameLoop {
	g := &GameLoop{
		sim:      sim,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run blocks until the context is done, Stop is called, or the tick limit
// is reached.
func (g *GameLoop) Run(ctx context.Context) {
	g.setRunning(true)
	defer g.setRunning(false)

	var tickC <-chan time.Time
	if g.tickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
		defer ticker.Stop()
		tickC = ticker.C
		log.Printf("Game loop started at %d ticks/second", g.tickRate)
	} else {
		log.Println("Game loop started unthrottled")
	}

	for {
		if g.maxTicks > 0 && g.sim.Tick() >= g.maxTicks {
			log.Printf("Game loop finished after %d ticks", g.sim.Tick())
			return
		}

		if tickC == nil {
			select {
			case <-ctx.Done():
				log.Println("Game loop stopped")
				return
			case <-g.stopChan:
				log.Println("Game loop stopped")
				return
			default:
			}
			g.tick()
			continue
		}

		select {
		case <-ctx.Done():
			log.Println("Game loop stopped")
			return
		case <-g.stopChan:
			log.Println("Game loop stopped")
			return
		case <-tickC:
			g.tick()
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

// Running reports whether Run is active.
func (g *GameLoop) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

func (g *GameLoop) setRunning(v bool) {
	g.mu.Lock()
	g.running = v
	g.mu.Unlock()
}

func (g *GameLoop) tick() {
	g.sim.Step()
	if g.onTick != nil {
		g.onTick(g.sim)
	}
}
