// Command climbsim runs the level generator headless: a climber rises at a
// constant speed while the generator keeps the stack filled ahead of it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/skyclimb/assets"
	"github.com/automoto/skyclimb/config"
	"github.com/automoto/skyclimb/core"
	"github.com/automoto/skyclimb/metrics"
	"github.com/automoto/skyclimb/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	seed := flag.Int64("seed", 0, "Generator seed (0 = derive from the run id)")
	ticks := flag.Int("ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	profile := flag.String("profile", config.DefaultProfile, "Hardware profile for the per-tick generation cap")
	configPath := flag.String("config", "", "YAML config override (default $"+config.EnvConfigPath+")")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address, e.g. :2112")
	tui := flag.Bool("tui", false, "Draw the climb in the terminal")
	realtime := flag.Bool("realtime", false, "Step at the configured tick rate instead of as fast as possible")
	logFile := flag.String("log", "", "Write logs to this file")
	flag.Parse()

	runID := uuid.New()
	log.SetPrefix(fmt.Sprintf("[%s] ", runID.String()[:8]))
	if *seed == 0 {
		*seed = int64(runID.ID())
	}

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else if *tui {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Apply()

	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}
	if *metricsAddr != "" {
		srv := metrics.Serve(*metricsAddr, reg)
		defer srv.Close()
	}

	sim, err := core.NewSimulation(core.Options{
		Config:   cfg,
		Patterns: assets.MustLoadPatterns(),
		Recorder: recorder,
		Profile:  *profile,
		Seed:     *seed,
	})
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}

	tickRate := 0
	if *realtime || *tui {
		tickRate = cfg.Sim.TickRate
	}

	var opts []core.LoopOption
	if *ticks > 0 {
		opts = append(opts, core.WithMaxTicks(*ticks))
	}

	var screen tcell.Screen
	if *tui {
		screen, err = tcell.NewScreen()
		if err != nil {
			log.Fatalf("Failed to create screen: %v", err)
		}
		if err := screen.Init(); err != nil {
			log.Fatalf("Failed to init screen: %v", err)
		}
		view := ui.NewTerminalView(screen, cfg.Sim.LevelWidth)
		opts = append(opts, core.WithOnTick(view.Draw))
	}

	loop := core.NewGameLoop(sim, tickRate, opts...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		loop.Stop()
	}()
	if screen != nil {
		go pollKeys(screen, loop)
	}

	log.Printf("Starting climb (seed: %d, profile: %s, cap: %d/tick)", *seed, *profile, sim.Generator.PerTickCap())
	start := time.Now()
	loop.Run(context.Background())
	if screen != nil {
		screen.Fini()
	}

	stats := sim.Generator.Stats()
	summary := fmt.Sprintf("Climbed %.0f px in %d ticks (%s): %d slots generated, %d cleaned, %d cap hits, %d fallbacks, tier %s",
		sim.Height(), sim.Tick(), time.Since(start).Round(time.Millisecond),
		stats.Generated, stats.Cleaned, stats.CapHits, stats.FallbackSlots, sim.Generator.Tier().Name)
	log.Println(summary)
	if *tui && *logFile == "" {
		fmt.Println(summary)
	}
}

// pollKeys stops the loop on Escape, q or Ctrl-C.
func pollKeys(screen tcell.Screen, loop *core.GameLoop) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				loop.Stop()
				return
			}
		}
	}
}
