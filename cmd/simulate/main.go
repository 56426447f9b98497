// Command simulate runs a scene headless for a fixed number of refreshes
// and prints the engine counters. It is used to check scene files and
// collision behavior without a window.
//
// Usage:
//
//	go run ./cmd/simulate -config configs/engine2d.yaml -scene swarm -ticks 600
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/geom"
	"github.com/decker502/engine2d/pkg/logger"
	"github.com/decker502/engine2d/pkg/objects"
	"github.com/decker502/engine2d/pkg/scenes"
)

var (
	configPath = flag.String("config", "configs/engine2d.yaml", "scene configuration file")
	sceneName  = flag.String("scene", "", "scene to run (default: first)")
	ticks      = flag.Int("ticks", 600, "number of refreshes to deliver")
	interval   = flag.Float64("interval", 1000.0/60, "milliseconds between refreshes")
	fps        = flag.Float64("fps", -1, "override the configured simulation rate")
	verbose    = flag.Bool("verbose", false, "log at debug level")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Development: true})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sched := game.NewManualScheduler()
	engine, err := game.NewEngine(game.Options{
		Surface:   game.NopSurface{Size: geom.Dimension{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}},
		Scheduler: sched,
		Logger:    log,
		FPS:       cfg.Engine.FPS,
	})
	if err != nil {
		return err
	}
	if *fps >= 0 {
		engine.SetFPS(*fps)
	}

	if _, err := scenes.NewLoader(nil, objects.Deps{}, log).LoadAll(engine, cfg); err != nil {
		return err
	}
	if err := scenes.Select(engine, *sceneName); err != nil {
		return err
	}

	engine.Start()
	fired := sched.Run(0, *interval, *ticks)
	engine.Stop()
	log.Debug("simulation finished", zap.Int("fired", fired))

	report(engine)
	return nil
}

func report(e *game.Engine) {
	s := e.Stats()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if scene := e.CurrentScene(); scene != nil {
		fmt.Fprintf(w, "scene\t%s (%d objects)\n", scene.Name(), scene.Len())
	}
	fmt.Fprintf(w, "ticks\t%d\n", s.Ticks)
	fmt.Fprintf(w, "frames\t%d\n", s.SimulatedFrames)
	fmt.Fprintf(w, "throttled\t%d\n", s.ThrottledTicks)
	fmt.Fprintf(w, "average fps\t%v\n", e.AverageFPS())
	fmt.Fprintf(w, "skipped fps\t%v\n", e.SkippedFPS())
	fmt.Fprintf(w, "elapsed ms\t%.1f\n", e.ElapsedTime())
	for _, k := range []game.TransitionKind{game.Enter, game.Stay, game.Exit} {
		fmt.Fprintf(w, "collision %s\t%d\n", k, s.Collisions[k])
		fmt.Fprintf(w, "trigger %s\t%d\n", k, s.Triggers[k])
	}
	fmt.Fprintf(w, "skipped pairings\t%d\n", s.SkippedPairings)
	fmt.Fprintf(w, "deferred mutations\t%d\n", s.DeferredMutations)

	if scene := e.CurrentScene(); scene != nil {
		for _, o := range scene.Objects() {
			if m, ok := o.(*objects.Mover); ok {
				fmt.Fprintf(w, "mover %s\t%d bounces\n", m.Name(), m.Bounces())
			}
		}
	}
}
