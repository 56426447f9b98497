// Package terminal runs the engine inside a terminal using tcell.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/objects"
	"github.com/decker502/engine2d/pkg/scenes"
)

// ErrNoConfig is returned by New without an engine configuration.
var ErrNoConfig = errors.New("terminal host requires an engine configuration")

// Config holds what New needs to build the host.
type Config struct {
	// Engine is the loaded configuration file.
	Engine *config.EngineConfig
	// Screen defaults to the real terminal. Tests pass a simulation screen.
	Screen tcell.Screen
	// Scene selects the starting scene by name.
	Scene string
	// Settings persists user changes; may be nil.
	Settings *game.SettingsManager
	// Sound plays cues; may be nil.
	Sound game.Sound
	// Logger must not write to the terminal the host draws on.
	Logger *zap.Logger
}

// Host owns the screen and feeds the engine one tick per refresh.
type Host struct {
	screen   tcell.Screen
	engine   *game.Engine
	sched    *game.ManualScheduler
	surface  *cellSurface
	input    *keyInput
	settings *game.SettingsManager
	log      *zap.Logger

	refresh time.Duration
	start   time.Time
	finish  sync.Once
}

// New initializes the screen, builds the engine and loads the configured
// scenes. The screen is released again when New fails.
func New(cfg Config) (*Host, error) {
	if cfg.Engine == nil {
		return nil, ErrNoConfig
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ec := cfg.Engine
	refresh := time.Second / 60
	if ec.Terminal.RefreshHz > 0 {
		refresh = time.Second / time.Duration(ec.Terminal.RefreshHz)
	}

	screen := cfg.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create terminal screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	screen.HideCursor()

	h := &Host{
		screen:   screen,
		sched:    game.NewManualScheduler(),
		surface:  newCellSurface(screen, ec.Terminal.CellWidth, ec.Terminal.CellHeight),
		input:    &keyInput{release: time.Duration(ec.Terminal.KeyReleaseMs) * time.Millisecond},
		settings: cfg.Settings,
		log:      log.Named("terminal"),
		refresh:  refresh,
	}

	engine, err := game.NewEngine(game.Options{
		Surface:   h.surface,
		Scheduler: h.sched,
		Input:     h.input,
		Sound:     cfg.Sound,
		Logger:    log.Named("engine"),
		FPS:       ec.Engine.FPS,
		ShowFPS:   ec.Engine.ShowFPS,
	})
	if err != nil {
		h.fini()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	h.engine = engine

	var deps objects.Deps
	if cfg.Settings != nil {
		deps.Prefs = cfg.Settings
		if cfg.Settings.Stored() {
			cfg.Settings.Apply(engine)
		}
	}
	if _, err := scenes.NewLoader(nil, deps, log).LoadAll(engine, ec); err != nil {
		h.fini()
		return nil, fmt.Errorf("failed to load scenes: %w", err)
	}
	if err := scenes.Select(engine, cfg.Scene); err != nil {
		h.fini()
		return nil, err
	}
	return h, nil
}

// Engine returns the engine driven by the host.
func (h *Host) Engine() *game.Engine { return h.engine }

// Run pumps terminal events and ticks the engine until Escape or Ctrl-C is
// pressed or ctx is cancelled. The screen is finalized before Run returns.
func (h *Host) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)

	g.Go(func() error {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer h.fini()

		ticker := time.NewTicker(h.refresh)
		defer ticker.Stop()

		h.start = time.Now()
		h.engine.Start()
		h.log.Info("terminal host running", zap.Duration("refresh", h.refresh))

		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				if !h.handle(ev, time.Now()) {
					return nil
				}
			case now := <-ticker.C:
				h.tick(now)
			}
		}
	})

	err := g.Wait()
	return errors.Join(err, h.close())
}

// handle applies one terminal event and reports whether to keep running.
func (h *Host) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if name, ok := keyName(ev); ok {
			h.input.press(name, now)
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.surface.resize()
		h.log.Debug("terminal resized", zap.Int("cols", h.surface.cols), zap.Int("rows", h.surface.rows))
	}
	return true
}

// tick delivers one refresh to the engine and shows the result.
func (h *Host) tick(now time.Time) {
	if h.start.IsZero() {
		h.start = now
	}
	h.input.expire(now)
	h.sched.Advance(float64(now.Sub(h.start)) / float64(time.Millisecond))
	h.screen.Show()
}

func (h *Host) fini() {
	h.finish.Do(h.screen.Fini)
}

// close stops the engine and saves the settings.
func (h *Host) close() error {
	h.engine.Stop()
	h.fini()
	if h.settings == nil {
		return nil
	}
	h.settings.Capture(h.engine)
	if err := h.settings.Save(); err != nil {
		return fmt.Errorf("failed to save settings on exit: %w", err)
	}
	return nil
}
