// Command engine2d runs the configured scenes in a window or a terminal.
//
// Usage:
//
//	engine2d                         # window host, embedded configs/engine2d.yaml
//	engine2d --host terminal         # draw with terminal cells
//	engine2d -c my.yaml --scene swarm --fps 30 --show-fps
//
// Every flag can also be set through an ENGINE2D_* environment variable or
// a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/quasilyte/gdata/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/decker502/engine2d/pkg/app"
	"github.com/decker502/engine2d/pkg/audio"
	"github.com/decker502/engine2d/pkg/config"
	"github.com/decker502/engine2d/pkg/embedded"
	"github.com/decker502/engine2d/pkg/game"
	"github.com/decker502/engine2d/pkg/logger"
	"github.com/decker502/engine2d/pkg/terminal"
)

const (
	appName = "engine2d"
	version = "0.1.0"
)

// Host names accepted by --host.
const (
	hostWindow   = "window"
	hostTerminal = "terminal"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
	}

	embedded.Init(configsFS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    appName,
		Usage:   "run 2D scenes with box colliders",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "scene configuration `FILE` (default: embedded)",
				Sources: cli.EnvVars("ENGINE2D_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   hostWindow,
				Usage:   "where to draw: window or terminal",
				Sources: cli.EnvVars("ENGINE2D_HOST"),
				Validator: func(v string) error {
					if v != hostWindow && v != hostTerminal {
						return fmt.Errorf("unknown host %q, want %s or %s", v, hostWindow, hostTerminal)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:    "scene",
				Usage:   "start with the scene called `NAME`",
				Sources: cli.EnvVars("ENGINE2D_SCENE"),
			},
			&cli.FloatFlag{
				Name:    "fps",
				Usage:   "simulation rate, 0 runs on every refresh",
				Sources: cli.EnvVars("ENGINE2D_FPS"),
			},
			&cli.BoolFlag{
				Name:    "show-fps",
				Usage:   "draw the FPS overlay",
				Sources: cli.EnvVars("ENGINE2D_SHOW_FPS"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log at debug level",
				Sources: cli.EnvVars("ENGINE2D_VERBOSE"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to `FILE`",
				Sources: cli.EnvVars("ENGINE2D_LOG_FILE"),
			},
			&cli.BoolFlag{
				Name:    "no-settings",
				Usage:   "do not load or save user settings",
				Sources: cli.EnvVars("ENGINE2D_NO_SETTINGS"),
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("fps") {
		cfg.Engine.FPS = cmd.Float("fps")
	}
	if cmd.IsSet("show-fps") {
		cfg.Engine.ShowFPS = cmd.Bool("show-fps")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	host := cmd.String("host")
	logCfg := logger.Config{
		Level:       cfg.Engine.LogLevel,
		File:        cmd.String("log-file"),
		Development: cmd.Bool("verbose"),
		// The terminal host draws on stderr's terminal.
		Discard: host == hostTerminal,
	}
	if cmd.Bool("verbose") {
		logCfg.Level = "debug"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var settings *game.SettingsManager
	if !cmd.Bool("no-settings") {
		settings = openSettings(cfg, log)
	}

	log.Info("starting",
		zap.String("version", version),
		zap.String("host", host),
		zap.Int("scenes", len(cfg.Scenes)))

	switch host {
	case hostTerminal:
		return runTerminal(ctx, cmd, cfg, settings, log)
	default:
		return runWindow(cmd, cfg, settings, log)
	}
}

// openSettings opens the per-user settings store. Without one the settings
// stay in memory.
func openSettings(cfg *config.EngineConfig, log *zap.Logger) *game.SettingsManager {
	defaults := game.Settings{FPS: cfg.Engine.FPS, ShowFPS: cfg.Engine.ShowFPS}
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("settings storage unavailable", zap.Error(err))
		return game.NewSettingsManager(nil, defaults, log)
	}
	return game.NewSettingsManager(store, defaults, log)
}

func runWindow(cmd *cli.Command, cfg *config.EngineConfig, settings *game.SettingsManager, log *zap.Logger) error {
	a, err := app.NewApp(app.Config{
		Engine:   cfg,
		Scene:    cmd.String("scene"),
		Settings: settings,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	applyOverrides(cmd, a.Engine())
	return app.Run(a, cfg.Window.Title)
}

func runTerminal(ctx context.Context, cmd *cli.Command, cfg *config.EngineConfig, settings *game.SettingsManager, log *zap.Logger) error {
	var sound game.Sound
	if cfg.Audio.Enabled {
		beeper := audio.NewBeeper(audio.BeeperConfig{
			SampleRate: cfg.Audio.SampleRate,
			Volume:     cfg.Audio.Volume,
			CueLength:  time.Duration(cfg.Audio.CueMs) * time.Millisecond,
			BaseFreqHz: cfg.Audio.BaseFreqHz,
		}, log)
		if err := beeper.Initialize(); err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer beeper.Cleanup()
			sound = beeper
		}
	}

	h, err := terminal.New(terminal.Config{
		Engine:   cfg,
		Scene:    cmd.String("scene"),
		Settings: settings,
		Sound:    sound,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	applyOverrides(cmd, h.Engine())
	return h.Run(ctx)
}

// applyOverrides lets explicit flags win over stored settings.
func applyOverrides(cmd *cli.Command, e *game.Engine) {
	if cmd.IsSet("fps") {
		e.SetFPS(cmd.Float("fps"))
	}
	if cmd.IsSet("show-fps") {
		e.SetShowFPS(cmd.Bool("show-fps"))
	}
}
