// cmd/gravsim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gravity/pkg/audio"
	"github.com/opd-ai/go-gravity/pkg/config"
	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/event"
	"github.com/opd-ai/go-gravity/pkg/logging"
	"github.com/opd-ai/go-gravity/pkg/render"
	engorender "github.com/opd-ai/go-gravity/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "scenario.json", "Path to scenario file (.json, .yaml or .toml)")
	createDefault := flag.Bool("default", false, "Write the default scenario to -config and exit")
	renderer := flag.String("renderer", "engo", "Renderer type: 'engo', 'terminal' or 'headless'")
	ticks := flag.Int("ticks", 1200, "Ticks to run in headless mode")
	logPath := flag.String("log", "", "Write logs to this file instead of stderr")
	withAudio := flag.Bool("audio", false, "Play a sound on collisions")
	watch := flag.Bool("watch", false, "Reload the scenario when the file changes")
	flag.Parse()

	logger, closeLog, err := newLogger(*logPath, *renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx := logging.WithRunID(context.Background(), "")

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	clock, err := engine.NewClockFromConfig(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}

	subscribeEvents(ctx, logger, clock.EventBus)

	if *withAudio || cfg.Display.Audio {
		sound := audio.NewCollisionSound(logger)
		if err := sound.Initialize(); err != nil {
			logger.Warn(ctx, "Audio unavailable, continuing without sound", "error", err.Error())
		} else {
			sound.Attach(clock.EventBus)
			defer sound.Close()
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		if err := watchConfig(ctx, logger, *configPath, clock); err != nil {
			logger.Warn(ctx, "Scenario hot reload disabled", "error", err.Error())
		}
	}

	switch *renderer {
	case "headless":
		runHeadless(ctx, logger, clock, *ticks)
	case "terminal":
		if err := runTerminal(ctx, logger, clock, cfg); err != nil {
			logger.Error(ctx, "Terminal renderer failed", err)
			os.Exit(1)
		}
	case "engo":
		runEngo(clock, cfg, logger)
	default:
		logger.Error(ctx, "Unknown renderer", errors.New("unsupported renderer"), "renderer", *renderer)
		os.Exit(2)
	}
}

// newLogger picks the log destination. The terminal renderer owns the
// screen, so without -log its logs are dropped.
func newLogger(path, renderer string) (*logging.Logger, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLoggerTo(f), func() { f.Close() }, nil
	}
	if renderer == "terminal" {
		return logging.Discard(), func() {}, nil
	}
	return logging.NewLogger(), func() {}, nil
}

func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.SimulationConfig, error) {
	var cfg *config.SimulationConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration", "config_path", path)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func subscribeEvents(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.BodiesCollided, func(e event.Event) {
		if c, ok := e.(*event.CollisionEvent); ok {
			logger.Debug(ctx, "Bodies collided",
				"tick", c.Tick,
				"body_a", uint64(c.BodyA),
				"body_b", uint64(c.BodyB),
				"closing_speed", c.ClosingSpeed)
		}
	})
	bus.Subscribe(event.BodyLaunched, func(e event.Event) {
		if b, ok := e.(*event.BodyEvent); ok {
			logger.Info(ctx, "Body launched",
				"body_id", uint64(b.BodyID),
				"x", b.Position.X, "y", b.Position.Y,
				"vx", b.Velocity.X, "vy", b.Velocity.Y)
		}
	})
	for _, t := range []event.Type{event.SimulationPaused, event.SimulationResumed} {
		bus.Subscribe(t, func(e event.Event) {
			logger.Info(ctx, "Pause toggled", "event", string(e.GetType()))
		})
	}
}

// watchConfig resets the clock to the scenario in path whenever it changes.
// Physics and clock settings keep the values the process started with, and
// reloaded bodies take over the IDs of the bodies they replace, so the launch
// gesture built at startup keeps working.
func watchConfig(ctx context.Context, logger *logging.Logger, path string, clock *engine.Clock) error {
	watcher, err := config.NewWatcher(path, logger)
	if err != nil {
		return err
	}

	go watcher.Run(ctx)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case cfg := <-watcher.Updates():
				scenario, err := clock.ScenarioFromConfig(cfg)
				if err != nil {
					logger.Warn(ctx, "Reloaded scenario rejected", "error", err.Error())
					continue
				}
				clock.Submit(engine.Input{Kind: engine.Reset, Scenario: scenario})
			}
		}
	}()

	logger.Info(ctx, "Watching scenario file", "config_path", path)
	return nil
}

func runHeadless(ctx context.Context, logger *logging.Logger, clock *engine.Clock, ticks int) {
	kinetic, potential := clock.Energy()
	logger.Info(ctx, "Headless run starting",
		"ticks", ticks,
		"kinetic", kinetic,
		"potential", potential)

	ran := 0
	for ran < ticks && ctx.Err() == nil && !clock.Done() {
		batch := min(ticks-ran, 120)
		ran += clock.RunTicks(batch)
	}

	out := render.NewNullRenderer(ctx, logger)
	frame := clock.Snapshot()
	frame.Draw(out)

	for _, b := range frame.Bodies {
		logger.Info(ctx, "Final body state",
			"body_id", uint64(b.ID),
			"x", b.Position.X, "y", b.Position.Y,
			"vx", b.Velocity.X, "vy", b.Velocity.Y)
	}

	kinetic, potential = clock.Energy()
	logger.Info(ctx, "Headless run finished",
		"ticks", ran,
		"kinetic", kinetic,
		"potential", potential)
}

func runTerminal(ctx context.Context, logger *logging.Logger, clock *engine.Clock, cfg *config.SimulationConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	frame := clock.Snapshot()
	r := render.NewTerminalRenderer(screen, frame.Bounds, cfg.Display.ShowFPS)
	input := render.NewTerminalInput(screen, r, clock, launchGesture(clock, cfg), logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		input.Run(ctx)
		cancel()
	}()

	return clock.Run(ctx, r)
}

func runEngo(clock *engine.Clock, cfg *config.SimulationConfig, logger *logging.Logger) {
	scene := engorender.NewSimulationScene(clock, cfg, launchGesture(clock, cfg), logger)
	engo.Run(engorender.RunOptions(cfg), scene)
}

// launchGesture targets the configured launch body, or nil when the
// scenario has nothing to launch.
func launchGesture(clock *engine.Clock, cfg *config.SimulationConfig) *engine.LaunchGesture {
	i := cfg.LaunchIndex()
	bodies := clock.Scenario().Bodies
	if i < 0 || i >= len(bodies) {
		return nil
	}
	return engine.NewLaunchGesture(bodies[i].ID, cfg.Display.LaunchScale)
}
