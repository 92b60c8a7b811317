// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravity/pkg/config"
	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/logging"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

// SimulationScene shows a running clock in an engo window
type SimulationScene struct {
	clock   *engine.Clock
	cfg     *config.SimulationConfig
	logger  *logging.Logger
	gesture *engine.LaunchGesture

	renderer *EngoRenderer
	input    *InputSystem
}

// NewSimulationScene creates a new scene. gesture may be nil to disable launching.
func NewSimulationScene(clock *engine.Clock, cfg *config.SimulationConfig, gesture *engine.LaunchGesture, logger *logging.Logger) *SimulationScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SimulationScene{
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
		gesture: gesture,
	}
}

// Type returns the scene type (required by Engo)
func (scene *SimulationScene) Type() string {
	return "SimulationScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *SimulationScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *SimulationScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	if scene.cfg.Display.ShowFPS {
		world.AddSystem(&common.FPSSystem{Display: true})
	}

	bounds := physics.Bounds{Width: scene.cfg.Bounds.Width, Height: scene.cfg.Bounds.Height}
	scene.renderer = NewEngoRenderer(renderSystem, bounds, engo.GameWidth(), engo.GameHeight())

	SetupInputBindings()
	scene.input = NewInputSystem(scene.clock, scene.gesture, scene.renderer, scene.logger)
	world.AddSystem(scene.input)
	world.AddSystem(NewSimulationSystem(scene.clock, scene.renderer))

	scene.logger.Info(context.Background(), "engo scene ready",
		"width", engo.GameWidth(),
		"height", engo.GameHeight())
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SimulationScene) Exit() {
	scene.logger.Info(context.Background(), "window closed", "tick", scene.clock.CurrentTick())
}

// RunOptions returns the window settings for cfg
func RunOptions(cfg *config.SimulationConfig) engo.RunOptions {
	return engo.RunOptions{
		Title:    cfg.Display.Title,
		Width:    int(cfg.Bounds.Width),
		Height:   int(cfg.Bounds.Height),
		VSync:    true,
		FPSLimit: cfg.Clock.FrameRate,
	}
}
