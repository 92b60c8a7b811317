// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/logging"
)

// Button names registered by SetupInputBindings
const (
	buttonQuit  = "quit"
	buttonPause = "pause"
	buttonReset = "reset"
)

// inputSink receives inputs; engine.Clock implements it
type inputSink interface {
	Submit(inputs ...engine.Input)
}

// InputSystem turns keyboard and mouse input into simulation inputs.
// Escape quits, space pauses, R resets, and a left-button drag launches
// the gesture's body.
type InputSystem struct {
	sink     inputSink
	gesture  *engine.LaunchGesture
	renderer *EngoRenderer
	logger   *logging.Logger
}

// NewInputSystem creates a new input system. gesture may be nil to disable launching.
func NewInputSystem(sink inputSink, gesture *engine.LaunchGesture, renderer *EngoRenderer, logger *logging.Logger) *InputSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	return &InputSystem{
		sink:     sink,
		gesture:  gesture,
		renderer: renderer,
		logger:   logger,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update processes input once per frame
func (is *InputSystem) Update(dt float32) {
	is.handleButtons(
		engo.Input.Button(buttonQuit).JustPressed(),
		engo.Input.Button(buttonPause).JustPressed(),
		engo.Input.Button(buttonReset).JustPressed(),
	)
	mouse := engo.Input.Mouse
	is.handleMouse(mouse.Action, mouse.Button, engo.Point{X: mouse.X, Y: mouse.Y})
}

func (is *InputSystem) handleButtons(quit, pause, reset bool) {
	if quit {
		is.logger.Info(context.Background(), "quit requested from window")
		is.sink.Submit(engine.Input{Kind: engine.Quit})
		return
	}
	if pause {
		is.sink.Submit(engine.Input{Kind: engine.TogglePause})
	}
	if reset {
		is.sink.Submit(engine.Input{Kind: engine.Reset})
	}
}

func (is *InputSystem) handleMouse(action engo.Action, button engo.MouseButton, at engo.Point) {
	if is.gesture == nil || button != engo.MouseButtonLeft {
		return
	}

	pos := is.renderer.screenToWorld(at)
	switch action {
	case engo.Press:
		is.gesture.Press(pos)
	case engo.Release:
		if inputs, ok := is.gesture.Release(pos); ok {
			is.logger.Debug(context.Background(), "launch gesture",
				"body_id", uint64(is.gesture.BodyID),
				"vx", inputs[1].Vector.X,
				"vy", inputs[1].Vector.Y)
			is.sink.Submit(inputs...)
		}
	}
}

// SetupInputBindings registers the simulation's key bindings
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape)
	engo.Input.RegisterButton(buttonPause, engo.KeySpace)
	engo.Input.RegisterButton(buttonReset, engo.KeyR)
}
