package render

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/logging"
)

// InputSink receives inputs; engine.Clock implements it
type InputSink interface {
	Submit(inputs ...engine.Input)
}

// TerminalInput translates tcell keyboard and mouse events into inputs.
// Esc, q and Ctrl-C quit, space pauses, r resets, and a left-button drag
// launches the gesture's body.
type TerminalInput struct {
	screen   tcell.Screen
	renderer *TerminalRenderer
	sink     InputSink
	gesture  *engine.LaunchGesture
	logger   *logging.Logger
}

// NewTerminalInput creates an input handler. gesture may be nil to disable launching.
func NewTerminalInput(screen tcell.Screen, renderer *TerminalRenderer, sink InputSink, gesture *engine.LaunchGesture, logger *logging.Logger) *TerminalInput {
	if logger == nil {
		logger = logging.Discard()
	}
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	return &TerminalInput{
		screen:   screen,
		renderer: renderer,
		sink:     sink,
		gesture:  gesture,
		logger:   logger,
	}
}

// Run polls events until ctx is done, the screen is finalised, or the user quits
func (in *TerminalInput) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		ev := in.screen.PollEvent()
		if ev == nil {
			return
		}
		if !in.Handle(ctx, ev) {
			return
		}
	}
}

// Handle processes one event and returns false once the user has quit
func (in *TerminalInput) Handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.handleKey(ctx, ev)
	case *tcell.EventMouse:
		in.handleMouse(ctx, ev)
	case *tcell.EventResize:
		in.screen.Sync()
	}
	return true
}

func (in *TerminalInput) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
		in.quit(ctx)
		return false
	case ev.Key() == tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			in.quit(ctx)
			return false
		case ' ':
			in.sink.Submit(engine.Input{Kind: engine.TogglePause})
		case 'r':
			in.sink.Submit(engine.Input{Kind: engine.Reset})
		}
	}
	return true
}

func (in *TerminalInput) quit(ctx context.Context) {
	in.logger.Info(ctx, "quit requested from terminal")
	in.sink.Submit(engine.Input{Kind: engine.Quit})
}

func (in *TerminalInput) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	if in.gesture == nil {
		return
	}
	x, y := ev.Position()
	pos := in.renderer.ScreenToWorld(x, y)

	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !in.gesture.Active():
		in.gesture.Press(pos)
	case !pressed && in.gesture.Active():
		inputs, ok := in.gesture.Release(pos)
		if !ok {
			return
		}
		in.logger.Debug(ctx, "launch gesture",
			"body_id", uint64(in.gesture.BodyID),
			"vx", inputs[1].Vector.X,
			"vy", inputs[1].Vector.Y)
		in.sink.Submit(inputs...)
	}
}
