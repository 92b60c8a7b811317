package engine

import (
	"image/color"

	"github.com/opd-ai/go-gravity/pkg/physics"
)

// Renderer draws frames. Methods are called in the order Clear, RenderTrail
// for each trail, RenderBody for each body, Present.
type Renderer interface {
	Clear()
	RenderTrail(id physics.ID, points []physics.Vector2D)
	RenderBody(body BodyState)
	Present()
}

// FrameObserver is implemented by renderers that need frame-wide state,
// such as the bounds to scale to, before drawing starts.
type FrameObserver interface {
	BeginFrame(frame Frame)
}

// BodyState is a snapshot of a body's display state
type BodyState struct {
	ID       physics.ID
	Kind     physics.Kind
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
	Color    color.RGBA
}

// Frame is a copy of everything a renderer needs; it shares no memory with
// the simulation.
type Frame struct {
	Tick   uint64
	Paused bool
	Bounds physics.Bounds
	Bodies []BodyState
	Trails map[physics.ID][]physics.Vector2D
}

// Draw feeds the frame to a renderer
func (f Frame) Draw(r Renderer) {
	if fo, ok := r.(FrameObserver); ok {
		fo.BeginFrame(f)
	}

	r.Clear()
	for _, body := range f.Bodies {
		if trail := f.Trails[body.ID]; len(trail) > 0 {
			r.RenderTrail(body.ID, trail)
		}
	}
	for _, body := range f.Bodies {
		r.RenderBody(body)
	}
	r.Present()
}
