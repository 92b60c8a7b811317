// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/logging"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

// NullRenderer is an engine.Renderer that only logs. Headless runs use it
// to report the final frame.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
	frames uint64
	tick   uint64
}

// NewNullRenderer creates a NullRenderer logging at debug level to logger.
// A nil logger discards everything.
func NewNullRenderer(ctx context.Context, logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    ctx,
	}
}

// BeginFrame implements engine.FrameObserver.
func (d *NullRenderer) BeginFrame(frame engine.Frame) {
	d.tick = frame.Tick
}

// Clear implements engine.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called", "tick", d.tick)
}

// RenderTrail implements engine.Renderer.
func (d *NullRenderer) RenderTrail(id physics.ID, points []physics.Vector2D) {
	d.logger.Debug(d.ctx, "RenderTrail called",
		"body_id", uint64(id),
		"points", len(points),
	)
}

// RenderBody implements engine.Renderer.
func (d *NullRenderer) RenderBody(body engine.BodyState) {
	d.logger.Debug(d.ctx, "RenderBody called",
		"body_id", uint64(body.ID),
		"kind", body.Kind.String(),
		"x", body.Position.X,
		"y", body.Position.Y,
		"vx", body.Velocity.X,
		"vy", body.Velocity.Y,
	)
}

// Present implements engine.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(d.ctx, "Present called", "frames", d.frames)
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}
