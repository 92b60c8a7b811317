// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

const (
	trailDotSize = 2
	trailDim     = 0.55
	minBodySize  = 2
	trailZIndex  = 0
	bodyZIndex   = 1
)

// spriteSink is the part of common.RenderSystem the renderer uses
type spriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite keeps an entity's components alive; the render system holds
// pointers into it.
type sprite struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// EngoRenderer implements engine.Renderer using the Engo game engine.
// Bodies are circle entities, trails a pool of small square dots.
type EngoRenderer struct {
	sink   spriteSink
	bounds physics.Bounds
	viewW  float32
	viewH  float32

	bodies map[physics.ID]*sprite
	seen   map[physics.ID]bool
	colors map[physics.ID]color.RGBA

	dots     []*sprite
	dotsUsed int
}

// NewEngoRenderer creates a renderer drawing into a view of the given size
func NewEngoRenderer(sink spriteSink, bounds physics.Bounds, viewW, viewH float32) *EngoRenderer {
	return &EngoRenderer{
		sink:   sink,
		bounds: bounds,
		viewW:  viewW,
		viewH:  viewH,
		bodies: make(map[physics.ID]*sprite),
		seen:   make(map[physics.ID]bool),
		colors: make(map[physics.ID]color.RGBA),
	}
}

// BeginFrame implements engine.FrameObserver
func (r *EngoRenderer) BeginFrame(frame engine.Frame) {
	r.bounds = frame.Bounds
}

// worldToScreen converts world coordinates (y up) to view coordinates (y down)
func (r *EngoRenderer) worldToScreen(pos physics.Vector2D) engo.Point {
	sx, sy := r.scale()
	return engo.Point{
		X: float32(pos.X) * sx,
		Y: float32(r.bounds.Height-pos.Y) * sy,
	}
}

// screenToWorld is the inverse of worldToScreen
func (r *EngoRenderer) screenToWorld(p engo.Point) physics.Vector2D {
	sx, sy := r.scale()
	if sx == 0 || sy == 0 {
		return physics.Vector2D{}
	}
	return physics.Vector2D{
		X: float64(p.X / sx),
		Y: r.bounds.Height - float64(p.Y/sy),
	}
}

func (r *EngoRenderer) scale() (float32, float32) {
	if r.bounds.Width <= 0 || r.bounds.Height <= 0 {
		return 0, 0
	}
	return r.viewW / float32(r.bounds.Width), r.viewH / float32(r.bounds.Height)
}

// Clear implements engine.Renderer
func (r *EngoRenderer) Clear() {
	r.dotsUsed = 0
	for id := range r.seen {
		delete(r.seen, id)
	}
}

// RenderTrail implements engine.Renderer
func (r *EngoRenderer) RenderTrail(id physics.ID, points []physics.Vector2D) {
	c, ok := r.colors[id]
	if !ok {
		c = color.RGBA{128, 128, 128, 255}
	}
	dim := engine.Dim(c, trailDim)

	for _, p := range points {
		dot := r.nextDot()
		center := r.worldToScreen(p)
		dot.space.Position = engo.Point{X: center.X - trailDotSize/2, Y: center.Y - trailDotSize/2}
		dot.render.Color = dim
		dot.render.Hidden = false
	}
}

func (r *EngoRenderer) nextDot() *sprite {
	if r.dotsUsed < len(r.dots) {
		dot := r.dots[r.dotsUsed]
		r.dotsUsed++
		return dot
	}

	dot := &sprite{
		basic:  ecs.NewBasic(),
		render: common.RenderComponent{Drawable: common.Rectangle{}},
		space:  common.SpaceComponent{Width: trailDotSize, Height: trailDotSize},
	}
	dot.render.SetZIndex(trailZIndex)
	r.sink.Add(&dot.basic, &dot.render, &dot.space)
	r.dots = append(r.dots, dot)
	r.dotsUsed++
	return dot
}

// RenderBody implements engine.Renderer
func (r *EngoRenderer) RenderBody(body engine.BodyState) {
	s, ok := r.bodies[body.ID]
	if !ok {
		s = &sprite{
			basic:  ecs.NewBasic(),
			render: common.RenderComponent{Drawable: common.Circle{}},
		}
		s.render.SetZIndex(bodyZIndex)
		r.sink.Add(&s.basic, &s.render, &s.space)
		r.bodies[body.ID] = s
	}

	sx, sy := r.scale()
	w := max(float32(2*body.Radius)*sx, minBodySize)
	h := max(float32(2*body.Radius)*sy, minBodySize)
	center := r.worldToScreen(body.Position)

	s.space.Position = engo.Point{X: center.X - w/2, Y: center.Y - h/2}
	s.space.Width = w
	s.space.Height = h
	s.render.Color = body.Color
	s.render.Hidden = false
	if body.Kind == physics.Static {
		s.render.Drawable = common.Circle{BorderWidth: 2, BorderColor: color.White}
	}

	r.colors[body.ID] = body.Color
	r.seen[body.ID] = true
}

// Present implements engine.Renderer. Unused trail dots are hidden and
// bodies missing from the frame, e.g. after a reset, are removed.
func (r *EngoRenderer) Present() {
	for _, dot := range r.dots[r.dotsUsed:] {
		dot.render.Hidden = true
	}

	for id, s := range r.bodies {
		if r.seen[id] {
			continue
		}
		r.sink.Remove(s.basic)
		delete(r.bodies, id)
		delete(r.colors, id)
	}
}
