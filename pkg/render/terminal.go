package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

const (
	bodyRune   = '█'
	staticRune = '▓'
	trailRune  = '·'
	trailDim   = 0.55
)

// TerminalRenderer draws frames onto a tcell screen. The world is scaled to
// fill the screen, y up; the bottom row holds a status line.
type TerminalRenderer struct {
	screen  tcell.Screen
	bounds  physics.Bounds
	cols    int
	rows    int
	showFPS bool

	tick   uint64
	paused bool

	// trail colors come from the previous frame's bodies
	colors map[physics.ID]color.RGBA

	fpsFrames int
	fpsSince  time.Time
	fps       float64
}

// NewTerminalRenderer creates a renderer for an initialised screen
func NewTerminalRenderer(screen tcell.Screen, bounds physics.Bounds, showFPS bool) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:   screen,
		bounds:   bounds,
		showFPS:  showFPS,
		colors:   make(map[physics.ID]color.RGBA),
		fpsSince: time.Now(),
	}
	r.cols, r.rows = screen.Size()
	return r
}

// BeginFrame implements engine.FrameObserver
func (r *TerminalRenderer) BeginFrame(frame engine.Frame) {
	r.bounds = frame.Bounds
	r.tick = frame.Tick
	r.paused = frame.Paused
}

// fieldRows is the number of rows available to the world
func (r *TerminalRenderer) fieldRows() int {
	if r.rows <= 1 {
		return r.rows
	}
	return r.rows - 1
}

// worldToScreen converts world coordinates to a screen cell
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	rows := r.fieldRows()
	x := int(math.Floor(pos.X / r.bounds.Width * float64(r.cols)))
	y := int(math.Floor((1 - pos.Y/r.bounds.Height) * float64(rows)))
	// the top edge maps to the last cell rather than one past it
	if x == r.cols {
		x--
	}
	if y == rows {
		y--
	}
	return x, y
}

// ScreenToWorld converts a cell to the world coordinates of its center
func (r *TerminalRenderer) ScreenToWorld(x, y int) physics.Vector2D {
	rows := r.fieldRows()
	if r.cols == 0 || rows == 0 {
		return physics.Vector2D{}
	}
	return physics.Vector2D{
		X: (float64(x) + 0.5) / float64(r.cols) * r.bounds.Width,
		Y: (1 - (float64(y)+0.5)/float64(rows)) * r.bounds.Height,
	}
}

func (r *TerminalRenderer) inField(x, y int) bool {
	return x >= 0 && x < r.cols && y >= 0 && y < r.fieldRows()
}

// Clear implements engine.Renderer
func (r *TerminalRenderer) Clear() {
	r.cols, r.rows = r.screen.Size()
	r.screen.Clear()
}

// RenderTrail implements engine.Renderer
func (r *TerminalRenderer) RenderTrail(id physics.ID, points []physics.Vector2D) {
	c, ok := r.colors[id]
	if !ok {
		c = color.RGBA{128, 128, 128, 255}
	}
	style := tcell.StyleDefault.Foreground(toTcell(engine.Dim(c, trailDim)))

	for _, p := range points {
		x, y := r.worldToScreen(p)
		if r.inField(x, y) {
			r.screen.SetContent(x, y, trailRune, nil, style)
		}
	}
}

// RenderBody implements engine.Renderer. Bodies are drawn as filled ellipses
// covering at least their center cell.
func (r *TerminalRenderer) RenderBody(body engine.BodyState) {
	r.colors[body.ID] = body.Color

	ch := bodyRune
	if body.Kind == physics.Static {
		ch = staticRune
	}
	style := tcell.StyleDefault.Foreground(toTcell(body.Color))

	cx, cy := r.worldToScreen(body.Position)
	rx := body.Radius / r.bounds.Width * float64(r.cols)
	ry := body.Radius / r.bounds.Height * float64(r.fieldRows())

	ix, iy := int(math.Ceil(rx)), int(math.Ceil(ry))
	for dy := -iy; dy <= iy; dy++ {
		for dx := -ix; dx <= ix; dx++ {
			if !insideEllipse(float64(dx), float64(dy), rx, ry) {
				continue
			}
			if x, y := cx+dx, cy+dy; r.inField(x, y) {
				r.screen.SetContent(x, y, ch, nil, style)
			}
		}
	}
	if r.inField(cx, cy) {
		r.screen.SetContent(cx, cy, ch, nil, style)
	}
}

func insideEllipse(dx, dy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return dx == 0 && dy == 0
	}
	return (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1
}

// Present implements engine.Renderer
func (r *TerminalRenderer) Present() {
	r.updateFPS(time.Now())
	r.drawStatus()
	r.screen.Show()
}

func (r *TerminalRenderer) updateFPS(now time.Time) {
	r.fpsFrames++
	if elapsed := now.Sub(r.fpsSince); elapsed >= time.Second {
		r.fps = float64(r.fpsFrames) / elapsed.Seconds()
		r.fpsFrames = 0
		r.fpsSince = now
	}
}

// StatusLine returns the text drawn on the bottom row
func (r *TerminalRenderer) StatusLine() string {
	status := fmt.Sprintf("tick %d", r.tick)
	if r.showFPS {
		status += fmt.Sprintf("  fps %.0f", r.fps)
	}
	if r.paused {
		status += "  [paused]"
	}
	return status + "  space pause  r reset  drag launch  esc quit"
}

func (r *TerminalRenderer) drawStatus() {
	if r.rows <= 1 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	y := r.rows - 1
	x := 0
	for _, ch := range r.StatusLine() {
		if x >= r.cols {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
