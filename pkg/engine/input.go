package engine

import (
	"fmt"

	"github.com/opd-ai/go-gravity/pkg/physics"
)

// InputKind identifies an external request to the simulation
type InputKind int

const (
	Reposition InputKind = iota
	SetVelocity
	TogglePause
	Quit
	Reset
)

func (k InputKind) String() string {
	switch k {
	case Reposition:
		return "reposition"
	case SetVelocity:
		return "set_velocity"
	case TogglePause:
		return "toggle_pause"
	case Quit:
		return "quit"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("input(%d)", int(k))
	}
}

// Input is queued with Clock.Submit and applied between ticks.
// BodyID and Vector are used by Reposition and SetVelocity; Scenario by
// Reset, where nil restores the scenario the clock started with. A supplied
// scenario's bodies take the IDs of the current bodies at the same index.
type Input struct {
	Kind     InputKind
	BodyID   physics.ID
	Vector   physics.Vector2D
	Scenario *Scenario
}

// RepositionInput moves a body to position
func RepositionInput(id physics.ID, position physics.Vector2D) Input {
	return Input{Kind: Reposition, BodyID: id, Vector: position}
}

// SetVelocityInput overwrites a body's velocity
func SetVelocityInput(id physics.ID, velocity physics.Vector2D) Input {
	return Input{Kind: SetVelocity, BodyID: id, Vector: velocity}
}

// LaunchGesture turns a press/drag/release into a reposition plus a velocity
// along the drag direction, scaled by Scale.
type LaunchGesture struct {
	BodyID physics.ID
	Scale  float64

	start  physics.Vector2D
	active bool
}

// NewLaunchGesture creates a gesture that launches the given body
func NewLaunchGesture(id physics.ID, scale float64) *LaunchGesture {
	return &LaunchGesture{BodyID: id, Scale: scale}
}

// Press starts a drag at p, in world coordinates
func (g *LaunchGesture) Press(p physics.Vector2D) {
	g.start = p
	g.active = true
}

// Active reports whether a drag is in progress
func (g *LaunchGesture) Active() bool {
	return g.active
}

// Start returns where the current drag began
func (g *LaunchGesture) Start() physics.Vector2D {
	return g.start
}

// Release ends the drag at p and returns the inputs to submit. It returns
// false when no drag was in progress.
func (g *LaunchGesture) Release(p physics.Vector2D) ([]Input, bool) {
	if !g.active {
		return nil, false
	}
	g.active = false

	velocity := p.Sub(g.start).Scale(g.Scale)
	return []Input{
		RepositionInput(g.BodyID, g.start),
		SetVelocityInput(g.BodyID, velocity),
	}, true
}

// Cancel abandons the current drag
func (g *LaunchGesture) Cancel() {
	g.active = false
}
