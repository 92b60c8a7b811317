// pkg/engine/scenario.go
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-gravity/pkg/config"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

var (
	// ErrInvalidBounds is returned for non-positive scenario bounds
	ErrInvalidBounds = errors.New("scenario bounds must be positive")
	// ErrUnknownBody is returned when an input names a body not in the scenario
	ErrUnknownBody = errors.New("unknown body")
	// ErrStaticBody is returned when a velocity is set on a static body
	ErrStaticBody = errors.New("static bodies cannot be given a velocity")
)

// Scenario owns the bodies of one simulation and the box they bounce in.
// Body order only affects drawing and pairwise collision order.
type Scenario struct {
	Name   string
	Bounds physics.Bounds
	Bodies []*physics.Body
}

// NewScenario creates a scenario from already constructed bodies
func NewScenario(name string, bounds physics.Bounds, bodies ...*physics.Body) (*Scenario, error) {
	if !(bounds.Width > 0) || !(bounds.Height > 0) {
		return nil, fmt.Errorf("%vx%v: %w", bounds.Width, bounds.Height, ErrInvalidBounds)
	}
	return &Scenario{
		Name:   name,
		Bounds: bounds,
		Bodies: bodies,
	}, nil
}

// NewScenarioFromConfig builds the bodies described by cfg, assigning palette
// colors to bodies without one and applying AutoOrbit when enabled.
func NewScenarioFromConfig(cfg *config.SimulationConfig) (*Scenario, error) {
	bodies := make([]*physics.Body, 0, len(cfg.Bodies))
	for i, bc := range cfg.Bodies {
		body, err := newBodyFromConfig(i, bc)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, body)
	}

	scenario, err := NewScenario(cfg.Name, physics.Bounds{
		Width:  cfg.Bounds.Width,
		Height: cfg.Bounds.Height,
	}, bodies...)
	if err != nil {
		return nil, err
	}

	if cfg.AutoOrbit {
		scenario.ApplyAutoOrbit(cfg.Physics.Gravity)
	}
	return scenario, nil
}

func newBodyFromConfig(i int, bc config.BodyConfig) (*physics.Body, error) {
	c := PaletteColor(i)
	if bc.Color != "" {
		parsed, err := ParseColor(bc.Color)
		if err != nil {
			return nil, err
		}
		c = parsed
	}

	kind := physics.Dynamic
	if bc.Static {
		kind = physics.Static
	}

	return physics.NewBody(
		bc.Mass,
		bc.Radius,
		physics.FromComponents(bc.X, bc.Y),
		physics.FromComponents(bc.VX, bc.VY),
		physics.WithKind(kind),
		physics.WithColor(c),
	)
}

// Body looks up a body by ID
func (s *Scenario) Body(id physics.ID) (*physics.Body, bool) {
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Reposition moves a body. Any finite position is accepted; a body placed
// outside the bounds is reflected back on the next tick.
func (s *Scenario) Reposition(id physics.ID, position physics.Vector2D) error {
	body, ok := s.Body(id)
	if !ok {
		return fmt.Errorf("reposition %d: %w", id, ErrUnknownBody)
	}
	if !position.IsFinite() {
		return fmt.Errorf("reposition %d to %v: %w", id, position, physics.ErrInvalidState)
	}
	body.Position = position
	return nil
}

// SetVelocity overwrites a dynamic body's velocity
func (s *Scenario) SetVelocity(id physics.ID, velocity physics.Vector2D) error {
	body, ok := s.Body(id)
	if !ok {
		return fmt.Errorf("set velocity %d: %w", id, ErrUnknownBody)
	}
	if body.IsStatic() {
		return fmt.Errorf("set velocity %d: %w", id, ErrStaticBody)
	}
	if !velocity.IsFinite() {
		return fmt.Errorf("set velocity %d to %v: %w", id, velocity, physics.ErrInvalidState)
	}
	body.Velocity = velocity
	return nil
}

// ApplyAutoOrbit gives every resting dynamic body after the first the
// circular orbit speed sqrt(k·M/r) around the first body, perpendicular to
// the line between them.
func (s *Scenario) ApplyAutoOrbit(k float64) {
	if len(s.Bodies) == 0 {
		return
	}
	central := s.Bodies[0]

	for _, b := range s.Bodies[1:] {
		if b.IsStatic() || b.Velocity != (physics.Vector2D{}) {
			continue
		}
		offset := b.Position.Sub(central.Position)
		r := offset.Length()
		if r == 0 {
			continue
		}
		speed := math.Sqrt(k * central.Mass / r)
		b.Velocity = physics.FromComponents(-offset.Y/r*speed, offset.X/r*speed)
	}
}

// AdoptIDs gives each body the ID of the body at the same index in prev, so
// inputs aimed at prev keep reaching the matching body. Bodies past the end
// of prev keep their own IDs.
func (s *Scenario) AdoptIDs(prev *Scenario) {
	for i, b := range s.Bodies {
		if i >= len(prev.Bodies) {
			return
		}
		b.ID = prev.Bodies[i].ID
	}
}

// Clone returns a deep copy with the same body IDs
func (s *Scenario) Clone() *Scenario {
	bodies := make([]*physics.Body, len(s.Bodies))
	for i, b := range s.Bodies {
		cp := *b
		bodies[i] = &cp
	}
	return &Scenario{
		Name:   s.Name,
		Bounds: s.Bounds,
		Bodies: bodies,
	}
}
