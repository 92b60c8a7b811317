package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-gravity/pkg/physics"
)

// ValidationError describes one invalid configuration field
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the configuration and returns every problem found, joined.
func (c *SimulationConfig) Validate() error {
	var errs []error
	add := func(field, msg string, cause error) {
		errs = append(errs, &ValidationError{Field: field, Message: msg, Err: cause})
	}

	if !(c.Bounds.Width > 0) || !(c.Bounds.Height > 0) {
		add("Bounds", fmt.Sprintf("width and height must be positive, got %vx%v", c.Bounds.Width, c.Bounds.Height), nil)
	}
	if math.IsNaN(c.Physics.Gravity) || math.IsInf(c.Physics.Gravity, 0) {
		add("Physics.Gravity", "must be finite", nil)
	}
	if !(c.Physics.Elasticity >= 0) {
		add("Physics.Elasticity", fmt.Sprintf("must not be negative, got %v", c.Physics.Elasticity), nil)
	}
	if c.Clock.TickRate <= 0 {
		add("Clock.TickRate", fmt.Sprintf("must be positive, got %d", c.Clock.TickRate), nil)
	}
	if c.Clock.FrameRate <= 0 {
		add("Clock.FrameRate", fmt.Sprintf("must be positive, got %d", c.Clock.FrameRate), nil)
	}
	if c.Clock.MaxCatchUp <= 0 {
		add("Clock.MaxCatchUp", fmt.Sprintf("must be positive, got %d", c.Clock.MaxCatchUp), nil)
	}
	if c.Display.TrailEvery <= 0 {
		add("Display.TrailEvery", fmt.Sprintf("must be positive, got %d", c.Display.TrailEvery), nil)
	}
	if c.Display.TrailLength < 0 {
		add("Display.TrailLength", fmt.Sprintf("must not be negative, got %d", c.Display.TrailLength), nil)
	}
	if len(c.Bodies) == 0 {
		add("Bodies", "at least one body is required", nil)
	}

	for i, b := range c.Bodies {
		field := fmt.Sprintf("Bodies[%d]", i)
		if !(b.Mass > 0) {
			add(field+".Mass", fmt.Sprintf("must be positive, got %v", b.Mass), physics.ErrInvalidMass)
		}
		if b.Radius < 0 {
			add(field+".Radius", fmt.Sprintf("must not be negative, got %v", b.Radius), physics.ErrInvalidRadius)
		}
		for _, v := range []float64{b.X, b.Y, b.VX, b.VY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				add(field, "position and velocity must be finite", physics.ErrInvalidState)
				break
			}
		}
	}

	return errors.Join(errs...)
}
