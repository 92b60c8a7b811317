package config

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/go-gravity/pkg/physics"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(c *SimulationConfig)
		errorField string
		cause      error
	}{
		{"valid", func(c *SimulationConfig) {}, "", nil},
		{"zero_width", func(c *SimulationConfig) { c.Bounds.Width = 0 }, "Bounds", nil},
		{"nan_height", func(c *SimulationConfig) { c.Bounds.Height = math.NaN() }, "Bounds", nil},
		{"infinite_gravity", func(c *SimulationConfig) { c.Physics.Gravity = math.Inf(1) }, "Physics.Gravity", nil},
		{"negative_elasticity", func(c *SimulationConfig) { c.Physics.Elasticity = -0.1 }, "Physics.Elasticity", nil},
		{"zero_tick_rate", func(c *SimulationConfig) { c.Clock.TickRate = 0 }, "Clock.TickRate", nil},
		{"zero_frame_rate", func(c *SimulationConfig) { c.Clock.FrameRate = 0 }, "Clock.FrameRate", nil},
		{"zero_catch_up", func(c *SimulationConfig) { c.Clock.MaxCatchUp = 0 }, "Clock.MaxCatchUp", nil},
		{"zero_trail_every", func(c *SimulationConfig) { c.Display.TrailEvery = 0 }, "Display.TrailEvery", nil},
		{"negative_trail_length", func(c *SimulationConfig) { c.Display.TrailLength = -1 }, "Display.TrailLength", nil},
		{"no_bodies", func(c *SimulationConfig) { c.Bodies = nil }, "Bodies", nil},
		{"zero_mass", func(c *SimulationConfig) { c.Bodies[2].Mass = 0 }, "Bodies[2].Mass", physics.ErrInvalidMass},
		{"negative_radius", func(c *SimulationConfig) { c.Bodies[0].Radius = -1 }, "Bodies[0].Radius", physics.ErrInvalidRadius},
		{"nan_velocity", func(c *SimulationConfig) { c.Bodies[1].VX = math.NaN() }, "Bodies[1]", physics.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			err := c.Validate()

			if tt.errorField == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.errorField {
				t.Errorf("field = %q, want %q", verr.Field, tt.errorField)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("expected error to wrap %v", tt.cause)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	c := DefaultConfig()
	c.Clock.TickRate = 0
	c.Bodies[0].Mass = -1

	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, field := range []string{"Clock.TickRate", "Bodies[0].Mass"} {
		if !strings.Contains(msg, field) {
			t.Errorf("error %q does not mention %s", msg, field)
		}
	}
}
