// pkg/physics/body.go
package physics

import (
	"errors"
	"fmt"
	"image/color"
	"sync/atomic"
)

// ID is a unique identifier for a body
type ID uint64

var nextID uint64

// GenerateID creates a new unique body ID
func GenerateID() ID {
	return ID(atomic.AddUint64(&nextID, 1))
}

// Kind tags how a body takes part in the simulation
type Kind int

const (
	// Dynamic bodies are moved by forces and collisions
	Dynamic Kind = iota
	// Static bodies attract and collide but never move
	Static
)

func (k Kind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrInvalidMass is returned when a body is constructed with mass <= 0
	ErrInvalidMass = errors.New("body mass must be positive")
	// ErrInvalidRadius is returned when a body is constructed with a negative radius
	ErrInvalidRadius = errors.New("body radius must not be negative")
	// ErrInvalidState is returned for non-finite initial position or velocity
	ErrInvalidState = errors.New("body position and velocity must be finite")
)

// Body is a single circular mass in the simulation.
// Force accumulates during a tick and is cleared by the Integrator.
type Body struct {
	ID           ID
	Kind         Kind
	Mass         float64
	Radius       float64
	Position     Vector2D
	Velocity     Vector2D
	Force        Vector2D
	Acceleration Vector2D
	Color        color.RGBA
}

// BodyOption configures optional body attributes
type BodyOption func(*Body)

// WithKind sets the body kind
func WithKind(kind Kind) BodyOption {
	return func(b *Body) {
		b.Kind = kind
	}
}

// WithColor sets the display color
func WithColor(c color.RGBA) BodyOption {
	return func(b *Body) {
		b.Color = c
	}
}

// WithID overrides the generated ID
func WithID(id ID) BodyOption {
	return func(b *Body) {
		b.ID = id
	}
}

// NewBody creates a body, deriving the radius as 2 × mass when radius is 0.
func NewBody(mass, radius float64, position, velocity Vector2D, opts ...BodyOption) (*Body, error) {
	if !(mass > 0) {
		return nil, fmt.Errorf("mass %v: %w", mass, ErrInvalidMass)
	}
	if radius < 0 {
		return nil, fmt.Errorf("radius %v: %w", radius, ErrInvalidRadius)
	}
	if !position.IsFinite() || !velocity.IsFinite() {
		return nil, ErrInvalidState
	}
	if radius == 0 {
		radius = 2 * mass
	}

	body := &Body{
		ID:       GenerateID(),
		Kind:     Dynamic,
		Mass:     mass,
		Radius:   radius,
		Position: position,
		Velocity: velocity,
		Color:    color.RGBA{255, 255, 255, 255},
	}
	for _, opt := range opts {
		opt(body)
	}
	if body.Kind == Static {
		body.Velocity = Vector2D{}
	}
	return body, nil
}

// IsStatic reports whether the body is pinned in place
func (b *Body) IsStatic() bool {
	return b.Kind == Static
}

// Collider returns the body's collision shape at its current position
func (b *Body) Collider() Circle {
	return Circle{Center: b.Position, Radius: b.Radius}
}

// Momentum returns mass × velocity
func (b *Body) Momentum() Vector2D {
	return b.Velocity.Scale(b.Mass)
}

// KineticEnergy returns ½·m·|v|²
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.LengthSquared()
}
