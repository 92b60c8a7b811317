// pkg/physics/integrator.go
package physics

// Bounds is the rectangle [0, Width] × [0, Height] bodies bounce inside
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether p lies inside the bounds, edges included
func (b Bounds) Contains(p Vector2D) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Integrator advances bodies with semi-implicit Euler and reflects
// velocities at the bounds.
type Integrator struct {
	Bounds Bounds
}

// NewIntegrator creates an integrator for the given bounds
func NewIntegrator(bounds Bounds) *Integrator {
	return &Integrator{Bounds: bounds}
}

// Apply integrates every body once
func (in *Integrator) Apply(bodies []*Body) {
	for _, body := range bodies {
		in.Step(body)
	}
}

// Step updates velocity from the accumulated force, then position from the
// new velocity, then reflects out-of-bounds velocity components. Positions
// are not clamped, so a body may sit outside the bounds for one tick.
func (in *Integrator) Step(body *Body) {
	if body.IsStatic() {
		body.Force = Vector2D{}
		body.Acceleration = Vector2D{}
		return
	}

	body.Acceleration = body.Force.Scale(1 / body.Mass)
	body.Velocity = body.Velocity.Add(body.Acceleration)
	body.Position = body.Position.Add(body.Velocity)

	if body.Position.X < 0 || body.Position.X > in.Bounds.Width {
		body.Velocity.X = -body.Velocity.X
	}
	if body.Position.Y < 0 || body.Position.Y > in.Bounds.Height {
		body.Velocity.Y = -body.Velocity.Y
	}

	body.Force = Vector2D{}
}
