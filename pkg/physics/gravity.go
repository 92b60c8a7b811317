// pkg/physics/gravity.go
package physics

// DefaultGravity is the scaled gravitational constant. The physical value
// (6.674e-11) produces no visible motion at pixel scale.
const DefaultGravity = 5.0

// GravityForce returns the magnitude k·m1·m2/d². It is zero when d is zero.
func GravityForce(k, m1, m2, d float64) float64 {
	if d == 0 {
		return 0
	}
	return k * m1 * m2 / (d * d)
}

// ForceField accumulates pairwise gravitational attraction
type ForceField struct {
	Constant float64
}

// NewForceField creates a force field with gravitational constant k
func NewForceField(k float64) *ForceField {
	return &ForceField{Constant: k}
}

// Between returns the force exerted on a by b. Bodies that touch or overlap
// do not attract each other; collision response handles them instead.
func (f *ForceField) Between(a, b *Body) Vector2D {
	offset := b.Position.Sub(a.Position)
	distance := offset.Length()
	if distance <= a.Radius+b.Radius {
		return Vector2D{}
	}
	magnitude := GravityForce(f.Constant, a.Mass, b.Mass, distance)
	return offset.Normalize().Scale(magnitude)
}

// Apply adds the net gravitational force from every other body to each
// body's accumulated force. Velocity and position are left untouched.
func (f *ForceField) Apply(bodies []*Body) {
	for _, a := range bodies {
		if a.IsStatic() {
			continue
		}
		for _, b := range bodies {
			if a == b {
				continue
			}
			a.Force.AddInPlace(f.Between(a, b))
		}
	}
}

// PotentialEnergy returns the total pairwise potential energy -k·m1·m2/d
// over separated pairs.
func (f *ForceField) PotentialEnergy(bodies []*Body) float64 {
	var total float64
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[i].Position.Distance(bodies[j].Position)
			if d == 0 {
				continue
			}
			total -= f.Constant * bodies[i].Mass * bodies[j].Mass / d
		}
	}
	return total
}
