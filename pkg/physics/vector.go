// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components.
// All methods treat the receiver as a value and return a new vector.
type Vector2D struct {
	X float64
	Y float64
}

// FromComponents creates a vector from its x and y components
func FromComponents(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// FromPolar creates a vector from a magnitude and an angle in radians
func FromPolar(magnitude, angle float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Uniform creates a vector with both components set to s
func Uniform(s float64) Vector2D {
	return Vector2D{X: s, Y: s}
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// AddInPlace adds other to v without allocating a new value.
// Used by the force accumulation loop.
func (v *Vector2D) AddInPlace(other Vector2D) {
	v.X += other.X
	v.Y += other.Y
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to the zero vector.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Angle returns the angle of the vector in radians
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the angle of other - v in [-π, π].
// A vertical displacement yields ±π/2 and a zero displacement yields 0.
func (v Vector2D) AngleTo(other Vector2D) float64 {
	d := other.Sub(v)
	if d.X == 0 {
		switch {
		case d.Y > 0:
			return math.Pi / 2
		case d.Y < 0:
			return -math.Pi / 2
		default:
			return 0
		}
	}
	return math.Atan2(d.Y, d.X)
}

// Rotate rotates the vector by angle (in radians)
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// IsFinite reports whether both components are finite numbers
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
