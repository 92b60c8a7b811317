// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func vectorsAlmostEqual(a, b Vector2D, eps float64) bool {
	return almostEqual(a.X, b.X, eps) && almostEqual(a.Y, b.Y, eps)
}

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Vector2D
		expected Vector2D
	}{
		{
			name:     "add_mixed_signs",
			op:       func() Vector2D { return Vector2D{X: 5, Y: -3}.Add(Vector2D{X: -2, Y: 7}) },
			expected: Vector2D{X: 3, Y: 4},
		},
		{
			name:     "add_zero_vector",
			op:       func() Vector2D { return Vector2D{}.Add(Vector2D{X: 5, Y: -3}) },
			expected: Vector2D{X: 5, Y: -3},
		},
		{
			name:     "sub_negative_result",
			op:       func() Vector2D { return Vector2D{X: 2, Y: 3}.Sub(Vector2D{X: 5, Y: 7}) },
			expected: Vector2D{X: -3, Y: -4},
		},
		{
			name:     "sub_same_vectors",
			op:       func() Vector2D { return Vector2D{X: 4, Y: 6}.Sub(Vector2D{X: 4, Y: 6}) },
			expected: Vector2D{},
		},
		{
			name:     "scale_negative",
			op:       func() Vector2D { return Vector2D{X: 3, Y: 4}.Scale(-2) },
			expected: Vector2D{X: -6, Y: -8},
		},
		{
			name:     "scale_zero",
			op:       func() Vector2D { return Vector2D{X: 3, Y: 4}.Scale(0) },
			expected: Vector2D{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if result != tt.expected {
				t.Errorf("got %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2D_OperationsArePure(t *testing.T) {
	v := Vector2D{X: 1, Y: 2}
	_ = v.Add(Vector2D{X: 10, Y: 10})
	_ = v.Scale(3)
	_ = v.Normalize()
	_ = v.Rotate(math.Pi)

	if v != (Vector2D{X: 1, Y: 2}) {
		t.Errorf("receiver mutated: %v", v)
	}
}

func TestVector2D_AddInPlace(t *testing.T) {
	v := Vector2D{X: 1, Y: 2}
	v.AddInPlace(Vector2D{X: 0.5, Y: -4})

	if v != (Vector2D{X: 1.5, Y: -2}) {
		t.Errorf("AddInPlace() = %v, expected {1.5 -2}", v)
	}
}

func TestNamedConstructors(t *testing.T) {
	t.Run("from_components", func(t *testing.T) {
		if v := FromComponents(3, -4); v != (Vector2D{X: 3, Y: -4}) {
			t.Errorf("FromComponents() = %v", v)
		}
	})

	t.Run("uniform", func(t *testing.T) {
		if v := Uniform(7); v != (Vector2D{X: 7, Y: 7}) {
			t.Errorf("Uniform() = %v", v)
		}
	})

	t.Run("from_polar", func(t *testing.T) {
		tests := []struct {
			name      string
			magnitude float64
			angle     float64
			expected  Vector2D
		}{
			{"zero_angle", 1, 0, Vector2D{X: 1, Y: 0}},
			{"quarter_turn", 2, math.Pi / 2, Vector2D{X: 0, Y: 2}},
			{"half_turn", 1, math.Pi, Vector2D{X: -1, Y: 0}},
			{"zero_magnitude", 0, 1.3, Vector2D{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				v := FromPolar(tt.magnitude, tt.angle)
				if !vectorsAlmostEqual(v, tt.expected, tolerance) {
					t.Errorf("FromPolar(%v, %v) = %v, expected %v", tt.magnitude, tt.angle, v, tt.expected)
				}
			})
		}
	})
}

func TestVector2D_Length(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected float64
	}{
		{"zero_vector", Vector2D{}, 0},
		{"pythagorean_triple", Vector2D{X: 3, Y: 4}, 5},
		{"negative_components", Vector2D{X: -5, Y: -12}, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Length(); got != tt.expected {
				t.Errorf("Length() = %v, expected %v", got, tt.expected)
			}
			if got := tt.vector.LengthSquared(); got != tt.expected*tt.expected {
				t.Errorf("LengthSquared() = %v, expected %v", got, tt.expected*tt.expected)
			}
		})
	}
}

func TestVector2D_NormalizeZeroVector(t *testing.T) {
	if got := (Vector2D{}).Normalize(); got != (Vector2D{}) {
		t.Errorf("Normalize() of zero vector = %v, expected zero vector", got)
	}
}

func TestVector2D_NormalizeHasUnitLength(t *testing.T) {
	vectors := []Vector2D{
		{X: 3, Y: 4},
		{X: -0.001, Y: 0},
		{X: 1e6, Y: -2e6},
		{X: 0, Y: -9},
	}

	for _, v := range vectors {
		n := v.Normalize()
		if !almostEqual(n.Length(), 1, tolerance) {
			t.Errorf("Normalize(%v).Length() = %v, expected 1", v, n.Length())
		}
		if n.Dot(v) <= 0 {
			t.Errorf("Normalize(%v) = %v points away from the original", v, n)
		}
	}
}

func TestVector2D_RotateRoundTrip(t *testing.T) {
	vectors := []Vector2D{{X: 1, Y: 0}, {X: 3, Y: -4}, {X: -2.5, Y: 7.25}}
	angles := []float64{0, math.Pi / 6, -math.Pi / 3, math.Pi, 2.5}

	for _, v := range vectors {
		for _, theta := range angles {
			back := v.Rotate(theta).Rotate(-theta)
			if !vectorsAlmostEqual(back, v, tolerance) {
				t.Errorf("Rotate(%v) round trip of %v = %v", theta, v, back)
			}
			if !almostEqual(v.Rotate(theta).Length(), v.Length(), tolerance) {
				t.Errorf("Rotate(%v) changed the length of %v", theta, v)
			}
		}
	}
}

func TestVector2D_Rotate(t *testing.T) {
	got := Vector2D{X: 1, Y: 0}.Rotate(math.Pi / 2)
	if !vectorsAlmostEqual(got, Vector2D{X: 0, Y: 1}, tolerance) {
		t.Errorf("Rotate(π/2) = %v, expected {0 1}", got)
	}
}

func TestVector2D_AngleTo(t *testing.T) {
	tests := []struct {
		name     string
		from     Vector2D
		to       Vector2D
		expected float64
	}{
		{"positive_x", Vector2D{}, Vector2D{X: 5, Y: 0}, 0},
		{"negative_x", Vector2D{}, Vector2D{X: -5, Y: 0}, math.Pi},
		{"vertical_up", Vector2D{X: 2, Y: 2}, Vector2D{X: 2, Y: 10}, math.Pi / 2},
		{"vertical_down", Vector2D{X: 2, Y: 2}, Vector2D{X: 2, Y: -10}, -math.Pi / 2},
		{"coincident", Vector2D{X: 4, Y: 4}, Vector2D{X: 4, Y: 4}, 0},
		{"second_quadrant", Vector2D{}, Vector2D{X: -1, Y: 1}, 3 * math.Pi / 4},
		{"third_quadrant", Vector2D{}, Vector2D{X: -1, Y: -1}, -3 * math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.AngleTo(tt.to)
			if !almostEqual(got, tt.expected, tolerance) {
				t.Errorf("AngleTo() = %v, expected %v", got, tt.expected)
			}
			if got < -math.Pi || got > math.Pi {
				t.Errorf("AngleTo() = %v outside [-π, π]", got)
			}
		})
	}
}

func TestVector2D_IsFinite(t *testing.T) {
	if !(Vector2D{X: 1, Y: -1}).IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vector2D{X: math.NaN()}).IsFinite() {
		t.Error("NaN component reported finite")
	}
	if (Vector2D{Y: math.Inf(-1)}).IsFinite() {
		t.Error("Inf component reported finite")
	}
}

func BenchmarkVector2D_Normalize(b *testing.B) {
	v := Vector2D{X: 3, Y: 4}
	for i := 0; i < b.N; i++ {
		_ = v.Normalize()
	}
}

func BenchmarkVector2D_Rotate(b *testing.B) {
	v := Vector2D{X: 3, Y: 4}
	for i := 0; i < b.N; i++ {
		_ = v.Rotate(math.Pi / 4)
	}
}
