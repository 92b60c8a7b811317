// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles touch or overlap
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) <= c.Radius+other.Radius
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D
	Penetration  float64
	ContactPoint Vector2D
}

// CheckCollision performs detailed collision detection between two circles.
// Circles whose edges exactly touch are reported as collided.
func CheckCollision(a, b Circle) CollisionResult {
	// Vector from A to B
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance > a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	normal = normal.Normalize()
	if normal == (Vector2D{}) {
		// coincident centers: fall back to the x axis
		normal = Vector2D{X: 1}
	}

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  a.Radius + b.Radius - distance,
		ContactPoint: a.Center.Add(normal.Scale(a.Radius)),
	}
}

// DefaultElasticity is a perfectly elastic collision
const DefaultElasticity = 1.0

// Contact describes a pair whose velocities were rewritten by the resolver
type Contact struct {
	A, B         *Body
	Normal       Vector2D
	Penetration  float64
	ClosingSpeed float64
	Impulse      float64
}

// CollisionResolver detects overlapping pairs and applies 1D elastic
// collision response along the line between centers.
//
// Pairs are visited in slice order (i < j). When three or more bodies are in
// contact at once, the result depends on that order.
type CollisionResolver struct {
	Elasticity float64

	// OnContact, when set, is called for every resolved pair
	OnContact func(Contact)
}

// NewCollisionResolver creates a resolver with the given elasticity
func NewCollisionResolver(elasticity float64) *CollisionResolver {
	return &CollisionResolver{Elasticity: elasticity}
}

// Resolve checks every pair once and returns the contacts it resolved.
func (r *CollisionResolver) Resolve(bodies []*Body) []Contact {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			contact, ok := r.ResolvePair(bodies[i], bodies[j])
			if !ok {
				continue
			}
			contacts = append(contacts, contact)
			if r.OnContact != nil {
				r.OnContact(contact)
			}
		}
	}
	return contacts
}

// ResolvePair resolves a single pair. It reports false when the bodies are
// apart, already separating, or both static.
func (r *CollisionResolver) ResolvePair(a, b *Body) (Contact, bool) {
	if a.IsStatic() && b.IsStatic() {
		return Contact{}, false
	}

	result := CheckCollision(a.Collider(), b.Collider())
	if !result.Collided {
		return Contact{}, false
	}
	if !closing(a, b) {
		return Contact{}, false
	}

	theta := a.Position.AngleTo(b.Position)
	va := a.Velocity.Rotate(-theta)
	vb := b.Velocity.Rotate(-theta)
	closingSpeed := va.X - vb.X

	va.X, vb.X = r.exchange(a, b, va.X, vb.X)

	newA := va.Rotate(theta)
	newB := vb.Rotate(theta)
	impulse := newA.Sub(a.Velocity).Length() * a.Mass
	if a.IsStatic() {
		impulse = newB.Sub(b.Velocity).Length() * b.Mass
	}

	if !a.IsStatic() {
		a.Velocity = newA
	}
	if !b.IsStatic() {
		b.Velocity = newB
	}

	return Contact{
		A:            a,
		B:            b,
		Normal:       result.Normal,
		Penetration:  result.Penetration,
		ClosingSpeed: closingSpeed,
		Impulse:      impulse,
	}, true
}

// closing predicts next-tick positions and reports whether the pair is
// still in contact range, i.e. not already moving apart.
func closing(a, b *Body) bool {
	nextA := a.Position.Add(a.Velocity)
	nextB := b.Position.Add(b.Velocity)
	return nextA.Distance(nextB) <= a.Radius+b.Radius
}

// exchange applies the 1D elastic collision formulas to the normal components.
// A static body acts as an infinite mass at rest.
func (r *CollisionResolver) exchange(a, b *Body, v1, v2 float64) (float64, float64) {
	e := r.Elasticity
	switch {
	case a.IsStatic():
		return v1, e * (2*v1 - v2)
	case b.IsStatic():
		return e * (2*v2 - v1), v2
	}

	m1, m2 := a.Mass, b.Mass
	total := m1 + m2
	v1n := e * (v1*(m1-m2) + v2*2*m2) / total
	v2n := e * (v1*2*m1 + v2*(m2-m1)) / total
	return v1n, v2n
}
