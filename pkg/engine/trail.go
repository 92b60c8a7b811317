package engine

import "github.com/opd-ai/go-gravity/pkg/physics"

// TrailRecorder samples dynamic body positions every few ticks for display.
// Trails never feed back into physics.
type TrailRecorder struct {
	every  uint64
	limit  int
	trails map[physics.ID][]physics.Vector2D
}

// NewTrailRecorder samples every `every` ticks and keeps at most `limit`
// points per body. A limit of 0 disables trails.
func NewTrailRecorder(every, limit int) *TrailRecorder {
	if every < 1 {
		every = 1
	}
	if limit < 0 {
		limit = 0
	}
	return &TrailRecorder{
		every:  uint64(every),
		limit:  limit,
		trails: make(map[physics.ID][]physics.Vector2D),
	}
}

// Record samples the bodies if tick falls on the sampling interval
func (t *TrailRecorder) Record(tick uint64, bodies []*physics.Body) {
	if t.limit == 0 || tick%t.every != 0 {
		return
	}
	for _, b := range bodies {
		if b.IsStatic() {
			continue
		}
		trail := append(t.trails[b.ID], b.Position)
		if len(trail) > t.limit {
			trail = trail[len(trail)-t.limit:]
		}
		t.trails[b.ID] = trail
	}
}

// Snapshot returns a deep copy of all trails
func (t *TrailRecorder) Snapshot() map[physics.ID][]physics.Vector2D {
	out := make(map[physics.ID][]physics.Vector2D, len(t.trails))
	for id, trail := range t.trails {
		out[id] = append([]physics.Vector2D(nil), trail...)
	}
	return out
}

// Reset drops every trail
func (t *TrailRecorder) Reset() {
	t.trails = make(map[physics.ID][]physics.Vector2D)
}
