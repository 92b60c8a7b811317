package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gravity/pkg/engine"
)

// SimulationSystem advances the clock by engo's frame time and draws the
// resulting frame. It runs on engo's update loop, so the simulation shares
// the render thread.
type SimulationSystem struct {
	clock    *engine.Clock
	renderer engine.Renderer
	exit     func()
}

// NewSimulationSystem creates the system
func NewSimulationSystem(clock *engine.Clock, renderer engine.Renderer) *SimulationSystem {
	return &SimulationSystem{
		clock:    clock,
		renderer: renderer,
		exit:     engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the simulation by dt seconds and renders
func (s *SimulationSystem) Update(dt float32) {
	s.clock.Advance(time.Duration(float64(dt) * float64(time.Second)))
	if s.clock.Done() {
		s.exit()
		return
	}
	s.clock.Snapshot().Draw(s.renderer)
}
