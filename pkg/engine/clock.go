// pkg/engine/clock.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/go-gravity/pkg/config"
	"github.com/opd-ai/go-gravity/pkg/event"
	"github.com/opd-ai/go-gravity/pkg/logging"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

// ErrInvalidClock is returned for unusable tick, frame or catch-up settings
var ErrInvalidClock = errors.New("invalid clock settings")

// Clock runs the simulation at a fixed tick rate. Each tick applies gravity,
// resolves collisions and integrates, in that order. Physics depends only on
// the number of ticks run, never on wall time.
type Clock struct {
	scenario   *Scenario
	initial    *Scenario
	field      *physics.ForceField
	resolver   *physics.CollisionResolver
	integrator *physics.Integrator
	trails     *TrailRecorder

	step       time.Duration
	frameRate  int
	maxCatchUp int
	acc        time.Duration

	tick   uint64
	paused bool
	quit   bool

	// mu guards the simulation state; inputMu only the pending input queue
	mu      sync.RWMutex
	inputMu sync.Mutex
	inputs  []Input
	pending []event.Event

	EventBus *event.Bus
	logger   *logging.Logger
}

// NewClock creates a clock for the scenario using the physics, clock and
// display settings of cfg. The scenario's bodies are not taken from cfg.
func NewClock(scenario *Scenario, cfg *config.SimulationConfig, logger *logging.Logger) (*Clock, error) {
	if scenario == nil {
		return nil, errors.New("nil scenario")
	}
	if cfg.Clock.TickRate <= 0 || cfg.Clock.FrameRate <= 0 || cfg.Clock.MaxCatchUp <= 0 {
		return nil, fmt.Errorf("tick rate %d, frame rate %d, catch-up %d: %w",
			cfg.Clock.TickRate, cfg.Clock.FrameRate, cfg.Clock.MaxCatchUp, ErrInvalidClock)
	}
	if !(cfg.Physics.Elasticity >= 0) {
		return nil, fmt.Errorf("elasticity %v: %w", cfg.Physics.Elasticity, ErrInvalidClock)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Clock{
		scenario:   scenario,
		initial:    scenario.Clone(),
		field:      physics.NewForceField(cfg.Physics.Gravity),
		resolver:   physics.NewCollisionResolver(cfg.Physics.Elasticity),
		integrator: physics.NewIntegrator(scenario.Bounds),
		trails:     NewTrailRecorder(cfg.Display.TrailEvery, cfg.Display.TrailLength),
		step:       time.Second / time.Duration(cfg.Clock.TickRate),
		frameRate:  cfg.Clock.FrameRate,
		maxCatchUp: cfg.Clock.MaxCatchUp,
		EventBus:   event.NewEventBus(),
		logger:     logger,
	}
	c.resolver.OnContact = func(contact physics.Contact) {
		c.pending = append(c.pending, event.NewCollisionEvent(c, c.tick+1, contact))
	}
	return c, nil
}

// NewClockFromConfig builds the scenario described by cfg and a clock to run it
func NewClockFromConfig(cfg *config.SimulationConfig, logger *logging.Logger) (*Clock, error) {
	scenario, err := NewScenarioFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build scenario: %w", err)
	}
	return NewClock(scenario, cfg, logger)
}

// ScenarioFromConfig builds the bodies described by cfg for a Reset input.
// Auto-orbit speeds use the clock's gravitational constant, not the one in
// cfg, since the force field keeps the value the clock was created with.
func (c *Clock) ScenarioFromConfig(cfg *config.SimulationConfig) (*Scenario, error) {
	local := *cfg
	local.Physics.Gravity = c.field.Constant
	return NewScenarioFromConfig(&local)
}

// Step returns the simulated duration of one tick
func (c *Clock) Step() time.Duration {
	return c.step
}

// Submit queues an input to be applied before the next tick.
// Safe to call from any goroutine.
func (c *Clock) Submit(inputs ...Input) {
	c.inputMu.Lock()
	c.inputs = append(c.inputs, inputs...)
	c.inputMu.Unlock()
}

// Tick applies queued inputs and runs exactly one simulation step,
// regardless of pause state.
func (c *Clock) Tick() {
	c.mu.Lock()
	c.applyInputs()
	c.stepLocked()
	events := c.takePending()
	c.mu.Unlock()

	c.publish(events)
}

// Advance adds elapsed wall time and runs as many whole ticks as fit, at most
// MaxCatchUp. Time beyond the cap is dropped. Returns the number of ticks run.
func (c *Clock) Advance(elapsed time.Duration) int {
	c.mu.Lock()
	c.applyInputs()
	if c.paused || c.quit {
		c.acc = 0
		events := c.takePending()
		c.mu.Unlock()
		c.publish(events)
		return 0
	}

	c.acc += elapsed
	due := int(c.acc / c.step)
	c.acc -= time.Duration(due) * c.step
	if due > c.maxCatchUp {
		c.logger.Warn(context.Background(), "simulation falling behind, dropping ticks",
			"due", due, "max_catch_up", c.maxCatchUp, "tick", c.tick)
		due = c.maxCatchUp
	}

	ran := 0
	for ran < due {
		if ran > 0 {
			c.applyInputs()
		}
		if c.paused || c.quit {
			c.acc = 0
			break
		}
		c.stepLocked()
		ran++
	}
	events := c.takePending()
	c.mu.Unlock()

	c.publish(events)
	return ran
}

// RunTicks runs n ticks back to back, ignoring wall time and pause.
// Stops early on Quit.
func (c *Clock) RunTicks(n int) int {
	for i := 0; i < n; i++ {
		if c.Done() {
			return i
		}
		c.Tick()
	}
	return n
}

// Run paces frames at the configured frame rate until ctx is done or a Quit
// input arrives. Each frame advances the clock by the elapsed wall time and
// then hands a snapshot to the renderer.
func (c *Clock) Run(ctx context.Context, r Renderer) error {
	c.logger.Info(ctx, "simulation started",
		"scenario", c.scenario.Name,
		"bodies", len(c.scenario.Bodies),
		"tick_rate", int(time.Second/c.step),
		"frame_rate", c.frameRate)
	c.EventBus.Publish(&event.BaseEvent{EventType: event.SimulationStarted, Source: c})

	ticker := time.NewTicker(time.Second / time.Duration(c.frameRate))
	defer ticker.Stop()

	last := time.Now()
	c.Snapshot().Draw(r)

	for {
		select {
		case <-ctx.Done():
			c.stop(ctx, "context done")
			return nil
		case now := <-ticker.C:
			c.Advance(now.Sub(last))
			last = now
			if c.Done() {
				c.stop(ctx, "quit requested")
				return nil
			}
			c.Snapshot().Draw(r)
		}
	}
}

func (c *Clock) stop(ctx context.Context, reason string) {
	c.mu.RLock()
	tick := c.tick
	c.mu.RUnlock()

	c.logger.Info(ctx, "simulation stopped", "reason", reason, "tick", tick)
	c.EventBus.Publish(&event.BaseEvent{EventType: event.SimulationStopped, Source: c, Tick: tick})
}

// Snapshot copies the current state for rendering
func (c *Clock) Snapshot() Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bodies := make([]BodyState, len(c.scenario.Bodies))
	for i, b := range c.scenario.Bodies {
		bodies[i] = BodyState{
			ID:       b.ID,
			Kind:     b.Kind,
			Position: b.Position,
			Velocity: b.Velocity,
			Radius:   b.Radius,
			Color:    b.Color,
		}
	}

	return Frame{
		Tick:   c.tick,
		Paused: c.paused,
		Bounds: c.scenario.Bounds,
		Bodies: bodies,
		Trails: c.trails.Snapshot(),
	}
}

// CurrentTick returns the number of ticks run since start or the last reset
func (c *Clock) CurrentTick() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tick
}

// Paused reports whether ticking is suspended
func (c *Clock) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// Done reports whether a Quit input has been applied
func (c *Clock) Done() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quit
}

// Scenario returns the scenario being simulated. Callers must not mutate it
// while the clock is running; use Submit instead.
func (c *Clock) Scenario() *Scenario {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scenario
}

// Energy returns the total kinetic and gravitational potential energy
func (c *Clock) Energy() (kinetic, potential float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.scenario.Bodies {
		kinetic += b.KineticEnergy()
	}
	return kinetic, c.field.PotentialEnergy(c.scenario.Bodies)
}

func (c *Clock) stepLocked() {
	bodies := c.scenario.Bodies
	c.field.Apply(bodies)
	c.resolver.Resolve(bodies)
	c.integrator.Apply(bodies)
	c.tick++
	c.trails.Record(c.tick, bodies)
}

func (c *Clock) applyInputs() {
	c.inputMu.Lock()
	inputs := c.inputs
	c.inputs = nil
	c.inputMu.Unlock()

	for _, in := range inputs {
		c.apply(in)
	}
}

func (c *Clock) apply(in Input) {
	ctx := context.Background()

	switch in.Kind {
	case Reposition:
		if err := c.scenario.Reposition(in.BodyID, in.Vector); err != nil {
			c.logger.Warn(ctx, "input rejected", "input", in.Kind.String(), "error", err.Error())
			return
		}
		if body, ok := c.scenario.Body(in.BodyID); ok {
			c.pending = append(c.pending, event.NewBodyEvent(event.BodyRepositioned, c, c.tick, body))
		}

	case SetVelocity:
		if err := c.scenario.SetVelocity(in.BodyID, in.Vector); err != nil {
			c.logger.Warn(ctx, "input rejected", "input", in.Kind.String(), "error", err.Error())
			return
		}
		if body, ok := c.scenario.Body(in.BodyID); ok {
			c.pending = append(c.pending, event.NewBodyEvent(event.BodyLaunched, c, c.tick, body))
		}

	case TogglePause:
		c.paused = !c.paused
		eventType := event.SimulationResumed
		if c.paused {
			eventType = event.SimulationPaused
		}
		c.pending = append(c.pending, &event.BaseEvent{EventType: eventType, Source: c, Tick: c.tick})

	case Quit:
		c.quit = true

	case Reset:
		next := c.initial
		if in.Scenario != nil {
			next = in.Scenario.Clone()
			next.AdoptIDs(c.scenario)
			c.initial = next.Clone()
		}
		c.scenario = next.Clone()
		c.integrator.Bounds = c.scenario.Bounds
		c.trails.Reset()
		c.tick = 0
		c.acc = 0
		c.logger.Info(ctx, "scenario reset", "scenario", c.scenario.Name, "bodies", len(c.scenario.Bodies))
		c.pending = append(c.pending, &event.BaseEvent{EventType: event.ScenarioReset, Source: c})

	default:
		c.logger.Warn(ctx, "unknown input", "input", in.Kind.String())
	}
}

func (c *Clock) takePending() []event.Event {
	events := c.pending
	c.pending = nil
	return events
}

// publish runs handlers outside the state lock so they may call Snapshot
func (c *Clock) publish(events []event.Event) {
	for _, e := range events {
		c.EventBus.Publish(e)
	}
}
