// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-gravity/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
	SimulationPaused  Type = "simulation_paused"
	SimulationResumed Type = "simulation_resumed"
	ScenarioReset     Type = "scenario_reset"
	BodiesCollided    Type = "bodies_collided"
	BodyRepositioned  Type = "body_repositioned"
	BodyLaunched      Type = "body_launched"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
	Tick      uint64
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription uint64

type registration struct {
	id      Subscription
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]registration
	nextID   Subscription
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a handler by the subscription Subscribe returned
func (b *Bus) Unsubscribe(eventType Type, sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == sub {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// CollisionEvent reports a resolved contact between two bodies
type CollisionEvent struct {
	BaseEvent
	BodyA        physics.ID
	BodyB        physics.ID
	Position     physics.Vector2D
	ClosingSpeed float64
	Impulse      float64
}

// NewCollisionEvent creates a collision event from a resolver contact
func NewCollisionEvent(source interface{}, tick uint64, c physics.Contact) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: BodiesCollided,
			Source:    source,
			Tick:      tick,
		},
		BodyA:        c.A.ID,
		BodyB:        c.B.ID,
		Position:     c.A.Position.Add(c.Normal.Scale(c.A.Radius)),
		ClosingSpeed: c.ClosingSpeed,
		Impulse:      c.Impulse,
	}
}

// BodyEvent reports an external change to a single body
type BodyEvent struct {
	BaseEvent
	BodyID   physics.ID
	Position physics.Vector2D
	Velocity physics.Vector2D
}

// NewBodyEvent creates a body event
func NewBodyEvent(eventType Type, source interface{}, tick uint64, body *physics.Body) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
			Tick:      tick,
		},
		BodyID:   body.ID,
		Position: body.Position,
		Velocity: body.Velocity,
	}
}
