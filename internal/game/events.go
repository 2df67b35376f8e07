package game

import "time"

// EventType identifies a game event.
type EventType string

const (
	EventTypeHoleStart     EventType = "hole_start"
	EventTypeTeamsFormed   EventType = "teams_formed"
	EventTypeWagerChanged  EventType = "wager_changed"
	EventTypeActionApplied EventType = "action_applied"
	EventTypeHoleSettled   EventType = "hole_settled"
)

func (et EventType) String() string { return string(et) }

// Event is anything that happens during a round worth observing from
// outside the engine (history writers, CLIs, monitors).
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// HoleStartEvent is published when a new hole begins.
type HoleStartEvent struct {
	Hole      int
	Phase     GamePhase
	Captain   PlayerID
	BaseWager int
	CarryOver int
	timestamp time.Time
}

func (e HoleStartEvent) EventType() EventType { return EventTypeHoleStart }
func (e HoleStartEvent) Timestamp() time.Time { return e.timestamp }

// TeamsFormedEvent is published whenever the hole's sides change shape.
type TeamsFormedEvent struct {
	Hole        int
	Kind        TeamKind
	CaptainSide []PlayerID
	FieldSide   []PlayerID
	timestamp   time.Time
}

func (e TeamsFormedEvent) EventType() EventType { return EventTypeTeamsFormed }
func (e TeamsFormedEvent) Timestamp() time.Time { return e.timestamp }

// WagerChangedEvent is published when the stake moves: doubles, tosses,
// floats, option auto-doubles.
type WagerChangedEvent struct {
	Hole       int
	Multiplier int
	Detail     string
	timestamp  time.Time
}

func (e WagerChangedEvent) EventType() EventType { return EventTypeWagerChanged }
func (e WagerChangedEvent) Timestamp() time.Time { return e.timestamp }

// ActionAppliedEvent is published after ApplyAction accepts an action.
type ActionAppliedEvent struct {
	Hole      int
	Kind      ActionKind
	Actor     PlayerID
	timestamp time.Time
}

func (e ActionAppliedEvent) EventType() EventType { return EventTypeActionApplied }
func (e ActionAppliedEvent) Timestamp() time.Time { return e.timestamp }

// HoleSettledEvent is published after settlement with the full result.
type HoleSettledEvent struct {
	Result    HoleResult
	timestamp time.Time
}

func (e HoleSettledEvent) EventType() EventType { return EventTypeHoleSettled }
func (e HoleSettledEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events.
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory, synchronous event bus.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order.
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// publish stamps and publishes an event if a bus is attached. Events carry
// wall-clock timestamps for observers only; the engine never reads them.
func (s *State) publish(event Event) {
	if s.bus == nil {
		return
	}
	now := time.Now()
	switch e := event.(type) {
	case HoleStartEvent:
		e.timestamp = now
		s.bus.Publish(e)
	case TeamsFormedEvent:
		e.timestamp = now
		s.bus.Publish(e)
	case WagerChangedEvent:
		e.timestamp = now
		s.bus.Publish(e)
	case ActionAppliedEvent:
		e.timestamp = now
		s.bus.Publish(e)
	case HoleSettledEvent:
		e.timestamp = now
		s.bus.Publish(e)
	default:
		s.bus.Publish(event)
	}
}
