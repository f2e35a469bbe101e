package bus

import "time"

// Event is a single in-process signal. Delivery is synchronous: by the time
// Publish returns, every handler has run. That makes the bus usable for
// same-tick lifecycle signals (batch completed, member died, item collected).
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

// EventHandler processes a delivered event. A returned error is aggregated
// into the Publish result; it does not stop delivery to other handlers.
type EventHandler func(Event) error

// Subscription represents a registered handler.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}

// EventBus is the publish/subscribe surface.
type EventBus interface {
	Publish(event Event) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	Unsubscribe(sub Subscription) error
	GetMetrics() Metrics
}

// Metrics counts bus activity.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
