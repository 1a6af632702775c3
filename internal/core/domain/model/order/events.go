package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// EventKind names the lifecycle moment an Event describes.
type EventKind string

const (
	EventPlaced     EventKind = "order.placed"
	EventDelivering EventKind = "order.delivering"
	EventCompleted  EventKind = "order.completed"
	EventCancelled  EventKind = "order.cancelled"
)

// Event is recorded by the Order aggregate on creation and on every status
// transition. It is published after the unit of work commits and drives the
// mail and live notification channels.
type Event struct {
	Kind       EventKind
	OrderID    kernel.UUID
	UserID     kernel.UUID
	Amount     kernel.Money
	Address    string
	Status     Status
	OccurredAt time.Time
}

// EventName implements kernel.DomainEvent.
func (e Event) EventName() string {
	return string(e.Kind)
}

func eventKindFor(status Status) EventKind {
	switch status {
	case Delivering:
		return EventDelivering
	case Completed:
		return EventCompleted
	case Cancelled:
		return EventCancelled
	default:
		return EventPlaced
	}
}
