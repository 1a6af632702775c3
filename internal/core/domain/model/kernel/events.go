package kernel

// DomainEvent is something that happened to an aggregate and is published
// once the unit of work that produced it has committed.
type DomainEvent interface {
	EventName() string
}

// EventSource is implemented by aggregates that record domain events.
// PullDomainEvents returns the pending events and clears them.
type EventSource interface {
	PullDomainEvents() []DomainEvent
}
