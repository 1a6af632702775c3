package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// EventPublisher hands committed domain events to their subscribers.
// Publish must not block on slow subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent)
}

// Mail is one outgoing message. Body is HTML.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers mail on a best-effort basis.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// Broadcaster pushes a payload to every connected live viewer and reports how
// many received it.
type Broadcaster interface {
	Broadcast(ctx context.Context, payload []byte) (int, error)
}

// TokenIssuer issues the session token stored on provisioned guest accounts.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// PasswordHasher hashes the placeholder password of guest accounts.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
