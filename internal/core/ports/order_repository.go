// Package ports defines the contracts between the storefront core and its adapters:
// repositories bound to a unit of work, and the outbound channels (events, mail,
// live broadcast, guest credentials) the application layer depends on.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change. The write is conditional on the version the
	// aggregate was loaded with; a concurrent writer that got there first makes
	// Update return errs.ErrVersionIsInvalid. Lines and amount are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines.
	// Returns errs.ObjectNotFoundError when no order has the given id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
