package ports

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
)

// CartRepository reads carts and manages their lines.
type CartRepository interface {
	Add(ctx context.Context, c *cart.Cart) error

	// Get returns errs.ObjectNotFoundError when the cart does not exist.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// GetForUpdate is Get plus a row lock held until the unit of work ends.
	// Checkouts of the same cart queue behind it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*cart.Cart, error)
	// GetByUser returns the cart owned by userID.
	GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// Lines lists the cart details of a cart in insertion order.
	Lines(ctx context.Context, cartID kernel.UUID) ([]cart.Line, error)

	// DeleteLines removes the given cart details. It returns
	// errs.ErrVersionIsInvalid when some of them are already gone.
	DeleteLines(ctx context.Context, ids []kernel.UUID) error
}
