// Package commands contains the business operations that modify storefront state:
// checkout, guest checkout, order transitions and the notification feed.
// Every handler validates its command, opens a unit of work, performs all reads
// and writes inside it and commits once; any error rolls everything back.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// CheckoutUoW covers both checkout flows: account and cart reads (and guest
	// provisioning writes), order creation and cart line deletion.
	CheckoutUoW interface {
		TxManager
		UserRepoFactory
		CartRepoFactory
		OrderRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW covers a status transition and the inventory movement it causes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
