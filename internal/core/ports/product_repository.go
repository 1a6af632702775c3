package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
)

// ProductRepository exposes the inventory counters of catalog products.
type ProductRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// AdjustStock applies quantity -= Units and sold += Units in one atomic
	// statement. Returns errs.ObjectNotFoundError when the product is missing.
	AdjustStock(ctx context.Context, adj product.Adjustment) error
}
