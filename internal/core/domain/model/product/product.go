package product

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Product is the inventory view of a catalog item: stock on hand and units sold.
// Only the inventory adjuster changes these counters, and it does so with a
// single atomic statement rather than through this type.
type Product struct {
	id       kernel.UUID
	name     string
	quantity int
	sold     int
}

func RestoreProduct(id kernel.UUID, name string, quantity, sold int) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if sold < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sold is invalid", fmt.Errorf("%d is negative", sold))
	}
	return &Product{id: id, name: name, quantity: quantity, sold: sold}, nil
}

func (p *Product) ID() kernel.UUID { return p.id }
func (p *Product) Name() string    { return p.name }

// Quantity may go negative: the storefront never blocks fulfillment on stock.
func (p *Product) Quantity() int { return p.quantity }
func (p *Product) Sold() int     { return p.sold }

// Adjustment is one stock movement: quantity decreases and sold increases by Units.
type Adjustment struct {
	ProductID kernel.UUID
	Units     int
}
