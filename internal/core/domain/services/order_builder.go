package services

import (
	"fmt"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderBuilder converts a cart snapshot into a Pending order.
//
// The order amount is the exact sum of the snapshot line prices. Stored line
// prices are trusted as-is; the catalog price is never re-read here.
//
//	builder := services.NewOrderBuilder()
//	o, err := builder.Build(userID, snapshot, time.Now())
type OrderBuilder struct {
	newID func() kernel.UUID
}

func NewOrderBuilder() OrderBuilder {
	return OrderBuilder{newID: kernel.NewUUID}
}

// Build creates the order and one line per snapshot line. An empty snapshot
// yields a zero-amount order.
func (b OrderBuilder) Build(userID kernel.UUID, snapshot cart.Snapshot, now time.Time) (*order.Order, error) {
	newID := b.newID
	if newID == nil {
		newID = kernel.NewUUID
	}

	lines := make([]order.Line, 0, len(snapshot.Lines))
	for i, sl := range snapshot.Lines {
		line, err := order.NewLine(newID(), sl.ProductID, sl.Quantity, sl.Price)
		if err != nil {
			return nil, fmt.Errorf("cart line %d: %w", i, err)
		}
		lines = append(lines, line)
	}

	return order.NewOrder(newID(), userID, snapshot.Address, snapshot.Phone, lines, now)
}
