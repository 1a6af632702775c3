package order

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Line is an OrderDetail: an immutable copy of a cart line taken at checkout.
// Price is the full line value quoted when the item was added to the cart.
type Line struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	price     kernel.Money
}

// NewLine validates and builds an order line.
func NewLine(id, productID kernel.UUID, quantity int, price kernel.Money) (Line, error) {
	if err := id.Validate(); err != nil {
		return Line{}, err
	}
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return Line{
		id:        id,
		productID: productID,
		quantity:  quantity,
		price:     price,
	}, nil
}

func (l Line) ID() kernel.UUID        { return l.id }
func (l Line) ProductID() kernel.UUID { return l.productID }
func (l Line) Quantity() int          { return l.quantity }
func (l Line) Price() kernel.Money    { return l.price }
