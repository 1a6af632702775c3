package cart

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Line is a CartDetail: one product in a cart. Price is the full line value
// quoted when the product was added, so it already accounts for quantity.
type Line struct {
	id        kernel.UUID
	cartID    kernel.UUID
	productID kernel.UUID
	quantity  int
	price     kernel.Money
}

// NewLine validates and builds a cart line.
func NewLine(id, cartID, productID kernel.UUID, quantity int, price kernel.Money) (Line, error) {
	for _, u := range []kernel.UUID{id, cartID, productID} {
		if err := u.Validate(); err != nil {
			return Line{}, err
		}
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return Line{id: id, cartID: cartID, productID: productID, quantity: quantity, price: price}, nil
}

func (l Line) ID() kernel.UUID        { return l.id }
func (l Line) CartID() kernel.UUID    { return l.cartID }
func (l Line) ProductID() kernel.UUID { return l.productID }
func (l Line) Quantity() int          { return l.quantity }
func (l Line) Price() kernel.Money    { return l.price }
