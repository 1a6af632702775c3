package cart

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrCartIsNotConstructed is returned when a Cart was not built by NewCart or RestoreCart.
var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

// Cart is the per-user shopping basket. Every user owns exactly one cart; it is
// created together with the account and emptied, never deleted, by checkout.
//
// The amount is the running total kept by the catalog side. Checkout never trusts
// it and always sums the line prices instead.
type Cart struct {
	id      kernel.UUID
	userID  kernel.UUID
	amount  kernel.Money
	address string
	phone   string

	guard guard.ConstructorGuard
}

// NewCart creates an empty cart for a user with a zero running total.
//
//	c, err := cart.NewCart(kernel.NewUUID(), u.ID(), u.Address(), u.Phone())
func NewCart(id, userID kernel.UUID, address, phone string) (*Cart, error) {
	return RestoreCart(id, userID, kernel.Zero(), address, phone)
}

// RestoreCart rebuilds a cart loaded from storage.
func RestoreCart(id, userID kernel.UUID, amount kernel.Money, address, phone string) (*Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("user", err)
	}

	return &Cart{
		id:      id,
		userID:  userID,
		amount:  amount,
		address: address,
		phone:   phone,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) ID() kernel.UUID      { return c.id }
func (c *Cart) UserID() kernel.UUID  { return c.userID }
func (c *Cart) Amount() kernel.Money { return c.amount }
func (c *Cart) Address() string      { return c.address }
func (c *Cart) Phone() string        { return c.phone }
