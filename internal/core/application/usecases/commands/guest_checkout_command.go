package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/pkg/guard"
)

var ErrGuestCheckoutCommandIsNotConstructed = errors.New(
	"GuestCheckoutCommand must be created via NewGuestCheckoutCommand constructor",
)

// GuestCheckoutCommand places an order for a visitor without an account. The
// cart travels inline with the request.
type GuestCheckoutCommand struct { //nolint:recvcheck //using for validation
	email string
	cart  cart.GuestCart

	guard guard.ConstructorGuard
}

func NewGuestCheckoutCommand(email string, guestCart cart.GuestCart) (GuestCheckoutCommand, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return GuestCheckoutCommand{}, ErrEmailIsRequired
	}
	if err := guestCart.Validate(); err != nil {
		return GuestCheckoutCommand{}, err
	}

	return GuestCheckoutCommand{
		email: email,
		cart:  guestCart,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c GuestCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrGuestCheckoutCommandIsNotConstructed)
}

func (c GuestCheckoutCommand) Email() string {
	return c.email
}

func (c GuestCheckoutCommand) Cart() cart.GuestCart {
	return c.cart
}
