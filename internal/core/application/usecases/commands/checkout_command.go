package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrEmailIsRequired = errors.New("email is required")
)

// CheckoutCommand converts a registered customer's stored cart into an order.
// Address and phone are optional; when empty the cart's values are used.
//
// Example:
//
//	cmd, err := NewCheckoutCommand("ana@example.com", cartID, "", "")
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	email   string
	cartID  kernel.UUID
	address string
	phone   string

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(email string, cartID kernel.UUID, address, phone string) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		address: strings.TrimSpace(address),
		phone:   strings.TrimSpace(phone),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setCartID(cartID),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) Email() string       { return c.email }
func (c CheckoutCommand) CartID() kernel.UUID { return c.cartID }
func (c CheckoutCommand) Address() string     { return c.address }
func (c CheckoutCommand) Phone() string       { return c.phone }

func (c *CheckoutCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailIsRequired
	}
	c.email = email
	return nil
}

func (c *CheckoutCommand) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}
	c.cartID = cartID
	return nil
}
