package commands

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

// GuestCheckoutCommandHandler provisions the guest account and places the order
// in a single unit of work: a failure at any step leaves no account, cart or order behind.
//
// The freshly created cart stays empty; the order lines come from the inline cart.
type GuestCheckoutCommandHandler struct {
	uowFactory  CheckoutUoWFactory
	provisioner *services.GuestProvisioner
	builder     services.OrderBuilder
}

func NewGuestCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	provisioner *services.GuestProvisioner,
	builder services.OrderBuilder,
) GuestCheckoutCommandHandler {
	return GuestCheckoutCommandHandler{
		uowFactory:  uowFactory,
		provisioner: provisioner,
		builder:     builder,
	}
}

func (h GuestCheckoutCommandHandler) Handle(ctx context.Context, cmd GuestCheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()

	owner, err := h.provisioner.Provision(ctx, uow.UserRepository(), uow.CartRepository(), cmd.Email(), cmd.Cart(), now)
	if err != nil {
		return nil, err
	}

	o, err := h.builder.Build(owner.ID(), cmd.Cart().Snapshot(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
