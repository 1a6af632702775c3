package commands

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// CheckoutCommandHandler places an order from a registered customer's cart.
//
// Steps, all inside one unit of work:
//  1. resolve the account by email and lock the cart by id (NotFound otherwise)
//  2. snapshot the cart lines and build a Pending order from them
//  3. persist the order with its lines
//  4. delete the consumed cart lines
//
// The cart lock queues concurrent checkouts of one cart. The one that waited
// finds the cart empty and is rejected, so a set of cart lines yields one order.
//
// The "order placed" mail is sent by the event subscribers after commit.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	builder    services.OrderBuilder
}

func NewCheckoutCommandHandler(uowFactory CheckoutUoWFactory, builder services.OrderBuilder) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		builder:    builder,
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
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

	customer, err := uow.UserRepository().FindByEmail(ctx, cmd.Email())
	if err != nil {
		return nil, err
	}

	carts := uow.CartRepository()
	c, err := carts.GetForUpdate(ctx, cmd.CartID())
	if err != nil {
		return nil, err
	}
	if !c.UserID().IsEqual(customer.ID()) {
		return nil, errs.NewObjectNotFoundErrorWithCause(
			"cart", cmd.CartID().String(),
			fmt.Errorf("cart does not belong to %s", cmd.Email()),
		)
	}

	lines, err := carts.Lines(ctx, c.ID())
	if err != nil {
		return nil, fmt.Errorf("read cart lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause(
			"cart lines",
			fmt.Errorf("cart %s is empty", c.ID()),
		)
	}
	snapshot := cart.TakeSnapshot(c, lines, cmd.Address(), cmd.Phone())

	o, err := h.builder.Build(customer.ID(), snapshot, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err = carts.DeleteLines(ctx, snapshot.LineIDs); err != nil {
		return nil, fmt.Errorf("empty cart: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
