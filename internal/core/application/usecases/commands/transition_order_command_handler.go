package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

// TransitionOrderCommandHandler moves an order along its lifecycle.
//
// The order is loaded first, so an unknown id returns NotFound before anything
// is written. The status update is conditional on the loaded version and runs
// before any stock adjustment: when two operators act on the same order at
// once, the loser fails on the version check and its whole unit of work,
// inventory included, is rolled back.
//
// Example:
//
//	cmd, _ := NewMarkOrderSuccessCommand(orderID)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // 404
//	case errors.Is(err, order.ErrTransitionNotAllowed), errors.Is(err, errs.ErrVersionIsInvalid):
//	    // 409
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.TransitionPolicy
	adjuster   services.InventoryAdjuster
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy order.TransitionPolicy,
	adjuster services.InventoryAdjuster,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		adjuster:   adjuster,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Transition(cmd.Action(), h.policy); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	products := uow.ProductRepository()
	for _, adj := range h.adjuster.Adjustments(o, o.Status()) {
		if err = products.AdjustStock(ctx, adj); err != nil {
			return nil, fmt.Errorf("adjust stock of product %s: %w", adj.ProductID, err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
