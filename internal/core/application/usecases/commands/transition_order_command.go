package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via one of the order action constructors",
)

// TransitionOrderCommand is an operator action on an order: deliver, mark
// success or cancel.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  order.Action

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID kernel.UUID, action order.Action) (TransitionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}
	if _, err := action.Target(); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func NewDeliverOrderCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.ActionDeliver)
}

func NewMarkOrderSuccessCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.ActionMarkSuccess)
}

func NewCancelOrderCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.ActionCancel)
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}
