package commands_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T, status order.Status, quantities ...int) *order.Order {
	t.Helper()
	lines := make([]order.Line, 0, len(quantities))
	for _, q := range quantities {
		l, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), q, kernel.MustMoney("4.00"))
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now(),
		kernel.MustMoney("4.00"), "addr", "phone", status, 2, lines)
	require.NoError(t, err)
	return o
}

func newTransitionHandler(uow *MockUoW, trigger services.InventoryTrigger) commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		orderFactory{factoryOf(uow)},
		order.Permissive,
		services.NewInventoryAdjuster(trigger),
	)
}

func TestTransitionOrderCommandHandler_MarkSuccessMovesStock(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Delivering, 2, 3)
	lines := o.Lines()
	cmd, err := commands.NewMarkOrderSuccessCommand(o.ID())
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectCommitted()
	uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	mock.InOrder(
		uow.Orders.On("Update", ctx, o).Return(nil).Once(),
		uow.Products.On("AdjustStock", ctx, product.Adjustment{ProductID: lines[0].ProductID(), Units: 2}).Return(nil).Once(),
		uow.Products.On("AdjustStock", ctx, product.Adjustment{ProductID: lines[1].ProductID(), Units: 3}).Return(nil).Once(),
	)

	got, err := newTransitionHandler(uow, services.TriggerOnComplete).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, got.Status())
	uow.AssertExpectations(t)
	uow.Orders.AssertExpectations(t)
	uow.Products.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_DeliverLeavesStockUnderCompleteTrigger(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Pending, 1)
	cmd, err := commands.NewDeliverOrderCommand(o.ID())
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectCommitted()
	uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.Orders.On("Update", ctx, o).Return(nil).Once()

	got, err := newTransitionHandler(uow, services.TriggerOnComplete).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivering, got.Status())
	uow.Products.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_DeliverMovesStockUnderBothTrigger(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Pending, 4)
	cmd, err := commands.NewDeliverOrderCommand(o.ID())
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectCommitted()
	uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.Orders.On("Update", ctx, o).Return(nil).Once()
	uow.Products.On("AdjustStock", ctx, mock.MatchedBy(func(a product.Adjustment) bool { return a.Units == 4 })).
		Return(nil).Once()

	_, err = newTransitionHandler(uow, services.TriggerOnBoth).Handle(ctx, cmd)

	require.NoError(t, err)
	uow.Products.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_CancelLeavesStock(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Delivering, 1)
	cmd, err := commands.NewCancelOrderCommand(o.ID())
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectCommitted()
	uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.Orders.On("Update", ctx, o).Return(nil).Once()

	got, err := newTransitionHandler(uow, services.TriggerOnBoth).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, got.Status())
	uow.Products.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Failures(t *testing.T) {
	ctx := t.Context()

	t.Run("unknown order writes nothing", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewDeliverOrderCommand(id)
		require.NoError(t, err)
		uow := newMockUoW()
		uow.expectRolledBack()
		uow.Orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		o, err := newTransitionHandler(uow, services.TriggerOnComplete).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Nil(t, o)
		uow.Orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.Products.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("terminal order is rejected", func(t *testing.T) {
		o := storedOrder(t, order.Cancelled, 1)
		cmd, err := commands.NewMarkOrderSuccessCommand(o.ID())
		require.NoError(t, err)
		uow := newMockUoW()
		uow.expectRolledBack()
		uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

		_, err = newTransitionHandler(uow, services.TriggerOnComplete).Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
		uow.Orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("version conflict skips inventory", func(t *testing.T) {
		o := storedOrder(t, order.Delivering, 1)
		cmd, err := commands.NewMarkOrderSuccessCommand(o.ID())
		require.NoError(t, err)
		uow := newMockUoW()
		uow.expectRolledBack()
		uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow.Orders.On("Update", ctx, o).
			Return(errs.NewVersionIsInvalidError("order", errors.New("changed concurrently"))).Once()

		_, err = newTransitionHandler(uow, services.TriggerOnComplete).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		uow.Products.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("missing product rolls back", func(t *testing.T) {
		o := storedOrder(t, order.Delivering, 1, 1)
		cmd, err := commands.NewMarkOrderSuccessCommand(o.ID())
		require.NoError(t, err)
		uow := newMockUoW()
		uow.expectRolledBack()
		uow.Orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow.Orders.On("Update", ctx, o).Return(nil).Once()
		uow.Products.On("AdjustStock", ctx, mock.Anything).
			Return(errs.NewObjectNotFoundError("product", "x")).Once()

		_, err = newTransitionHandler(uow, services.TriggerOnComplete).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.ErrorContains(t, err, "adjust stock of product")
		uow.Products.AssertNumberOfCalls(t, "AdjustStock", 1)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("unconstructed command", func(t *testing.T) {
		h := commands.NewTransitionOrderCommandHandler(orderFactory{factoryOf()}, order.Permissive,
			services.NewInventoryAdjuster(services.TriggerOnComplete))

		_, err := h.Handle(ctx, commands.TransitionOrderCommand{})

		require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
	})
}

func TestNewTransitionOrderCommand(t *testing.T) {
	_, err := commands.NewDeliverOrderCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewTransitionOrderCommand(kernel.NewUUID(), order.Action(99))
	require.Error(t, err)

	cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID())
	require.NoError(t, err)
	assert.Equal(t, order.ActionCancel, cmd.Action())
	require.NoError(t, cmd.Validate())
}
