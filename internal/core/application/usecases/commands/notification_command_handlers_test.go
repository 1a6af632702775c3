package commands_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/notification"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedNotification(t *testing.T, message string) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(kernel.NewUUID(), message, time.Now().UTC())
	require.NoError(t, err)
	return n
}

func TestCreateNotificationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateNotificationCommand("Order 42 shipped")
	require.NoError(t, err)

	addUoW, updateUoW := newMockUoW(), newMockUoW()
	addUoW.expectCommitted()
	updateUoW.expectCommitted()
	addUoW.Notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	updateUoW.Notifications.On("Claim", ctx, mock.Anything).Return(true, nil).Once()
	updateUoW.Notifications.On("Update", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.IsBroadcast()
	})).Return(nil).Once()

	var frame commands.NotificationPayload
	broadcaster := new(MockBroadcaster)
	broadcaster.On("Broadcast", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(args.Get(1).([]byte), &frame))
		}).
		Return(3, nil).Once()

	h := commands.NewCreateNotificationCommandHandler(notificationFactory{factoryOf(addUoW, updateUoW)}, broadcaster)
	n, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Order 42 shipped", n.Message())
	assert.True(t, n.IsBroadcast())
	assert.Equal(t, n.ID().String(), frame.ID)
	assert.Equal(t, "Order 42 shipped", frame.Message)
	assert.False(t, frame.Read)
	addUoW.Notifications.AssertExpectations(t)
	updateUoW.Notifications.AssertExpectations(t)
}

func TestCreateNotificationCommandHandler_BroadcastFailureKeepsNotification(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateNotificationCommand("hello")
	require.NoError(t, err)

	addUoW, claimUoW := newMockUoW(), newMockUoW()
	addUoW.expectCommitted()
	claimUoW.expectRolledBack()
	addUoW.Notifications.On("Add", ctx, mock.Anything).Return(nil).Once()
	claimUoW.Notifications.On("Claim", ctx, mock.Anything).Return(true, nil).Once()
	broadcaster := new(MockBroadcaster)
	broadcaster.On("Broadcast", ctx, mock.Anything).Return(0, errors.New("hub closed")).Once()

	h := commands.NewCreateNotificationCommandHandler(notificationFactory{factoryOf(addUoW, claimUoW)}, broadcaster)
	n, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, n.IsBroadcast())
	claimUoW.Notifications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateNotificationCommandHandler_ClaimedByRelaySkipsBroadcast(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateNotificationCommand("hello")
	require.NoError(t, err)

	addUoW, claimUoW := newMockUoW(), newMockUoW()
	addUoW.expectCommitted()
	claimUoW.expectRolledBack()
	addUoW.Notifications.On("Add", ctx, mock.Anything).Return(nil).Once()
	claimUoW.Notifications.On("Claim", ctx, mock.Anything).Return(false, nil).Once()
	broadcaster := new(MockBroadcaster)

	h := commands.NewCreateNotificationCommandHandler(notificationFactory{factoryOf(addUoW, claimUoW)}, broadcaster)
	n, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, n.IsBroadcast())
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	claimUoW.Notifications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateNotificationCommandHandler_AddFailure(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateNotificationCommand("hello")
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectRolledBack()
	uow.Notifications.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
	broadcaster := new(MockBroadcaster)

	_, err = commands.NewCreateNotificationCommandHandler(notificationFactory{factoryOf(uow)}, broadcaster).Handle(ctx, cmd)

	require.EqualError(t, err, "insert failed")
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}

func TestMarkNotificationReadCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("marks read", func(t *testing.T) {
		n := storedNotification(t, "m")
		cmd, err := commands.NewMarkNotificationReadCommand(n.ID())
		require.NoError(t, err)
		uow := newMockUoW()
		uow.expectCommitted()
		uow.Notifications.On("Get", ctx, n.ID()).Return(n, nil).Once()
		uow.Notifications.On("Update", ctx, n).Return(nil).Once()

		got, err := commands.NewMarkNotificationReadCommandHandler(notificationFactory{factoryOf(uow)}).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, got.Read())
	})

	t.Run("unknown id", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewMarkNotificationReadCommand(id)
		require.NoError(t, err)
		uow := newMockUoW()
		uow.expectRolledBack()
		uow.Notifications.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("notification", id.String())).Once()

		_, err = commands.NewMarkNotificationReadCommandHandler(notificationFactory{factoryOf(uow)}).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.Notifications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestMarkAllNotificationsReadCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectCommitted()
	uow.Notifications.On("MarkAllRead", ctx).Return(int64(4), nil).Once()

	changed, err := commands.NewMarkAllNotificationsReadCommandHandler(notificationFactory{factoryOf(uow)}).
		Handle(ctx, commands.NewMarkAllNotificationsReadCommand())

	require.NoError(t, err)
	assert.Equal(t, int64(4), changed)
}

func TestRelayNotificationsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("relays every pending notification", func(t *testing.T) {
		pending := []*notification.Notification{storedNotification(t, "a"), storedNotification(t, "b")}
		cmd, err := commands.NewRelayNotificationsCommand(10)
		require.NoError(t, err)
		uow := newMockUoW()
		uow.expectCommitted()
		uow.Notifications.On("ListUnbroadcast", ctx, 10).Return(pending, nil).Once()
		uow.Notifications.On("Update", ctx, mock.Anything).Return(nil).Twice()
		broadcaster := new(MockBroadcaster)
		broadcaster.On("Broadcast", ctx, mock.Anything).Return(1, nil).Twice()

		relayed, err := commands.NewRelayNotificationsCommandHandler(notificationFactory{factoryOf(uow)}, broadcaster).
			Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, relayed)
		assert.True(t, pending[0].IsBroadcast())
		assert.True(t, pending[1].IsBroadcast())
	})

	t.Run("stops at first broadcast failure and keeps progress", func(t *testing.T) {
		pending := []*notification.Notification{
			storedNotification(t, "a"), storedNotification(t, "b"), storedNotification(t, "c"),
		}
		cmd, err := commands.NewRelayNotificationsCommand(10)
		require.NoError(t, err)
		uow := newMockUoW()
		uow.expectCommitted()
		uow.Notifications.On("ListUnbroadcast", ctx, 10).Return(pending, nil).Once()
		uow.Notifications.On("Update", ctx, pending[0]).Return(nil).Once()
		broadcaster := new(MockBroadcaster)
		broadcaster.On("Broadcast", ctx, mock.Anything).Return(1, nil).Once()
		broadcaster.On("Broadcast", ctx, mock.Anything).Return(0, errors.New("redis down")).Once()

		relayed, err := commands.NewRelayNotificationsCommandHandler(notificationFactory{factoryOf(uow)}, broadcaster).
			Handle(ctx, cmd)

		require.EqualError(t, err, "redis down")
		assert.Equal(t, 1, relayed)
		assert.False(t, pending[1].IsBroadcast())
		assert.False(t, pending[2].IsBroadcast())
		broadcaster.AssertNumberOfCalls(t, "Broadcast", 2)
		uow.AssertExpectations(t)
	})
}

func TestNotificationCommands(t *testing.T) {
	_, err := commands.NewCreateNotificationCommand("   ")
	require.ErrorIs(t, err, commands.ErrMessageIsRequired)

	_, err = commands.NewMarkNotificationReadCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewRelayNotificationsCommand(0)
	require.ErrorIs(t, err, commands.ErrBatchSizeIsInvalid)

	require.ErrorIs(t, commands.CreateNotificationCommand{}.Validate(), commands.ErrCreateNotificationCommandIsNotConstructed)
	require.ErrorIs(t, commands.MarkAllNotificationsReadCommand{}.Validate(),
		commands.ErrMarkAllNotificationsReadCommandIsNotConstructed)
	require.NoError(t, commands.NewMarkAllNotificationsReadCommand().Validate())
}
