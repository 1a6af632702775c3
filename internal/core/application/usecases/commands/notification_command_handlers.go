package commands

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/notification"
	"storefront/internal/core/ports"
)

// NotificationPayload is the JSON frame pushed to live viewers.
type NotificationPayload struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"time"`
	Read      bool      `json:"status"`
}

func encodeNotification(n *notification.Notification) ([]byte, error) {
	return json.Marshal(NotificationPayload{
		ID:        n.ID().String(),
		Message:   n.Message(),
		CreatedAt: n.CreatedAt(),
		Read:      n.Read(),
	})
}

// CreateNotificationCommandHandler stores a notification and broadcasts it.
//
// The broadcast is best effort and happens after commit, while the row is
// claimed so a concurrent relay run skips it. When it fails the notification
// stays unbroadcast and RelayNotificationsCommandHandler picks it up on its
// next run.
type CreateNotificationCommandHandler struct {
	uowFactory  NotificationUoWFactory
	broadcaster ports.Broadcaster
}

func NewCreateNotificationCommandHandler(
	uowFactory NotificationUoWFactory,
	broadcaster ports.Broadcaster,
) CreateNotificationCommandHandler {
	return CreateNotificationCommandHandler{uowFactory: uowFactory, broadcaster: broadcaster}
}

func (h CreateNotificationCommandHandler) Handle(
	ctx context.Context,
	cmd CreateNotificationCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	n, err := notification.NewNotification(kernel.NewUUID(), cmd.Message(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = h.add(ctx, n); err != nil {
		return nil, err
	}

	_ = h.broadcast(ctx, n)
	return n, nil
}

func (h CreateNotificationCommandHandler) add(ctx context.Context, n *notification.Notification) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Add(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateNotificationCommandHandler) broadcast(ctx context.Context, n *notification.Notification) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	claimed, err := repo.Claim(ctx, n.ID())
	if err != nil || !claimed {
		return err
	}

	payload, err := encodeNotification(n)
	if err != nil {
		return err
	}
	if _, err = h.broadcaster.Broadcast(ctx, payload); err != nil {
		return err
	}

	n.MarkBroadcast(time.Now().UTC())
	if err = repo.Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory}
}

// Handle marks one notification read. NotFound when the id is unknown.
func (h MarkNotificationReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationReadCommand,
) (*notification.Notification, error) {
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

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, cmd.ID())
	if err != nil {
		return nil, err
	}

	n.MarkRead()
	if err = repo.Update(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}

type MarkAllNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkAllNotificationsReadCommandHandler(uowFactory NotificationUoWFactory) MarkAllNotificationsReadCommandHandler {
	return MarkAllNotificationsReadCommandHandler{uowFactory: uowFactory}
}

// Handle returns how many notifications changed from unread to read.
func (h MarkAllNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkAllNotificationsReadCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	changed, err := uow.NotificationRepository().MarkAllRead(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return changed, nil
}

// RelayNotificationsCommandHandler pushes unbroadcast notifications to live viewers.
// It stops at the first broadcast failure and keeps what was relayed so far.
type RelayNotificationsCommandHandler struct {
	uowFactory  NotificationUoWFactory
	broadcaster ports.Broadcaster
}

func NewRelayNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	broadcaster ports.Broadcaster,
) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{uowFactory: uowFactory, broadcaster: broadcaster}
}

// Handle returns the number of notifications relayed.
func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	pending, err := repo.ListUnbroadcast(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	relayed := 0
	var broadcastErr error
	for _, n := range pending {
		payload, encodeErr := encodeNotification(n)
		if encodeErr != nil {
			broadcastErr = encodeErr
			break
		}
		if _, broadcastErr = h.broadcaster.Broadcast(ctx, payload); broadcastErr != nil {
			break
		}

		n.MarkBroadcast(time.Now().UTC())
		if err = repo.Update(ctx, n); err != nil {
			return 0, err
		}
		relayed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return relayed, broadcastErr
}
