package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/notification"
)

type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error
	Update(ctx context.Context, n *notification.Notification) error
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// ListUnbroadcast returns up to limit notifications that were never broadcast, oldest first.
	// The rows stay locked until the unit of work ends; rows another unit of work
	// holds are skipped.
	ListUnbroadcast(ctx context.Context, limit int) ([]*notification.Notification, error)

	// Claim locks one notification for the rest of the unit of work. It reports
	// false when the notification was already broadcast or another unit of work holds it.
	Claim(ctx context.Context, id kernel.UUID) (bool, error)

	// MarkAllRead flags every unread notification and reports how many changed.
	MarkAllRead(ctx context.Context) (int64, error)
}
