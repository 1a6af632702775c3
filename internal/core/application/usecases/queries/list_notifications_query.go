package queries

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery returns the admin feed, newest first.
type ListNotificationsQuery struct {
	guard guard.ConstructorGuard
}

func NewListNotificationsQuery() ListNotificationsQuery {
	return ListNotificationsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

type NotificationResponse struct {
	ID          kernel.UUID
	Message     string
	CreatedAt   time.Time
	Read        bool
	BroadcastAt *time.Time
}

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(ctx context.Context, query ListNotificationsQuery) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			message,
			created_at,
			read,
			broadcast_at
		FROM notifications
		ORDER BY created_at DESC, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]NotificationResponse, 0)
	for rows.Next() {
		var n NotificationResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &n.Message, &n.CreatedAt, &n.Read, &n.BroadcastAt); err != nil {
			return nil, err
		}
		if n.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}
