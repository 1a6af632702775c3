// Package notificationrepo persists the admin notification feed with GORM.
package notificationrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Message     string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	Read        bool
	BroadcastAt *time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID().Bytes(),
		Message:     n.Message(),
		CreatedAt:   n.CreatedAt(),
		Read:        n.Read(),
		BroadcastAt: n.BroadcastAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return notification.RestoreNotification(id, dto.Message, dto.CreatedAt, dto.Read, dto.BroadcastAt)
}
