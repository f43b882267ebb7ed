// Package notificationrepo persists in-app notifications.
package notificationrepo

import (
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;index:idx_notifications_user_read,priority:1;not null"`
	Type      string     `gorm:"size:32;not null"`
	Title     string     `gorm:"size:128;not null"`
	Body      string     `gorm:"size:1000"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	IsRead    bool       `gorm:"index:idx_notifications_user_read,priority:2;not null;default:false"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false;index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	var orderID *uuid.UUID
	if id := n.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.UserID().Bytes(),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Body:      n.Body(),
		OrderID:   orderID,
		IsRead:    n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	var orderID *kernel.UUID
	if dto.OrderID != nil {
		id := kernel.UUIDFrom(*dto.OrderID)
		orderID = &id
	}

	return notification.Restore(
		kernel.UUIDFrom(dto.ID),
		kernel.UUIDFrom(dto.UserID),
		notification.Type(dto.Type),
		dto.Title,
		dto.Body,
		orderID,
		dto.IsRead,
		dto.CreatedAt.UTC(),
	)
}
