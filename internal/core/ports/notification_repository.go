package ports

import (
	"context"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/notification"
)

type NotificationRepository interface {
	Add(ctx context.Context, aggregate *notification.Notification) error
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)
	Update(ctx context.Context, aggregate *notification.Notification) error

	// MarkAllRead flags every unread notification of userID and returns how many changed.
	MarkAllRead(ctx context.Context, userID kernel.UUID) (int64, error)
}
