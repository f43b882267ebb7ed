package queries

import (
	"context"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler returns a user's inbox together with the unread count.
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle returns the caller's notifications, newest first.
func (h ListNotificationsQueryHandler) Handle(ctx context.Context, query ListNotificationsQuery) (NotificationsView, error) {
	if err := query.Validate(); err != nil {
		return NotificationsView{}, err
	}

	db := h.db.WithContext(ctx)
	userID := query.UserID().Bytes()

	var unread int64
	err := db.Raw(`
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = ? AND is_read = FALSE
	`, userID).Scan(&unread).Error
	if err != nil {
		return NotificationsView{}, err
	}

	filter := ""
	if query.UnreadOnly() {
		filter = "AND is_read = FALSE"
	}

	rows, err := db.Raw(`
		SELECT
			id,
			type,
			title,
			body,
			order_id,
			is_read,
			created_at
		FROM notifications
		WHERE user_id = ? `+filter+`
		ORDER BY created_at DESC, id
	`, userID).Rows()
	if err != nil {
		return NotificationsView{}, err
	}
	defer rows.Close()

	views := make([]NotificationView, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			kind      string
			view      NotificationView
			orderID   *uuid.UUID
			createdAt time.Time
		)
		if err = rows.Scan(&id, &kind, &view.Title, &view.Body, &orderID, &view.IsRead, &createdAt); err != nil {
			return NotificationsView{}, err
		}

		view.ID = kernel.UUIDFrom(id)
		view.Type = notification.Type(kind)
		view.CreatedAt = createdAt.UTC()
		if orderID != nil {
			oid := kernel.UUIDFrom(*orderID)
			view.OrderID = &oid
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return NotificationsView{}, err
	}

	return NotificationsView{UnreadCount: unread, Notifications: views}, nil
}
