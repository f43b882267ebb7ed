package queries

import (
	"errors"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/notification"
	"errands/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

type ListNotificationsQuery struct {
	userID     kernel.UUID
	unreadOnly bool

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(userID kernel.UUID, unreadOnly bool) (ListNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{userID: userID, unreadOnly: unreadOnly, guard: guard.NewConstructorGuard()}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) UserID() kernel.UUID { return q.userID }
func (q ListNotificationsQuery) UnreadOnly() bool    { return q.unreadOnly }

type NotificationView struct {
	ID        kernel.UUID
	Type      notification.Type
	Title     string
	Body      string
	OrderID   *kernel.UUID
	IsRead    bool
	CreatedAt time.Time
}

// NotificationsView carries the listing and the caller's unread count, which does not
// depend on the filter.
type NotificationsView struct {
	UnreadCount   int64
	Notifications []NotificationView
}
