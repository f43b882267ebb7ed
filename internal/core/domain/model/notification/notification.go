// Package notification models the in-app messages created as a side effect of order and
// dispute transitions.
package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via New or Restore")

// Type tags what happened. Values are persisted as strings.
type Type string

const (
	OrderAccepted      Type = "ORDER_ACCEPTED"
	OrderDelivered     Type = "ORDER_DELIVERED"
	OrderCompleted     Type = "ORDER_COMPLETED"
	OrderAutoConfirmed Type = "ORDER_AUTO_CONFIRMED"
	OrderExpired       Type = "ORDER_EXPIRED"
	DisputeApplied     Type = "DISPUTE_APPLIED"
	DisputeReviewed    Type = "DISPUTE_REVIEWED"
	System             Type = "SYSTEM"
)

func (t Type) Validate() error {
	switch t {
	case OrderAccepted, OrderDelivered, OrderCompleted, OrderAutoConfirmed, OrderExpired,
		DisputeApplied, DisputeReviewed, System:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("notification type", fmt.Errorf("%q is unknown", string(t)))
	}
}

type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	kind      Type
	title     string
	body      string
	orderID   *kernel.UUID
	read      bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// New creates an unread notification for userID.
func New(id, userID kernel.UUID, kind Type, title, body string, orderID *kernel.UUID, now time.Time) (*Notification, error) {
	return Restore(id, userID, kind, title, body, orderID, false, now)
}

func Restore(
	id, userID kernel.UUID,
	kind Type,
	title, body string,
	orderID *kernel.UUID,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	var titleErr error
	if strings.TrimSpace(title) == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	var orderErr error
	if orderID != nil {
		orderErr = orderID.Validate()
	}
	if err := errors.Join(id.Validate(), userID.Validate(), kind.Validate(), titleErr, orderErr); err != nil {
		return nil, err
	}

	return &Notification{
		id:        id,
		userID:    userID,
		kind:      kind,
		title:     title,
		body:      body,
		orderID:   orderID,
		read:      read,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID       { return n.id }
func (n *Notification) UserID() kernel.UUID   { return n.userID }
func (n *Notification) Type() Type            { return n.kind }
func (n *Notification) Title() string         { return n.title }
func (n *Notification) Body() string          { return n.body }
func (n *Notification) OrderID() *kernel.UUID { return n.orderID }
func (n *Notification) IsRead() bool          { return n.read }
func (n *Notification) CreatedAt() time.Time  { return n.createdAt }

// MarkRead flags the notification as read. Only its recipient may do so; repeating it is a no-op.
func (n *Notification) MarkRead(userID kernel.UUID) error {
	if !n.userID.IsEqual(userID) {
		return errs.NewForbiddenError("mark notification read", "notification belongs to another user")
	}
	n.read = true
	return nil
}
