package queries

import (
	"context"

	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/clock"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler serves the marketplace and the per-user order lists.
type ListOrdersQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewListOrdersQueryHandler creates a handler that uses clk to hide expired Pending orders.
func NewListOrdersQueryHandler(db *gorm.DB, clk clock.Clock) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, clock: clk}
}

// Handle returns one page of orders in scope, newest first. Pending orders whose deadline
// has passed are left out of the marketplace because they can no longer be accepted.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	viewer := query.ViewerID()

	var (
		where string
		args  []any
	)
	switch query.Scope() {
	case ScopePending:
		where, args = `WHERE o.status = ? AND o.deadline >= ?`, []any{int(order.Pending), now}
	case ScopePublished:
		where, args = `WHERE o.publisher_id = ?`, []any{viewer.Bytes()}
	case ScopeAccepted:
		where, args = `WHERE o.receiver_id = ?`, []any{viewer.Bytes()}
	}
	args = append(args, query.Page().Size, query.Page().Offset())

	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(orderSelect+`
		`+where+`
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, projectOrder(row, viewer, now))
	}
	return views, nil
}
