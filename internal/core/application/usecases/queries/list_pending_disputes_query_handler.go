package queries

import (
	"context"

	"errands/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListPendingDisputesQueryHandler is the admin review queue. Callers without the admin role
// get a ForbiddenError.
type ListPendingDisputesQueryHandler struct {
	db *gorm.DB
}

func NewListPendingDisputesQueryHandler(db *gorm.DB) ListPendingDisputesQueryHandler {
	return ListPendingDisputesQueryHandler{db: db}
}

// Handle lists disputes awaiting review, oldest application first.
func (h ListPendingDisputesQueryHandler) Handle(ctx context.Context, query ListPendingDisputesQuery) ([]DisputeView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ensureAdmin(ctx, h.db, query.AdminID(), "list pending disputes"); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(orderSelect+`
		WHERE o.dispute_status = ?
		ORDER BY o.dispute_applied_at, o.id
		LIMIT ? OFFSET ?
	`, int(order.DisputePending), query.Page().Size, query.Page().Offset()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]DisputeView, 0, len(rows))
	for _, row := range rows {
		views = append(views, projectDispute(row))
	}
	return views, nil
}
