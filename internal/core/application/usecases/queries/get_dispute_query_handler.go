package queries

import (
	"context"

	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDisputeQueryHandler reads the dispute attached to an order.
type GetDisputeQueryHandler struct {
	db *gorm.DB
}

func NewGetDisputeQueryHandler(db *gorm.DB) GetDisputeQueryHandler {
	return GetDisputeQueryHandler{db: db}
}

// Handle returns the dispute on an order. Only the publisher and the receiver may read it,
// and an order that was never disputed reports the dispute as not found.
func (h GetDisputeQueryHandler) Handle(ctx context.Context, query GetDisputeQuery) (DisputeView, error) {
	if err := query.Validate(); err != nil {
		return DisputeView{}, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(orderSelect+`
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&rows).Error
	if err != nil {
		return DisputeView{}, err
	}
	if len(rows) == 0 {
		return DisputeView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	row := rows[0]
	if !row.isParty(query.ViewerID()) {
		return DisputeView{}, errs.NewForbiddenError("view dispute", "not a party to the order")
	}
	if order.DisputeStatus(row.DisputeStatus) == order.DisputeNone {
		return DisputeView{}, errs.NewObjectNotFoundError("dispute", query.OrderID())
	}

	return projectDispute(row), nil
}
