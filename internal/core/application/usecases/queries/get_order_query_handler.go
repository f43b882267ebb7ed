package queries

import (
	"context"

	"errands/internal/pkg/clock"
	"errands/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order as one viewer sees it.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db, clock.System())
//	query, _ := NewGetOrderQuery(orderID, viewerID)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	// view.PickupCode is MaskedPickupCode unless viewerID is the publisher or the receiver
type GetOrderQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewGetOrderQueryHandler creates a handler that reads orders straight from db.
func NewGetOrderQueryHandler(db *gorm.DB, clk clock.Clock) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, clock: clk}
}

// Handle returns the order detail. Anyone may read an order; only the parties see the
// pickup code.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(orderSelect+`
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&rows).Error
	if err != nil {
		return OrderView{}, err
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return projectOrder(rows[0], query.ViewerID(), h.clock.Now()), nil
}
