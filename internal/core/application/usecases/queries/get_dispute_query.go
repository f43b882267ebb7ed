package queries

import (
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/guard"
)

var ErrGetDisputeQueryIsNotConstructed = errors.New("GetDisputeQuery must be created via NewGetDisputeQuery constructor")

type GetDisputeQuery struct {
	orderID  kernel.UUID
	viewerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDisputeQuery(orderID, viewerID kernel.UUID) (GetDisputeQuery, error) {
	if err := errors.Join(orderID.Validate(), viewerID.Validate()); err != nil {
		return GetDisputeQuery{}, err
	}
	return GetDisputeQuery{orderID: orderID, viewerID: viewerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDisputeQuery) Validate() error {
	return q.guard.Validate(ErrGetDisputeQueryIsNotConstructed)
}

func (q GetDisputeQuery) OrderID() kernel.UUID  { return q.orderID }
func (q GetDisputeQuery) ViewerID() kernel.UUID { return q.viewerID }
