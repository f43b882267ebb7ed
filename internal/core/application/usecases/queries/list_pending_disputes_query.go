package queries

import (
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/guard"
)

var ErrListPendingDisputesQueryIsNotConstructed = errors.New(
	"ListPendingDisputesQuery must be created via NewListPendingDisputesQuery constructor",
)

// ListPendingDisputesQuery is the admin review queue.
type ListPendingDisputesQuery struct {
	adminID kernel.UUID
	page    Page

	guard guard.ConstructorGuard
}

func NewListPendingDisputesQuery(adminID kernel.UUID, page Page) (ListPendingDisputesQuery, error) {
	if err := errors.Join(adminID.Validate(), page.validate()); err != nil {
		return ListPendingDisputesQuery{}, err
	}
	return ListPendingDisputesQuery{adminID: adminID, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPendingDisputesQuery) Validate() error {
	return q.guard.Validate(ErrListPendingDisputesQueryIsNotConstructed)
}

func (q ListPendingDisputesQuery) AdminID() kernel.UUID { return q.adminID }
func (q ListPendingDisputesQuery) Page() Page           { return q.page }
