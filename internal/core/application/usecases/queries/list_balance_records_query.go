package queries

import (
	"errors"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
	"errands/internal/pkg/guard"
)

var ErrListBalanceRecordsQueryIsNotConstructed = errors.New(
	"ListBalanceRecordsQuery must be created via NewListBalanceRecordsQuery constructor",
)

// ListBalanceRecordsQuery reads the caller's balance and the records that explain it.
type ListBalanceRecordsQuery struct {
	userID kernel.UUID
	page   Page

	guard guard.ConstructorGuard
}

func NewListBalanceRecordsQuery(userID kernel.UUID, page Page) (ListBalanceRecordsQuery, error) {
	if err := errors.Join(userID.Validate(), page.validate()); err != nil {
		return ListBalanceRecordsQuery{}, err
	}
	return ListBalanceRecordsQuery{userID: userID, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBalanceRecordsQuery) Validate() error {
	return q.guard.Validate(ErrListBalanceRecordsQueryIsNotConstructed)
}

func (q ListBalanceRecordsQuery) UserID() kernel.UUID { return q.userID }
func (q ListBalanceRecordsQuery) Page() Page          { return q.page }

type BalanceRecordView struct {
	ID            kernel.UUID
	Type          ledger.RecordType
	Amount        kernel.Money
	BalanceBefore kernel.Money
	BalanceAfter  kernel.Money
	OrderID       *kernel.UUID
	Remark        string
	CreatedAt     time.Time
}

type BalanceHistoryView struct {
	Balance kernel.Money
	Records []BalanceRecordView
}
