package ledger

import (
	"errors"
	"fmt"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/errs"
)

var ErrBrokenChain = errors.New("balance record chain is broken")

// RecordType tags why a balance changed. Values are persisted.
type RecordType int

const (
	Recharge    RecordType = 1
	OrderDeduct RecordType = 2
	OrderIncome RecordType = 3
	OrderRefund RecordType = 4
)

func (t RecordType) String() string {
	switch t {
	case Recharge:
		return "RECHARGE"
	case OrderDeduct:
		return "ORDER_DEDUCT"
	case OrderIncome:
		return "ORDER_INCOME"
	case OrderRefund:
		return "ORDER_REFUND"
	default:
		return "UNKNOWN"
	}
}

func (t RecordType) Validate() error {
	if t < Recharge || t > OrderRefund {
		return errs.NewValueIsInvalidErrorWithCause("record type", fmt.Errorf("%d is not a valid record type", t))
	}
	return nil
}

// IsDebit reports whether records of this type carry a negative amount.
func (t RecordType) IsDebit() bool {
	return t == OrderDeduct
}

// Record is one immutable line of a user's balance history.
type Record struct {
	id        kernel.UUID
	userID    kernel.UUID
	amount    kernel.Money
	before    kernel.Money
	after     kernel.Money
	kind      RecordType
	orderID   *kernel.UUID
	remark    string
	createdAt time.Time
}

// NewRecord validates that before + amount == after and that the sign of amount matches kind.
func NewRecord(
	id, userID kernel.UUID,
	kind RecordType,
	amount, before, after kernel.Money,
	orderID *kernel.UUID,
	remark string,
	createdAt time.Time,
) (*Record, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if kind.IsDebit() != amount.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has the wrong sign for a %s record", amount, kind))
	}
	if !before.Add(amount).Equal(after) {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance after",
			fmt.Errorf("%s + %s != %s", before, amount, after))
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Record{
		id:        id,
		userID:    userID,
		amount:    amount,
		before:    before,
		after:     after,
		kind:      kind,
		orderID:   orderID,
		remark:    remark,
		createdAt: createdAt,
	}, nil
}

func (r *Record) ID() kernel.UUID             { return r.id }
func (r *Record) UserID() kernel.UUID         { return r.userID }
func (r *Record) Amount() kernel.Money        { return r.amount }
func (r *Record) BalanceBefore() kernel.Money { return r.before }
func (r *Record) BalanceAfter() kernel.Money  { return r.after }
func (r *Record) Type() RecordType            { return r.kind }
func (r *Record) OrderID() *kernel.UUID       { return r.orderID }
func (r *Record) Remark() string              { return r.remark }
func (r *Record) CreatedAt() time.Time        { return r.createdAt }

// VerifyChain checks a single user's records, oldest first: each record's balance-after must
// equal the next record's balance-before, and the last balance-after must equal current.
func VerifyChain(records []*Record, current kernel.Money) error {
	for i := 1; i < len(records); i++ {
		if !records[i-1].after.Equal(records[i].before) {
			return fmt.Errorf("%w: record %s ends at %s but record %s starts at %s",
				ErrBrokenChain, records[i-1].id, records[i-1].after, records[i].id, records[i].before)
		}
	}
	if len(records) > 0 && !records[len(records)-1].after.Equal(current) {
		return fmt.Errorf("%w: last record ends at %s but balance is %s",
			ErrBrokenChain, records[len(records)-1].after, current)
	}
	return nil
}
