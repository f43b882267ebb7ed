package services

import (
	"context"
	"fmt"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
	"errands/internal/core/ports"
	"errands/internal/pkg/clock"
)

// EscrowLedger changes balances and appends the audit record for every change.
//
// It is built per unit of work from that unit's repositories, so the balance write, the record
// and whatever transition triggered them commit or roll back together. Each operation locks
// the user row first, which serialises concurrent mutations of the same balance.
type EscrowLedger struct {
	users   ports.UserRepository
	records ports.BalanceRecordRepository
	clock   clock.Clock
}

func NewEscrowLedger(users ports.UserRepository, records ports.BalanceRecordRepository, clk clock.Clock) *EscrowLedger {
	return &EscrowLedger{users: users, records: records, clock: clk}
}

// Deduct escrows amount from userID's balance. It fails with an InsufficientFundsError when the
// balance does not cover amount.
func (l *EscrowLedger) Deduct(ctx context.Context, userID kernel.UUID, amount kernel.Money, orderID *kernel.UUID, remark string) (*ledger.Record, error) {
	return l.apply(ctx, userID, ledger.OrderDeduct, amount, orderID, remark)
}

// Transfer pays amount out of escrow to userID.
func (l *EscrowLedger) Transfer(ctx context.Context, userID kernel.UUID, amount kernel.Money, orderID *kernel.UUID, remark string) (*ledger.Record, error) {
	return l.apply(ctx, userID, ledger.OrderIncome, amount, orderID, remark)
}

// Refund returns escrowed amount to userID.
func (l *EscrowLedger) Refund(ctx context.Context, userID kernel.UUID, amount kernel.Money, orderID *kernel.UUID, remark string) (*ledger.Record, error) {
	return l.apply(ctx, userID, ledger.OrderRefund, amount, orderID, remark)
}

// Recharge tops up userID's balance from outside the marketplace.
func (l *EscrowLedger) Recharge(ctx context.Context, userID kernel.UUID, amount kernel.Money, remark string) (*ledger.Record, error) {
	return l.apply(ctx, userID, ledger.Recharge, amount, nil, remark)
}

// Credit dispatches on kind, for callers that computed the record type themselves.
func (l *EscrowLedger) Credit(ctx context.Context, kind ledger.RecordType, userID kernel.UUID, amount kernel.Money, orderID *kernel.UUID, remark string) (*ledger.Record, error) {
	if kind.IsDebit() {
		return nil, fmt.Errorf("credit with debit record type %s", kind)
	}
	return l.apply(ctx, userID, kind, amount, orderID, remark)
}

func (l *EscrowLedger) apply(
	ctx context.Context,
	userID kernel.UUID,
	kind ledger.RecordType,
	amount kernel.Money,
	orderID *kernel.UUID,
	remark string,
) (*ledger.Record, error) {
	u, err := l.users.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var before, after kernel.Money
	signed := amount
	if kind.IsDebit() {
		before, after, err = u.Debit(amount)
		signed = amount.Neg()
	} else {
		before, after, err = u.Credit(amount)
	}
	if err != nil {
		return nil, err
	}

	if err = l.users.UpdateBalance(ctx, u); err != nil {
		return nil, fmt.Errorf("write balance of user %s: %w", userID, err)
	}

	record, err := ledger.NewRecord(kernel.NewUUID(), userID, kind, signed, before, after, orderID, remark, l.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = l.records.Add(ctx, record); err != nil {
		return nil, fmt.Errorf("append %s record for user %s: %w", kind, userID, err)
	}

	return record, nil
}
