package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command. Everything a transition writes
// (order row, balances, ledger records, notifications) goes through the repositories it
// hands out, so a single Commit or Rollback covers all of it.
type UnitOfWork interface {
	// Begin starts a transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction. It fails when none is active.
	Rollback(ctx context.Context) error

	// Repositories are bound to the active transaction, or to the plain connection before Begin.
	OrderRepository() OrderRepository
	UserRepository() UserRepository
	BalanceRecordRepository() BalanceRecordRepository
	NotificationRepository() NotificationRepository
}
