// Package commands contains the operations that change state: the order lifecycle, disputes,
// the reconciliation sweeps, balance recharge and notification bookkeeping.
// Every handler follows the same shape: validate the command, open a unit of work, load the
// aggregates, apply the transition, persist, record ledger lines and notifications, commit.
package commands

import (
	"context"

	"errands/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	BalanceRecordRepoFactory interface {
		BalanceRecordRepository() ports.BalanceRecordRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// UoW spans everything a lifecycle transition touches: the order, the balances it moves,
	// the ledger lines and the notifications. One commit covers all of them.
	UoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
		BalanceRecordRepoFactory
		NotificationRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// NotificationUoW is enough for read-flag bookkeeping.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
