package ports

import (
	"context"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
)

// BalanceRecordRepository is append-only: there is no update or delete.
type BalanceRecordRepository interface {
	Add(ctx context.Context, record *ledger.Record) error

	// ListByUser returns a user's records oldest first.
	ListByUser(ctx context.Context, userID kernel.UUID) ([]*ledger.Record, error)

	// ListByOrder returns every record tied to an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Record, error)
}
