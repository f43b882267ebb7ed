// Package ports defines the persistence contracts the order core depends on.
// Adapters in internal/adapters/out implement them; handlers reach them through a UnitOfWork.
package ports

import (
	"context"
	"errors"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by a conditional update that matched no row because
// another transaction changed the order first.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// ErrDuplicateKey is returned when an insert collides with a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// OrderRepository stores order aggregates.
type OrderRepository interface {
	// Add persists a new order. A colliding order number yields ErrDuplicateKey.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate only if the stored row is still in status expected and at the
	// version the aggregate was loaded with. Otherwise it returns ErrConcurrentModification.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get loads an order or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListDeliveredBefore returns Delivered orders, not under dispute review, delivered at or before cutoff.
	ListDeliveredBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)

	// ListExpiredPending returns Pending orders whose deadline lies strictly before now.
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)
}
