package ports

import (
	"context"
	"errors"
)

// ErrLeaseNotAcquired reports that another process holds the lease.
var ErrLeaseNotAcquired = errors.New("lease is held by another process")

// Lease gives background sweeps mutual exclusion across processes.
type Lease interface {
	// WithLease runs fn while holding the lease called name. It returns ErrLeaseNotAcquired
	// without calling fn when someone else holds it.
	WithLease(ctx context.Context, name string, fn func(ctx context.Context) error) error
}
