// Package lease gives cross-process mutual exclusion for the reconciliation sweeps using
// Postgres session-level advisory locks.
//
// Advisory locks belong to a session, so every attempt pins one connection from a dedicated
// database/sql pool for as long as the lock is held. The pool is separate from the GORM pool
// and never takes part in business transactions.
package lease

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"errands/internal/core/ports"

	"github.com/lib/pq"
)

// ErrNotAcquired is returned by WithLease when another session holds the lock.
var ErrNotAcquired = ports.ErrLeaseNotAcquired

var _ ports.Lease = (*Locker)(nil)

type Locker struct {
	db *sql.DB
}

// Open connects a small pool through the lib/pq driver.
func Open(ctx context.Context, dsn string) (*Locker, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse lease dsn: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(4)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping lease database: %w", err)
	}

	return &Locker{db: db}, nil
}

func (l *Locker) Close() error {
	return l.db.Close()
}

// Key maps a lease name to the 64-bit advisory lock key.
func Key(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64()) //nolint:gosec // wrap-around is fine for a lock key
}

// WithLease runs fn while holding the lease called name. If another session holds it, fn is
// not called and ErrNotAcquired is returned.
func (l *Locker) WithLease(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("pin lease connection: %w", err)
	}
	defer conn.Close()

	key := Key(name)
	var acquired bool
	if err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&acquired); err != nil {
		return fmt.Errorf("try advisory lock %q: %w", name, describe(err))
	}
	if !acquired {
		return ErrNotAcquired
	}

	defer func() {
		// Unlock even when ctx was cancelled mid-run.
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", key)
	}()

	return fn(ctx)
}

func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Message, pqErr.Code, err)
	}
	return err
}
