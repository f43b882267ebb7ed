package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/services"
	"errands/internal/core/ports"
	"errands/internal/pkg/clock"
	"errands/internal/pkg/errs"
)

// notice is a notification waiting to be written in the current unit of work.
type notice struct {
	userID kernel.UUID
	kind   notification.Type
	title  string
	body   string
}

// publish writes notices for orderID. A failing write fails the whole transition.
func publish(ctx context.Context, repo ports.NotificationRepository, orderID *kernel.UUID, now time.Time, notices ...notice) error {
	for _, n := range notices {
		aggregate, err := notification.New(kernel.NewUUID(), n.userID, n.kind, n.title, n.body, orderID, now)
		if err != nil {
			return err
		}
		if err = repo.Add(ctx, aggregate); err != nil {
			return fmt.Errorf("write %s notification: %w", n.kind, err)
		}
	}
	return nil
}

// saveOrder performs the conditional update and turns a lost race into an InvalidStateError.
func saveOrder(ctx context.Context, repo ports.OrderRepository, o *order.Order, expected order.Status, action, raceReason string) error {
	err := repo.Update(ctx, o, expected)
	if errors.Is(err, ports.ErrConcurrentModification) {
		return errs.NewInvalidStateErrorWithReason("order", expected.String(), action, raceReason)
	}
	return err
}

func escrowLedger(uow UoW, clk clock.Clock) *services.EscrowLedger {
	return services.NewEscrowLedger(uow.UserRepository(), uow.BalanceRecordRepository(), clk)
}

func overtimeSuffix(p order.Payout) string {
	if p.Overtime {
		return " (overtime)"
	}
	return ""
}

// errSkipped marks a sweep item that no longer qualifies once reloaded under its own transaction.
var errSkipped = errors.New("no longer eligible")

// SweepResult aggregates a reconciliation run.
type SweepResult struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

func (r *SweepResult) record(err error) {
	switch {
	case err == nil:
		r.Succeeded++
	case errors.Is(err, errSkipped):
		r.Skipped++
	default:
		r.Failed++
	}
}
