package jobs

import (
	"context"
	"log/slog"

	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/ports"
)

const (
	OrderExpiryJobName = "order-expiry"
	DefaultExpirySpec  = "0 */10 * * * *"
)

type ExpireOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireOrdersCommand) (commands.SweepResult, error)
}

// OrderExpiryJob cancels and refunds Pending orders whose deadline passed without a receiver.
type OrderExpiryJob struct {
	*sweeper
}

func NewOrderExpiryJob(
	handler ExpireOrdersHandler,
	spec string,
	batchSize int,
	lease ports.Lease,
	logger *slog.Logger,
) (*OrderExpiryJob, error) {
	cmd, err := commands.NewExpireOrdersCommand(batchSize)
	if err != nil {
		return nil, err
	}

	run := func(ctx context.Context) (commands.SweepResult, error) {
		return handler.Handle(ctx, cmd)
	}
	return &OrderExpiryJob{sweeper: newSweeper(OrderExpiryJobName, spec, run, lease, logger)}, nil
}

func (j *OrderExpiryJob) Start() error { return j.start() }
func (j *OrderExpiryJob) Stop()        { j.stop() }

func (j *OrderExpiryJob) RunOnce(ctx context.Context) (commands.SweepResult, error) {
	return j.runOnce(ctx)
}
