package jobs

import (
	"context"
	"log/slog"
	"time"

	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/ports"
)

const (
	AutoConfirmJobName     = "auto-confirm"
	DefaultAutoConfirmSpec = "0 0 * * * *"
)

type AutoConfirmHandler interface {
	Handle(ctx context.Context, cmd commands.AutoConfirmOrdersCommand) (commands.SweepResult, error)
}

// AutoConfirmJob completes Delivered orders left unconfirmed for longer than the confirm window.
type AutoConfirmJob struct {
	*sweeper
}

// NewAutoConfirmJob schedules handler on spec. lease may be nil for single-instance deployments.
func NewAutoConfirmJob(
	handler AutoConfirmHandler,
	spec string,
	window time.Duration,
	batchSize int,
	lease ports.Lease,
	logger *slog.Logger,
) (*AutoConfirmJob, error) {
	cmd, err := commands.NewAutoConfirmOrdersCommand(window, batchSize)
	if err != nil {
		return nil, err
	}

	run := func(ctx context.Context) (commands.SweepResult, error) {
		return handler.Handle(ctx, cmd)
	}
	return &AutoConfirmJob{sweeper: newSweeper(AutoConfirmJobName, spec, run, lease, logger)}, nil
}

func (j *AutoConfirmJob) Start() error { return j.start() }
func (j *AutoConfirmJob) Stop()        { j.stop() }

// RunOnce sweeps immediately, outside the schedule.
func (j *AutoConfirmJob) RunOnce(ctx context.Context) (commands.SweepResult, error) {
	return j.runOnce(ctx)
}
