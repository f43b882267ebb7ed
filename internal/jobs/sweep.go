package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// sweeper is the scheduling shell shared by the reconciliation jobs: a cron with
// skip-if-still-running, an optional lease and uniform result logging.
type sweeper struct {
	name   string
	spec   string
	run    func(ctx context.Context) (commands.SweepResult, error)
	lease  ports.Lease
	cron   *cron.Cron
	logger *slog.Logger
}

func newSweeper(
	name, spec string,
	run func(ctx context.Context) (commands.SweepResult, error),
	lease ports.Lease,
	logger *slog.Logger,
) *sweeper {
	logger = logger.With("component", name)
	cl := cronLogger{logger: logger}

	return &sweeper{
		name:  name,
		spec:  spec,
		run:   run,
		lease: lease,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

func (s *sweeper) start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		_, _ = s.runOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule %s %q: %w", s.name, s.spec, err)
	}

	s.cron.Start()
	s.logger.InfoContext(context.Background(), "job started", "schedule", s.spec)
	return nil
}

// stop halts the schedule and waits for a running sweep to finish.
func (s *sweeper) stop() {
	<-s.cron.Stop().Done()
	s.logger.InfoContext(context.Background(), "job stopped")
}

func (s *sweeper) runOnce(ctx context.Context) (commands.SweepResult, error) {
	started := time.Now()

	var result commands.SweepResult
	sweep := func(ctx context.Context) error {
		var err error
		result, err = s.run(ctx)
		return err
	}

	var err error
	if s.lease != nil {
		err = s.lease.WithLease(ctx, s.name, sweep)
	} else {
		err = sweep(ctx)
	}

	switch {
	case errors.Is(err, ports.ErrLeaseNotAcquired):
		s.logger.InfoContext(ctx, "sweep skipped, another instance holds the lease")
		return commands.SweepResult{}, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "sweep failed", "error", err, "duration", time.Since(started))
		return commands.SweepResult{}, err
	}

	level := slog.LevelInfo
	if result.Failed > 0 {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "sweep finished",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"duration", time.Since(started),
	)
	return result, nil
}
