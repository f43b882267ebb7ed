package jobs

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	autoConfirmJob *AutoConfirmJob
	orderExpiryJob *OrderExpiryJob
}

func NewJobManager(autoConfirmJob *AutoConfirmJob, orderExpiryJob *OrderExpiryJob) *JobManager {
	return &JobManager{
		autoConfirmJob: autoConfirmJob,
		orderExpiryJob: orderExpiryJob,
	}
}

// RunAll runs every sweep once, concurrently, and returns the first scan failure.
// A failing sweep does not cancel the other one.
func (jm *JobManager) RunAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := jm.autoConfirmJob.RunOnce(ctx)
		return err
	})
	g.Go(func() error {
		_, err := jm.orderExpiryJob.RunOnce(ctx)
		return err
	})
	return g.Wait()
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoConfirmJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-confirm job: %w", err)
	}

	if err := jm.orderExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.autoConfirmJob.Stop()
		return fmt.Errorf("failed to start order expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running sweeps to return.
func (jm *JobManager) StopAll() {
	jm.orderExpiryJob.Stop()
	jm.autoConfirmJob.Stop()
}
