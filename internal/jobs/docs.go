// Package jobs schedules the reconciliation sweeps that keep orders moving when nobody acts
// on them.
//
// # Available Jobs
//
//  1. AutoConfirmJob - hourly, completes Delivered orders the publisher never confirmed and
//     pays the receiver.
//  2. OrderExpiryJob - every ten minutes, cancels Pending orders nobody accepted before their
//     deadline and refunds the publisher.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(autoConfirmJob, expiryJob)
//
//	// Catch up on anything that became due while the process was down.
//	if err := jobManager.RunAll(ctx); err != nil {
//		logger.Error("initial sweep failed", "error", err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds. Every job is wrapped in
// cron.SkipIfStillRunning so a slow sweep is never overlapped by its own next tick. When a
// ports.Lease is configured, a sweep also takes a cross-process lease and quietly skips the
// run if another instance already holds it.
//
// # Error Handling
//
// A sweep isolates its items: one broken order is logged and counted, the rest still run.
// Only a failed candidate scan fails the run as a whole.
package jobs
