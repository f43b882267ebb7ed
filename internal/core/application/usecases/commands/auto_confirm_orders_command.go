package commands

import (
	"errors"
	"time"

	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

var ErrAutoConfirmOrdersCommandIsNotConstructed = errors.New(
	"AutoConfirmOrdersCommand must be created via NewAutoConfirmOrdersCommand constructor",
)

const (
	// DefaultConfirmWindow is how long a publisher has to confirm a delivery before the sweep does.
	DefaultConfirmWindow = 24 * time.Hour

	// DefaultSweepBatchSize caps how many candidates a single sweep run loads.
	DefaultSweepBatchSize = 500
)

// AutoConfirmOrdersCommand triggers one auto-confirm sweep.
type AutoConfirmOrdersCommand struct { //nolint:recvcheck //using for validation
	window    time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewAutoConfirmOrdersCommand(window time.Duration, batchSize int) (AutoConfirmOrdersCommand, error) {
	var windowErr, batchErr error
	if window <= 0 {
		windowErr = errs.NewValueIsOutOfRangeError("confirm window", window, time.Nanosecond, "unbounded")
	}
	if batchSize <= 0 {
		batchErr = errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	if err := errors.Join(windowErr, batchErr); err != nil {
		return AutoConfirmOrdersCommand{}, err
	}

	return AutoConfirmOrdersCommand{window: window, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c AutoConfirmOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoConfirmOrdersCommandIsNotConstructed)
}

func (c AutoConfirmOrdersCommand) Window() time.Duration { return c.window }
func (c AutoConfirmOrdersCommand) BatchSize() int        { return c.batchSize }
