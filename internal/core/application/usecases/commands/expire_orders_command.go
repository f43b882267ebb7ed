package commands

import (
	"errors"

	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

var ErrExpireOrdersCommandIsNotConstructed = errors.New(
	"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
)

// ExpireOrdersCommand triggers one expiry sweep.
type ExpireOrdersCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireOrdersCommand(batchSize int) (ExpireOrdersCommand, error) {
	if batchSize <= 0 {
		return ExpireOrdersCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return ExpireOrdersCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}

func (c ExpireOrdersCommand) BatchSize() int {
	return c.batchSize
}
