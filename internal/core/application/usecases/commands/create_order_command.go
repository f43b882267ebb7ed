package commands

import (
	"errors"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand publishes a paid errand on behalf of publisherID.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(publisherID, details, kernel.MustMoney("12.50"), time.Now().Add(2*time.Hour))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	publisherID kernel.UUID
	details     order.Details
	reward      kernel.Money
	deadline    time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the shape of the request. Business rules (verification, funds,
// deadline window) are enforced by the handler against current state.
func NewCreateOrderCommand(publisherID kernel.UUID, details order.Details, reward kernel.Money, deadline time.Time) (CreateOrderCommand, error) {
	var deadlineErr error
	if deadline.IsZero() {
		deadlineErr = errs.NewValueIsRequiredError("deadline")
	}

	if err := errors.Join(publisherID.Validate(), deadlineErr); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		publisherID: publisherID,
		details:     details,
		reward:      reward,
		deadline:    deadline,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) PublisherID() kernel.UUID { return c.publisherID }
func (c CreateOrderCommand) Details() order.Details   { return c.details }
func (c CreateOrderCommand) Reward() kernel.Money     { return c.reward }
func (c CreateOrderCommand) Deadline() time.Time      { return c.deadline }
