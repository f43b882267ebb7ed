package commands

import (
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New("ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor")

// ConfirmOrderCommand completes a Delivered order and pays the receiver.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	publisherID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(orderID, publisherID kernel.UUID) (ConfirmOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), publisherID.Validate()); err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderID: orderID, publisherID: publisherID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c ConfirmOrderCommand) PublisherID() kernel.UUID { return c.publisherID }
