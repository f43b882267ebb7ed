package commands

import (
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New("AcceptOrderCommand must be created via NewAcceptOrderCommand constructor")

// AcceptOrderCommand assigns a Pending order to the calling receiver.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	receiverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID, receiverID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), receiverID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{orderID: orderID, receiverID: receiverID, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c AcceptOrderCommand) ReceiverID() kernel.UUID { return c.receiverID }
