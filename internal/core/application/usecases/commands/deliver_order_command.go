package commands

import (
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New("DeliverOrderCommand must be created via NewDeliverOrderCommand constructor")

// DeliverOrderCommand marks an Accepted order as handed over by its receiver.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	receiverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(orderID, receiverID kernel.UUID) (DeliverOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), receiverID.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{orderID: orderID, receiverID: receiverID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c DeliverOrderCommand) ReceiverID() kernel.UUID { return c.receiverID }
