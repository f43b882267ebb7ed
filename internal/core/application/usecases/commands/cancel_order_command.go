package commands

import (
	"errors"
	"strings"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New("CancelOrderCommand must be created via NewCancelOrderCommand constructor")

// maxCancelReasonLength matches the cancel_reason column.
const maxCancelReasonLength = 255

// CancelOrderCommand withdraws a Pending order and refunds its reward to the publisher.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	publisherID kernel.UUID
	reason      string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID, publisherID kernel.UUID, reason string) (CancelOrderCommand, error) {
	reason = strings.TrimSpace(reason)
	var reasonErr error
	if len(reason) > maxCancelReasonLength {
		reasonErr = errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxCancelReasonLength)
	}

	if err := errors.Join(orderID.Validate(), publisherID.Validate(), reasonErr); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID:     orderID,
		publisherID: publisherID,
		reason:      reason,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c CancelOrderCommand) PublisherID() kernel.UUID { return c.publisherID }
func (c CancelOrderCommand) Reason() string           { return c.reason }
