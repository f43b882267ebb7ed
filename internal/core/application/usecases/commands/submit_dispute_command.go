package commands

import (
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/guard"
)

var ErrSubmitDisputeCommandIsNotConstructed = errors.New("SubmitDisputeCommand must be created via NewSubmitDisputeCommand constructor")

// SubmitDisputeCommand opens a dispute on an Accepted or Delivered order.
type SubmitDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	userID   kernel.UUID
	evidence order.Evidence

	guard guard.ConstructorGuard
}

func NewSubmitDisputeCommand(orderID, userID kernel.UUID, description, imageURL string) (SubmitDisputeCommand, error) {
	evidence, evidenceErr := order.NewEvidence(description, imageURL)
	if err := errors.Join(orderID.Validate(), userID.Validate(), evidenceErr); err != nil {
		return SubmitDisputeCommand{}, err
	}

	return SubmitDisputeCommand{
		orderID:  orderID,
		userID:   userID,
		evidence: evidence,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitDisputeCommand) Validate() error {
	return c.guard.Validate(ErrSubmitDisputeCommandIsNotConstructed)
}

func (c SubmitDisputeCommand) OrderID() kernel.UUID     { return c.orderID }
func (c SubmitDisputeCommand) UserID() kernel.UUID      { return c.userID }
func (c SubmitDisputeCommand) Evidence() order.Evidence { return c.evidence }
