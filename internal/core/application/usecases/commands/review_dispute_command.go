package commands

import (
	"errors"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/guard"
)

var ErrReviewDisputeCommandIsNotConstructed = errors.New("ReviewDisputeCommand must be created via NewReviewDisputeCommand constructor")

// ReviewDisputeCommand carries an admin's verdict. FundTo is only read when a receiver's
// dispute is approved.
type ReviewDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	reviewerID kernel.UUID
	decision   order.Decision
	remark     string
	fundTo     order.Party

	guard guard.ConstructorGuard
}

func NewReviewDisputeCommand(orderID, reviewerID kernel.UUID, decision, remark, fundTo string) (ReviewDisputeCommand, error) {
	d, decisionErr := order.ParseDecision(decision)
	if err := errors.Join(orderID.Validate(), reviewerID.Validate(), decisionErr); err != nil {
		return ReviewDisputeCommand{}, err
	}

	return ReviewDisputeCommand{
		orderID:    orderID,
		reviewerID: reviewerID,
		decision:   d,
		remark:     remark,
		fundTo:     order.Party(fundTo),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewDisputeCommand) Validate() error {
	return c.guard.Validate(ErrReviewDisputeCommandIsNotConstructed)
}

func (c ReviewDisputeCommand) OrderID() kernel.UUID     { return c.orderID }
func (c ReviewDisputeCommand) ReviewerID() kernel.UUID  { return c.reviewerID }
func (c ReviewDisputeCommand) Decision() order.Decision { return c.decision }
func (c ReviewDisputeCommand) Remark() string           { return c.remark }
func (c ReviewDisputeCommand) FundTo() order.Party      { return c.fundTo }
