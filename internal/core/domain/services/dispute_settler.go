package services

import (
	"fmt"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/errs"
)

// Settlement is the single balance movement that closes an approved dispute.
type Settlement struct {
	Beneficiary kernel.UUID
	Party       order.Party
	Amount      kernel.Money
	Type        ledger.RecordType
}

// DisputeSettler maps an approved dispute onto its settlement.
//
//	applicant  | fund to   | movement
//	-----------+-----------+------------------------------
//	publisher  | (ignored) | refund reward to publisher
//	receiver   | publisher | refund reward to publisher
//	receiver   | receiver  | pay full reward to receiver
type DisputeSettler struct{}

func NewDisputeSettler() DisputeSettler {
	return DisputeSettler{}
}

func (DisputeSettler) Settle(o *order.Order) (Settlement, error) {
	d := o.Dispute()
	if d.Status() != order.DisputeApproved {
		return Settlement{}, errs.NewInvalidStateError("dispute", d.Status().String(), "settle")
	}

	switch d.FundTo() {
	case order.PartyPublisher:
		return Settlement{
			Beneficiary: o.PublisherID(),
			Party:       order.PartyPublisher,
			Amount:      o.Reward(),
			Type:        ledger.OrderRefund,
		}, nil
	case order.PartyReceiver:
		receiverID, ok := o.PartyID(order.PartyReceiver)
		if !ok {
			return Settlement{}, errs.NewValueIsRequiredErrorWithCause("receiver",
				fmt.Errorf("order %s has no receiver to pay", o.Number()))
		}
		return Settlement{
			Beneficiary: receiverID,
			Party:       order.PartyReceiver,
			Amount:      o.Reward(),
			Type:        ledger.OrderIncome,
		}, nil
	default:
		return Settlement{}, errs.NewValueIsInvalidErrorWithCause("fund direction",
			fmt.Errorf("%q is neither publisher nor receiver", string(d.FundTo())))
	}
}
