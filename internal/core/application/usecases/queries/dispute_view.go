package queries

import (
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
)

// DisputeView is the dispute attached to an order, together with enough of the order to
// review it.
type DisputeView struct {
	OrderID       kernel.UUID
	OrderNumber   string
	OrderStatus   order.Status
	Status        order.DisputeStatus
	Applicant     order.Party
	ApplicantName string
	Description   string
	ImageURL      string
	AppliedAt     *time.Time
	ReviewedAt    *time.Time
	Remark        string
	FundTo        order.Party
	PublisherName string
	ReceiverName  string
	Reward        kernel.Money
}

func projectDispute(row orderRow) DisputeView {
	applicant := order.Party(row.DisputeApplicant)
	applicantName := row.PublisherName
	if applicant == order.PartyReceiver {
		applicantName = row.ReceiverName
	}

	return DisputeView{
		OrderID:       kernel.UUIDFrom(row.ID),
		OrderNumber:   row.Number,
		OrderStatus:   order.Status(row.Status),
		Status:        order.DisputeStatus(row.DisputeStatus),
		Applicant:     applicant,
		ApplicantName: applicantName,
		Description:   row.DisputeDescription,
		ImageURL:      row.DisputeImageURL,
		AppliedAt:     utc(row.DisputeAppliedAt),
		ReviewedAt:    utc(row.DisputeReviewedAt),
		Remark:        row.DisputeRemark,
		FundTo:        order.Party(row.DisputeFundTo),
		PublisherName: row.PublisherName,
		ReceiverName:  row.ReceiverName,
		Reward:        kernel.NewMoney(row.Reward),
	}
}
