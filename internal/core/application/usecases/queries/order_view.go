package queries

import (
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaskedPickupCode replaces the pickup code for viewers who are not a party to the order.
const MaskedPickupCode = "***"

// OrderView is the read model of an order as one particular viewer sees it.
type OrderView struct {
	ID                kernel.UUID
	Number            string
	PublisherID       kernel.UUID
	PublisherName     string
	ReceiverID        *kernel.UUID
	ReceiverName      string
	ExpressCompany    string
	PickupCode        string
	Description       string
	PickupAddress     string
	DeliveryAddress   string
	Reward            kernel.Money
	Deadline          time.Time
	Status            order.Status
	StatusDescription string
	ActualReward      *kernel.Money
	DeliveredAt       *time.Time
	CompletedAt       *time.Time
	CancelReason      string
	CreatedAt         time.Time
	IsOvertime        bool
	DisputeStatus     order.DisputeStatus
}

// orderRow is one row of orderSelect.
type orderRow struct {
	ID                 uuid.UUID
	Number             string
	PublisherID        uuid.UUID
	PublisherName      string
	ReceiverID         *uuid.UUID
	ReceiverName       string
	ExpressCompany     string
	PickupCode         string
	Description        string
	PickupAddress      string
	DeliveryAddress    string
	Reward             decimal.Decimal
	Deadline           time.Time
	Status             int
	ActualReward       decimal.NullDecimal
	DeliveredAt        *time.Time
	CompletedAt        *time.Time
	CancelReason       string
	CreatedAt          time.Time
	DisputeStatus      int
	DisputeApplicant   string
	DisputeDescription string
	DisputeImageURL    string
	DisputeAppliedAt   *time.Time
	DisputeReviewedAt  *time.Time
	DisputeRemark      string
	DisputeFundTo      string
}

const orderSelect = `
	SELECT
		o.id,
		o.number,
		o.publisher_id,
		COALESCE(p.username, '') AS publisher_name,
		o.receiver_id,
		COALESCE(r.username, '') AS receiver_name,
		o.express_company,
		o.pickup_code,
		o.description,
		o.pickup_address,
		o.delivery_address,
		o.reward,
		o.deadline,
		o.status,
		o.actual_reward,
		o.delivered_at,
		o.completed_at,
		o.cancel_reason,
		o.created_at,
		o.dispute_status,
		o.dispute_applicant,
		o.dispute_description,
		o.dispute_image_url,
		o.dispute_applied_at,
		o.dispute_reviewed_at,
		o.dispute_remark,
		o.dispute_fund_to
	FROM orders o
	LEFT JOIN users p ON p.id = o.publisher_id
	LEFT JOIN users r ON r.id = o.receiver_id`

func (r orderRow) isParty(viewerID kernel.UUID) bool {
	if kernel.UUIDFrom(r.PublisherID).IsEqual(viewerID) {
		return true
	}
	return r.ReceiverID != nil && kernel.UUIDFrom(*r.ReceiverID).IsEqual(viewerID)
}

// projectOrder builds the view of row for viewerID at now. The pickup code is only shown
// to the publisher and the receiver.
func projectOrder(row orderRow, viewerID kernel.UUID, now time.Time) OrderView {
	status := order.Status(row.Status)

	view := OrderView{
		ID:                kernel.UUIDFrom(row.ID),
		Number:            row.Number,
		PublisherID:       kernel.UUIDFrom(row.PublisherID),
		PublisherName:     row.PublisherName,
		ReceiverName:      row.ReceiverName,
		ExpressCompany:    row.ExpressCompany,
		PickupCode:        MaskedPickupCode,
		Description:       row.Description,
		PickupAddress:     row.PickupAddress,
		DeliveryAddress:   row.DeliveryAddress,
		Reward:            kernel.NewMoney(row.Reward),
		Deadline:          row.Deadline.UTC(),
		Status:            status,
		StatusDescription: status.Description(),
		DeliveredAt:       utc(row.DeliveredAt),
		CompletedAt:       utc(row.CompletedAt),
		CancelReason:      row.CancelReason,
		CreatedAt:         row.CreatedAt.UTC(),
		IsOvertime:        status == order.Accepted && now.After(row.Deadline),
		DisputeStatus:     order.DisputeStatus(row.DisputeStatus),
	}
	if row.ReceiverID != nil {
		id := kernel.UUIDFrom(*row.ReceiverID)
		view.ReceiverID = &id
	}
	if row.ActualReward.Valid {
		paid := kernel.NewMoney(row.ActualReward.Decimal)
		view.ActualReward = &paid
	}
	if row.isParty(viewerID) {
		view.PickupCode = row.PickupCode
	}
	return view
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
