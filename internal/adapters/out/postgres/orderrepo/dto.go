// Package orderrepo persists the order aggregate, including its embedded dispute sub-record,
// in the orders table.
package orderrepo

import (
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row shape of the orders table. Timestamps are written from the aggregate,
// so gorm's automatic time tracking is switched off.
type OrderDTO struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Number          string              `gorm:"size:32;uniqueIndex;not null"`
	PublisherID     uuid.UUID           `gorm:"type:uuid;index;not null"`
	ReceiverID      *uuid.UUID          `gorm:"type:uuid;index"`
	ExpressCompany  string              `gorm:"size:64"`
	PickupCode      string              `gorm:"size:64"`
	Description     string              `gorm:"size:500"`
	PickupAddress   string              `gorm:"size:255;not null"`
	DeliveryAddress string              `gorm:"size:255"`
	Reward          decimal.Decimal     `gorm:"type:decimal(20,2);not null"`
	Deadline        time.Time           `gorm:"index;not null"`
	Status          int                 `gorm:"index;not null"`
	ActualReward    decimal.NullDecimal `gorm:"type:decimal(20,2)"`
	DeliveredAt     *time.Time          `gorm:"index"`
	CompletedAt     *time.Time
	CancelReason    string     `gorm:"size:255"`
	CreatedAt       time.Time  `gorm:"autoCreateTime:false;index"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime:false"`
	Version         int        `gorm:"not null;default:0"`
	Dispute         DisputeDTO `gorm:"embedded;embeddedPrefix:dispute_"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type DisputeDTO struct {
	Status      int    `gorm:"index;not null;default:0"`
	Applicant   string `gorm:"size:16"`
	Description string `gorm:"size:1000"`
	ImageURL    string `gorm:"size:500"`
	AppliedAt   *time.Time
	ReviewedAt  *time.Time
	Remark      string `gorm:"size:500"`
	FundTo      string `gorm:"size:16"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.State()

	var receiverID *uuid.UUID
	if s.ReceiverID != nil {
		raw := s.ReceiverID.Bytes()
		receiverID = &raw
	}

	var actual decimal.NullDecimal
	if s.ActualReward != nil {
		actual = decimal.NewNullDecimal(s.ActualReward.Decimal())
	}

	return OrderDTO{
		ID:              s.ID.Bytes(),
		Number:          s.Number,
		PublisherID:     s.PublisherID.Bytes(),
		ReceiverID:      receiverID,
		ExpressCompany:  s.Details.ExpressCompany,
		PickupCode:      s.Details.PickupCode,
		Description:     s.Details.Description,
		PickupAddress:   s.Details.PickupAddress,
		DeliveryAddress: s.Details.DeliveryAddress,
		Reward:          s.Reward.Decimal(),
		Deadline:        s.Deadline,
		Status:          int(s.Status),
		ActualReward:    actual,
		DeliveredAt:     s.DeliveredAt,
		CompletedAt:     s.CompletedAt,
		CancelReason:    s.CancelReason,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Version:         s.Version,
		Dispute: DisputeDTO{
			Status:      int(s.Dispute.Status),
			Applicant:   string(s.Dispute.Applicant),
			Description: s.Dispute.Description,
			ImageURL:    s.Dispute.ImageURL,
			AppliedAt:   s.Dispute.AppliedAt,
			ReviewedAt:  s.Dispute.ReviewedAt,
			Remark:      s.Dispute.Remark,
			FundTo:      string(s.Dispute.FundTo),
		},
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	var receiverID *kernel.UUID
	if dto.ReceiverID != nil {
		id := kernel.UUIDFrom(*dto.ReceiverID)
		receiverID = &id
	}

	var actual *kernel.Money
	if dto.ActualReward.Valid {
		m := kernel.NewMoney(dto.ActualReward.Decimal)
		actual = &m
	}

	return order.RestoreOrder(order.State{
		ID:          kernel.UUIDFrom(dto.ID),
		Number:      dto.Number,
		PublisherID: kernel.UUIDFrom(dto.PublisherID),
		ReceiverID:  receiverID,
		Details: order.Details{
			ExpressCompany:  dto.ExpressCompany,
			PickupCode:      dto.PickupCode,
			Description:     dto.Description,
			PickupAddress:   dto.PickupAddress,
			DeliveryAddress: dto.DeliveryAddress,
		},
		Reward:       kernel.NewMoney(dto.Reward),
		Deadline:     dto.Deadline.UTC(),
		Status:       order.Status(dto.Status),
		ActualReward: actual,
		DeliveredAt:  utc(dto.DeliveredAt),
		CompletedAt:  utc(dto.CompletedAt),
		CancelReason: dto.CancelReason,
		CreatedAt:    dto.CreatedAt.UTC(),
		UpdatedAt:    dto.UpdatedAt.UTC(),
		Version:      dto.Version,
		Dispute: order.DisputeState{
			Status:      order.DisputeStatus(dto.Dispute.Status),
			Applicant:   order.Party(dto.Dispute.Applicant),
			Description: dto.Dispute.Description,
			ImageURL:    dto.Dispute.ImageURL,
			AppliedAt:   utc(dto.Dispute.AppliedAt),
			ReviewedAt:  utc(dto.Dispute.ReviewedAt),
			Remark:      dto.Dispute.Remark,
			FundTo:      order.Party(dto.Dispute.FundTo),
		},
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
