package http

import (
	"time"

	"errands/internal/core/application/usecases/queries"
	"errands/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateOrderRequest struct {
	ExpressCompany string    `json:"expressCompany"`
	PickupCode     string    `json:"pickupCode"`
	Description    string    `json:"description"`
	PickupAddress  string    `json:"pickupAddress"`
	Reward         string    `json:"reward"`
	Deadline       time.Time `json:"deadline"`
}

type CreatedOrder struct {
	ID openapi_types.UUID `json:"id"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type SubmitDisputeRequest struct {
	Description string `json:"description"`
	Image       string `json:"image"`
}

type ReviewDisputeRequest struct {
	Decision string `json:"decision"`
	Remark   string `json:"remark"`
	FundTo   string `json:"fundTo"`
}

type RechargeRequest struct {
	Amount string `json:"amount"`
	Remark string `json:"remark"`
}

type Balance struct {
	Balance string `json:"balance"`
}

type MarkAllReadResult struct {
	Updated int64 `json:"updated"`
}

type Order struct {
	ID              openapi_types.UUID  `json:"id"`
	OrderNo         string              `json:"orderNo"`
	PublisherID     openapi_types.UUID  `json:"publisherId"`
	PublisherName   string              `json:"publisherName"`
	ReceiverID      *openapi_types.UUID `json:"receiverId"`
	ReceiverName    string              `json:"receiverName"`
	ExpressCompany  string              `json:"expressCompany"`
	PickupCode      string              `json:"pickupCode"`
	Description     string              `json:"description"`
	PickupAddress   string              `json:"pickupAddress"`
	DeliveryAddress string              `json:"deliveryAddress"`
	Reward          string              `json:"reward"`
	Deadline        time.Time           `json:"deadline"`
	Status          string              `json:"status"`
	StatusDesc      string              `json:"statusDesc"`
	ActualReward    *string             `json:"actualReward"`
	DeliverTime     *time.Time          `json:"deliverTime"`
	CompleteTime    *time.Time          `json:"completeTime"`
	CancelReason    string              `json:"cancelReason"`
	CreateTime      time.Time           `json:"createTime"`
	IsOvertime      bool                `json:"isOvertime"`
	DisputeStatus   string              `json:"disputeStatus"`
}

func toOrder(v queries.OrderView) Order {
	out := Order{
		ID:              v.ID.Bytes(),
		OrderNo:         v.Number,
		PublisherID:     v.PublisherID.Bytes(),
		PublisherName:   v.PublisherName,
		ReceiverID:      optionalID(v.ReceiverID),
		ReceiverName:    v.ReceiverName,
		ExpressCompany:  v.ExpressCompany,
		PickupCode:      v.PickupCode,
		Description:     v.Description,
		PickupAddress:   v.PickupAddress,
		DeliveryAddress: v.DeliveryAddress,
		Reward:          v.Reward.String(),
		Deadline:        v.Deadline,
		Status:          v.Status.String(),
		StatusDesc:      v.StatusDescription,
		DeliverTime:     v.DeliveredAt,
		CompleteTime:    v.CompletedAt,
		CancelReason:    v.CancelReason,
		CreateTime:      v.CreatedAt,
		IsOvertime:      v.IsOvertime,
		DisputeStatus:   v.DisputeStatus.String(),
	}
	if v.ActualReward != nil {
		paid := v.ActualReward.String()
		out.ActualReward = &paid
	}
	return out
}

type Dispute struct {
	OrderID       openapi_types.UUID `json:"orderId"`
	OrderNo       string             `json:"orderNo"`
	OrderStatus   string             `json:"orderStatus"`
	Status        string             `json:"status"`
	Applicant     string             `json:"applicant"`
	ApplicantName string             `json:"applicantName"`
	Description   string             `json:"description"`
	Image         string             `json:"image"`
	ApplyTime     *time.Time         `json:"applyTime"`
	ReviewTime    *time.Time         `json:"reviewTime"`
	Remark        string             `json:"remark"`
	FundTo        string             `json:"fundTo"`
	PublisherName string             `json:"publisherName"`
	ReceiverName  string             `json:"receiverName"`
	Reward        string             `json:"reward"`
}

func toDispute(v queries.DisputeView) Dispute {
	return Dispute{
		OrderID:       v.OrderID.Bytes(),
		OrderNo:       v.OrderNumber,
		OrderStatus:   v.OrderStatus.String(),
		Status:        v.Status.String(),
		Applicant:     string(v.Applicant),
		ApplicantName: v.ApplicantName,
		Description:   v.Description,
		Image:         v.ImageURL,
		ApplyTime:     v.AppliedAt,
		ReviewTime:    v.ReviewedAt,
		Remark:        v.Remark,
		FundTo:        string(v.FundTo),
		PublisherName: v.PublisherName,
		ReceiverName:  v.ReceiverName,
		Reward:        v.Reward.String(),
	}
}

type BalanceRecord struct {
	ID            openapi_types.UUID  `json:"id"`
	Type          string              `json:"type"`
	Amount        string              `json:"amount"`
	BalanceBefore string              `json:"balanceBefore"`
	BalanceAfter  string              `json:"balanceAfter"`
	OrderID       *openapi_types.UUID `json:"orderId"`
	Remark        string              `json:"remark"`
	CreateTime    time.Time           `json:"createTime"`
}

type BalanceHistory struct {
	Balance string          `json:"balance"`
	Records []BalanceRecord `json:"records"`
}

func toBalanceHistory(v queries.BalanceHistoryView) BalanceHistory {
	records := make([]BalanceRecord, 0, len(v.Records))
	for _, r := range v.Records {
		records = append(records, BalanceRecord{
			ID:            r.ID.Bytes(),
			Type:          r.Type.String(),
			Amount:        r.Amount.String(),
			BalanceBefore: r.BalanceBefore.String(),
			BalanceAfter:  r.BalanceAfter.String(),
			OrderID:       optionalID(r.OrderID),
			Remark:        r.Remark,
			CreateTime:    r.CreatedAt,
		})
	}
	return BalanceHistory{Balance: v.Balance.String(), Records: records}
}

type Notification struct {
	ID         openapi_types.UUID  `json:"id"`
	Type       string              `json:"type"`
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	OrderID    *openapi_types.UUID `json:"orderId"`
	IsRead     bool                `json:"isRead"`
	CreateTime time.Time           `json:"createTime"`
}

type Notifications struct {
	UnreadCount   int64          `json:"unreadCount"`
	Notifications []Notification `json:"notifications"`
}

func toNotifications(v queries.NotificationsView) Notifications {
	items := make([]Notification, 0, len(v.Notifications))
	for _, n := range v.Notifications {
		items = append(items, Notification{
			ID:         n.ID.Bytes(),
			Type:       string(n.Type),
			Title:      n.Title,
			Content:    n.Body,
			OrderID:    optionalID(n.OrderID),
			IsRead:     n.IsRead,
			CreateTime: n.CreatedAt,
		})
	}
	return Notifications{UnreadCount: v.UnreadCount, Notifications: items}
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}
