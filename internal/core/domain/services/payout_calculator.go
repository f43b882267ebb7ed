package services

import (
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OvertimeFactor is the share of the reward paid when an order is confirmed after its deadline.
var OvertimeFactor = decimal.RequireFromString("0.8")

// PayoutCalculator applies the overtime penalty.
//
// A confirmation strictly after the deadline pays reward × OvertimeFactor, truncated to the
// ledger precision. A confirmation at or before the deadline pays the full reward.
type PayoutCalculator struct{}

func NewPayoutCalculator() PayoutCalculator {
	return PayoutCalculator{}
}

func (PayoutCalculator) Calculate(reward kernel.Money, deadline, now time.Time) order.Payout {
	if now.After(deadline) {
		return order.Payout{Amount: reward.MulTruncate(OvertimeFactor), Overtime: true}
	}
	return order.Payout{Amount: reward}
}

// ForOrder is a convenience over Calculate.
func (c PayoutCalculator) ForOrder(o *order.Order, now time.Time) order.Payout {
	return c.Calculate(o.Reward(), o.Deadline(), now)
}
