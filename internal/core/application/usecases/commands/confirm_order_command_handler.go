package commands

import (
	"context"
	"fmt"
	"log/slog"

	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/services"
	"errands/internal/pkg/clock"
)

// ConfirmOrderCommandHandler completes a Delivered order. A confirmation after the deadline
// pays the overtime share of the reward; the remainder stays in escrow.
type ConfirmOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	payout     services.PayoutCalculator
	logger     *slog.Logger
}

// NewConfirmOrderCommandHandler creates a handler for publisher confirmations.
// The clock decides whether a confirmation is overtime.
func NewConfirmOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		payout:     services.NewPayoutCalculator(),
		logger:     logger.With("component", "confirm-order"),
	}
}

func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	payout := h.payout.ForOrder(o, now)
	if err = o.Confirm(cmd.PublisherID(), payout, now); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, o, order.Delivered, "confirm", "order changed concurrently"); err != nil {
		return err
	}

	if err = payReceiver(ctx, uow, h.clock, o, payout, "income from order "+o.Number()+overtimeSuffix(payout)); err != nil {
		return err
	}

	orderID := o.ID()
	if err = publish(ctx, uow.NotificationRepository(), &orderID, now, notice{
		userID: *o.ReceiverID(),
		kind:   notification.OrderCompleted,
		title:  "Order completed",
		body: fmt.Sprintf("Order %s is completed. %s has been added to your balance%s.",
			o.Number(), payout.Amount, overtimeSuffix(payout)),
	}); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order confirmed",
		"order_id", orderID.String(),
		"order_number", o.Number(),
		"reward", o.Reward().String(),
		"paid", payout.Amount.String(),
		"overtime", payout.Overtime,
	)
	return nil
}

// payReceiver transfers the payout of a completed order. A payout truncated to zero writes
// no ledger line.
func payReceiver(ctx context.Context, uow UoW, clk clock.Clock, o *order.Order, payout order.Payout, remark string) error {
	if !payout.Amount.IsPositive() {
		return nil
	}
	orderID := o.ID()
	_, err := escrowLedger(uow, clk).Transfer(ctx, *o.ReceiverID(), payout.Amount, &orderID, remark)
	return err
}
