package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/services"
	"errands/internal/core/ports"
	"errands/internal/pkg/clock"
)

// AutoConfirmOrdersCommandHandler completes deliveries the publisher never confirmed.
//
// Each candidate runs in its own unit of work: one failing order is logged and counted while
// the rest of the batch proceeds, and the failed order stays eligible for the next run.
type AutoConfirmOrdersCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	payout     services.PayoutCalculator
	logger     *slog.Logger
}

// NewAutoConfirmOrdersCommandHandler creates the handler behind the auto-confirm job.
func NewAutoConfirmOrdersCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) AutoConfirmOrdersCommandHandler {
	return AutoConfirmOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		payout:     services.NewPayoutCalculator(),
		logger:     logger.With("component", "auto-confirm-sweep"),
	}
}

// Handle runs one sweep. The error return is reserved for a failed candidate scan.
func (h *AutoConfirmOrdersCommandHandler) Handle(ctx context.Context, cmd AutoConfirmOrdersCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	cutoff := h.clock.Now().Add(-cmd.Window())
	candidates, err := h.uowFactory.Create().OrderRepository().ListDeliveredBefore(ctx, cutoff, cmd.BatchSize())
	if err != nil {
		return SweepResult{}, fmt.Errorf("scan delivered orders: %w", err)
	}

	result := SweepResult{Total: len(candidates)}
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}
		err = h.confirmOne(ctx, candidate.ID(), cutoff)
		result.record(err)
		switch {
		case err == nil:
		case errors.Is(err, errSkipped):
			h.logger.InfoContext(ctx, "auto-confirm skipped", "order_id", candidate.ID().String(), "reason", err.Error())
		default:
			h.logger.ErrorContext(ctx, "auto-confirm failed", "order_id", candidate.ID().String(), "error", err)
		}
	}

	return result, nil
}

func (h *AutoConfirmOrdersCommandHandler) confirmOne(ctx context.Context, id kernel.UUID, cutoff time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if o.Status() != order.Delivered || o.DeliveredAt() == nil || o.DeliveredAt().After(cutoff) || o.Dispute().IsUnderReview() {
		return fmt.Errorf("%w: status %s", errSkipped, o.Status())
	}

	now := h.clock.Now()
	payout := h.payout.ForOrder(o, now)
	if err = o.AutoConfirm(payout, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, order.Delivered); err != nil {
		if errors.Is(err, ports.ErrConcurrentModification) {
			return fmt.Errorf("%w: %w", errSkipped, err)
		}
		return err
	}

	if err = payReceiver(ctx, uow, h.clock, o, payout,
		"income from order "+o.Number()+" (auto-confirmed)"+overtimeSuffix(payout)); err != nil {
		return err
	}

	orderID := o.ID()
	if err = publish(ctx, uow.NotificationRepository(), &orderID, now,
		notice{
			userID: o.PublisherID(),
			kind:   notification.OrderAutoConfirmed,
			title:  "Order auto-confirmed",
			body:   fmt.Sprintf("Order %s was confirmed automatically after the confirmation window lapsed.", o.Number()),
		},
		notice{
			userID: *o.ReceiverID(),
			kind:   notification.OrderCompleted,
			title:  "Order completed",
			body: fmt.Sprintf("Order %s was confirmed automatically. %s has been added to your balance%s.",
				o.Number(), payout.Amount, overtimeSuffix(payout)),
		},
	); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order auto-confirmed",
		"order_id", orderID.String(),
		"order_number", o.Number(),
		"paid", payout.Amount.String(),
		"overtime", payout.Overtime,
	)
	return nil
}
