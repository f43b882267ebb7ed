package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/ports"
	"errands/internal/pkg/clock"
)

// ExpireOrdersCommandHandler cancels Pending orders nobody accepted before the deadline and
// refunds their publishers. Items are isolated the same way as in the auto-confirm sweep.
type ExpireOrdersCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

// NewExpireOrdersCommandHandler creates the handler behind the order expiry job.
func NewExpireOrdersCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) ExpireOrdersCommandHandler {
	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "expiry-sweep"),
	}
}

func (h *ExpireOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOrdersCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	candidates, err := h.uowFactory.Create().OrderRepository().ListExpiredPending(ctx, h.clock.Now(), cmd.BatchSize())
	if err != nil {
		return SweepResult{}, fmt.Errorf("scan expired orders: %w", err)
	}

	result := SweepResult{Total: len(candidates)}
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}
		err = h.expireOne(ctx, candidate.ID())
		result.record(err)
		switch {
		case err == nil:
		case errors.Is(err, errSkipped):
			h.logger.InfoContext(ctx, "expiry skipped", "order_id", candidate.ID().String(), "reason", err.Error())
		default:
			h.logger.ErrorContext(ctx, "expiry failed", "order_id", candidate.ID().String(), "error", err)
		}
	}

	return result, nil
}

func (h *ExpireOrdersCommandHandler) expireOne(ctx context.Context, id kernel.UUID) error {
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

	now := h.clock.Now()
	if o.Status() != order.Pending || !o.IsExpired(now) {
		return fmt.Errorf("%w: status %s", errSkipped, o.Status())
	}

	if err = o.Expire(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, order.Pending); err != nil {
		if errors.Is(err, ports.ErrConcurrentModification) {
			return fmt.Errorf("%w: %w", errSkipped, err)
		}
		return err
	}

	orderID := o.ID()
	if _, err = escrowLedger(uow, h.clock).Refund(ctx, o.PublisherID(), o.Reward(), &orderID,
		"refund for expired order "+o.Number()); err != nil {
		return err
	}

	if err = publish(ctx, uow.NotificationRepository(), &orderID, now, notice{
		userID: o.PublisherID(),
		kind:   notification.OrderExpired,
		title:  "Order expired",
		body:   fmt.Sprintf("Nobody accepted order %s before its deadline. %s has been refunded.", o.Number(), o.Reward()),
	}); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order expired", "order_id", orderID.String(), "order_number", o.Number())
	return nil
}
