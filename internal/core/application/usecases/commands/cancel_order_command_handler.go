package commands

import (
	"context"
	"log/slog"

	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/clock"
)

// CancelOrderCommandHandler withdraws a Pending order on behalf of its publisher.
// The escrowed reward is refunded in full, in the same transaction as the status change.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory, clock.System(), logger)
//	cmd, _ := NewCancelOrderCommand(orderID, publisherID, "bought it myself")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("cancel failed: %w", err)
//	}
//	// The publisher has the reward back, recorded as an ORDER_REFUND ledger line
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for publisher cancellations.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "cancel-order"),
	}
}

// Handle cancels the order and refunds the full reward in the same transaction.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = o.Cancel(cmd.PublisherID(), cmd.Reason(), h.clock.Now()); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, o, order.Pending, "cancel", "order changed concurrently"); err != nil {
		return err
	}

	orderID := o.ID()
	if _, err = escrowLedger(uow, h.clock).Refund(ctx, o.PublisherID(), o.Reward(), &orderID,
		"refund for cancelled order "+o.Number()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order cancelled",
		"order_id", orderID.String(),
		"order_number", o.Number(),
		"refund", o.Reward().String(),
	)
	return nil
}
