package commands

import (
	"context"
	"fmt"
	"log/slog"

	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/clock"
)

// DeliverOrderCommandHandler lets the receiver report an Accepted order as handed over.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

// NewDeliverOrderCommandHandler creates a handler for delivery reports.
func NewDeliverOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "deliver-order"),
	}
}

// Handle moves the order to Delivered and asks the publisher to confirm.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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
	if err = o.Deliver(cmd.ReceiverID(), now); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, o, order.Accepted, "deliver", "order changed concurrently"); err != nil {
		return err
	}

	orderID := o.ID()
	if err = publish(ctx, uow.NotificationRepository(), &orderID, now, notice{
		userID: o.PublisherID(),
		kind:   notification.OrderDelivered,
		title:  "Order delivered",
		body:   fmt.Sprintf("Order %s has been delivered. Please confirm receipt.", o.Number()),
	}); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order delivered", "order_id", orderID.String(), "order_number", o.Number())
	return nil
}
