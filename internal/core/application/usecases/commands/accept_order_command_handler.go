package commands

import (
	"context"
	"fmt"
	"log/slog"

	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/clock"
)

// AcceptOrderCommandHandler resolves competing accepts with a conditional update: of two
// receivers racing for the same Pending order exactly one commits, the other gets an
// InvalidStateError.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "accept-order"),
	}
}

func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	receiver, err := uow.UserRepository().Get(ctx, cmd.ReceiverID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	if err = o.Accept(receiver, now); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, o, order.Pending, "accept", "already accepted by another"); err != nil {
		return err
	}

	orderID := o.ID()
	if err = publish(ctx, uow.NotificationRepository(), &orderID, now, notice{
		userID: o.PublisherID(),
		kind:   notification.OrderAccepted,
		title:  "Order accepted",
		body:   fmt.Sprintf("Order %s was accepted by %s.", o.Number(), receiver.Username()),
	}); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order accepted",
		"order_id", orderID.String(),
		"order_number", o.Number(),
		"receiver_id", receiver.ID().String(),
	)
	return nil
}
