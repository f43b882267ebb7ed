package commands

import (
	"context"
	"fmt"
	"log/slog"

	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/clock"
)

// SubmitDisputeCommandHandler opens a dispute on an Accepted or Delivered order.
// Either party may apply; the order keeps its status and waits for an admin review.
//
// Example:
//
//	handler := NewSubmitDisputeCommandHandler(uowFactory, clock.System(), logger)
//	cmd, _ := NewSubmitDisputeCommand(orderID, receiverID, "locker was empty", "https://img.example/1.jpg")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	// The publisher is notified and the dispute shows up in the admin queue
type SubmitDisputeCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

// NewSubmitDisputeCommandHandler creates a handler for dispute applications.
func NewSubmitDisputeCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) SubmitDisputeCommandHandler {
	return SubmitDisputeCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "submit-dispute"),
	}
}

// Handle records the dispute and notifies the other participant.
func (h *SubmitDisputeCommandHandler) Handle(ctx context.Context, cmd SubmitDisputeCommand) error {
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
	status := o.Status()
	applicant, err := o.SubmitDispute(cmd.UserID(), cmd.Evidence(), now)
	if err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, o, status, "submit dispute", "order changed concurrently"); err != nil {
		return err
	}

	other := order.PartyReceiver
	if applicant == order.PartyReceiver {
		other = order.PartyPublisher
	}
	orderID := o.ID()
	if otherID, ok := o.PartyID(other); ok {
		if err = publish(ctx, uow.NotificationRepository(), &orderID, now, notice{
			userID: otherID,
			kind:   notification.DisputeApplied,
			title:  "Dispute submitted",
			body:   fmt.Sprintf("The %s of order %s opened a dispute. It is now under review.", applicant, o.Number()),
		}); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "dispute submitted",
		"order_id", orderID.String(),
		"order_number", o.Number(),
		"applicant", string(applicant),
	)
	return nil
}
