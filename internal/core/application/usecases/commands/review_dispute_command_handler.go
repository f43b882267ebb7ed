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

// ReviewDisputeCommandHandler applies an admin verdict. Approval cancels the order and settles
// the escrowed reward in the same transaction; rejection only closes the dispute.
type ReviewDisputeCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	settler    services.DisputeSettler
	logger     *slog.Logger
}

// NewReviewDisputeCommandHandler creates a handler for admin dispute verdicts.
func NewReviewDisputeCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) ReviewDisputeCommandHandler {
	return ReviewDisputeCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		settler:    services.NewDisputeSettler(),
		logger:     logger.With("component", "review-dispute"),
	}
}

func (h *ReviewDisputeCommandHandler) Handle(ctx context.Context, cmd ReviewDisputeCommand) error {
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

	reviewer, err := uow.UserRepository().Get(ctx, cmd.ReviewerID())
	if err != nil {
		return err
	}
	if err = reviewer.EnsureAdmin("review dispute"); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	status := o.Status()
	if err = o.ReviewDispute(cmd.Decision(), cmd.Remark(), cmd.FundTo(), now); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, o, status, "review dispute", "order changed concurrently"); err != nil {
		return err
	}

	orderID := o.ID()
	outcome := "rejected"
	if cmd.Decision() == order.DecisionApproved {
		settlement, settleErr := h.settler.Settle(o)
		if settleErr != nil {
			return settleErr
		}
		if _, err = escrowLedger(uow, h.clock).Credit(ctx, settlement.Type, settlement.Beneficiary, settlement.Amount, &orderID,
			"dispute settlement for order "+o.Number()); err != nil {
			return err
		}
		outcome = fmt.Sprintf("approved, %s was credited to the %s", settlement.Amount, settlement.Party)
	}

	body := fmt.Sprintf("The dispute on order %s was %s.", o.Number(), outcome)
	if remark := o.Dispute().Remark(); remark != "" {
		body += " Reviewer remark: " + remark
	}
	notices := []notice{{userID: o.PublisherID(), kind: notification.DisputeReviewed, title: "Dispute reviewed", body: body}}
	if receiverID := o.ReceiverID(); receiverID != nil {
		notices = append(notices, notice{userID: *receiverID, kind: notification.DisputeReviewed, title: "Dispute reviewed", body: body})
	}
	if err = publish(ctx, uow.NotificationRepository(), &orderID, now, notices...); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "dispute reviewed",
		"order_id", orderID.String(),
		"order_number", o.Number(),
		"decision", string(cmd.Decision()),
		"fund_to", string(o.Dispute().FundTo()),
		"reviewer_id", reviewer.ID().String(),
	)
	return nil
}
