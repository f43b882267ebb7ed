package commands

import (
	"context"
	"fmt"
	"log/slog"

	"errands/internal/core/domain/model/notification"
	"errands/internal/pkg/clock"
)

// RechargeBalanceCommandHandler credits a user's balance. Only admins may recharge.
type RechargeBalanceCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

// NewRechargeBalanceCommandHandler creates a handler for admin recharges.
func NewRechargeBalanceCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) RechargeBalanceCommandHandler {
	return RechargeBalanceCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "recharge-balance"),
	}
}

// Handle returns the balance after the recharge.
func (h *RechargeBalanceCommandHandler) Handle(ctx context.Context, cmd RechargeBalanceCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	admin, err := uow.UserRepository().Get(ctx, cmd.AdminID())
	if err != nil {
		return "", err
	}
	if err = admin.EnsureAdmin("recharge balance"); err != nil {
		return "", err
	}

	remark := cmd.Remark()
	if remark == "" {
		remark = "balance recharge"
	}
	record, err := escrowLedger(uow, h.clock).Recharge(ctx, cmd.UserID(), cmd.Amount(), remark)
	if err != nil {
		return "", err
	}

	if err = publish(ctx, uow.NotificationRepository(), nil, h.clock.Now(), notice{
		userID: cmd.UserID(),
		kind:   notification.System,
		title:  "Balance recharged",
		body:   fmt.Sprintf("%s has been added to your balance. New balance: %s.", cmd.Amount(), record.BalanceAfter()),
	}); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.logger.InfoContext(ctx, "balance recharged",
		"user_id", cmd.UserID().String(),
		"admin_id", cmd.AdminID().String(),
		"amount", cmd.Amount().String(),
	)
	return record.BalanceAfter().String(), nil
}
