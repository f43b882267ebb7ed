package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/ports"
	"errands/internal/pkg/clock"
)

// maxNumberAttempts bounds retries when a generated order number collides.
const maxNumberAttempts = 3

// CreateOrderCommandHandler publishes an order and escrows its reward in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order publication.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "create-order"),
	}
}

// Handle creates the order and returns its id. Nothing is persisted unless the escrow
// deduction succeeds too.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var lastErr error
	for range maxNumberAttempts {
		o, err := h.create(ctx, cmd)
		if err == nil {
			h.logger.InfoContext(ctx, "order created",
				"order_id", o.ID().String(),
				"order_number", o.Number(),
				"publisher_id", o.PublisherID().String(),
				"reward", o.Reward().String(),
			)
			return o.ID(), nil
		}
		if !errors.Is(err, ports.ErrDuplicateKey) {
			return kernel.UUID{}, err
		}
		lastErr = err
	}

	return kernel.UUID{}, fmt.Errorf("generate unique order number: %w", lastErr)
}

func (h *CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	publisher, err := uow.UserRepository().GetForUpdate(ctx, cmd.PublisherID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	o, err := order.NewOrder(kernel.NewUUID(), order.NewNumber(now), publisher, cmd.Details(), cmd.Reward(), cmd.Deadline(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	orderID := o.ID()
	if _, err = escrowLedger(uow, h.clock).Deduct(ctx, publisher.ID(), o.Reward(), &orderID,
		"reward escrow for order "+o.Number()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
