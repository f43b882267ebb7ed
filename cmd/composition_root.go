package cmd

import (
	"log/slog"

	httpin "errands/internal/adapters/in/http"
	"errands/internal/adapters/out/postgres"
	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/application/usecases/queries"
	"errands/internal/core/ports"
	"errands/internal/jobs"
	"errands/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.System(),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() *commands.AcceptOrderCommandHandler {
	h := commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() *commands.DeliverOrderCommandHandler {
	h := commands.NewDeliverOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() *commands.ConfirmOrderCommandHandler {
	h := commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateSubmitDisputeCommandHandler() *commands.SubmitDisputeCommandHandler {
	h := commands.NewSubmitDisputeCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateReviewDisputeCommandHandler() *commands.ReviewDisputeCommandHandler {
	h := commands.NewReviewDisputeCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateRechargeBalanceCommandHandler() *commands.RechargeBalanceCommandHandler {
	h := commands.NewRechargeBalanceCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateAutoConfirmOrdersCommandHandler() *commands.AutoConfirmOrdersCommandHandler {
	h := commands.NewAutoConfirmOrdersCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() *commands.ExpireOrdersCommandHandler {
	h := commands.NewExpireOrdersCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() *commands.MarkNotificationReadCommandHandler {
	h := commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() *commands.MarkAllNotificationsReadCommandHandler {
	h := commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetDisputeQueryHandler() queries.GetDisputeQueryHandler {
	return queries.NewGetDisputeQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPendingDisputesQueryHandler() queries.ListPendingDisputesQueryHandler {
	return queries.NewListPendingDisputesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListBalanceRecordsQueryHandler() queries.ListBalanceRecordsQueryHandler {
	return queries.NewListBalanceRecordsQueryHandler(c.gormDB)
}

// CreateHTTPHandlers collects every use case the HTTP adapter serves.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:   c.CreateCreateOrderCommandHandler(),
		AcceptOrder:   c.CreateAcceptOrderCommandHandler(),
		DeliverOrder:  c.CreateDeliverOrderCommandHandler(),
		ConfirmOrder:  c.CreateConfirmOrderCommandHandler(),
		CancelOrder:   c.CreateCancelOrderCommandHandler(),
		SubmitDispute: c.CreateSubmitDisputeCommandHandler(),
		ReviewDispute: c.CreateReviewDisputeCommandHandler(),
		Recharge:      c.CreateRechargeBalanceCommandHandler(),
		MarkRead:      c.CreateMarkNotificationReadCommandHandler(),
		MarkAllRead:   c.CreateMarkAllNotificationsReadCommandHandler(),

		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		GetDispute:          c.CreateGetDisputeQueryHandler(),
		ListPendingDisputes: c.CreateListPendingDisputesQueryHandler(),
		ListNotifications:   c.CreateListNotificationsQueryHandler(),
		ListBalanceRecords:  c.CreateListBalanceRecordsQueryHandler(),
	}
}

// CreateJobManager builds the reconciliation sweeps. lease is nil when cross-instance exclusion is off.
func (c *CompositionRoot) CreateJobManager(lease ports.Lease) (*jobs.JobManager, error) {
	autoConfirmJob, err := jobs.NewAutoConfirmJob(
		c.CreateAutoConfirmOrdersCommandHandler(),
		c.configs.AutoConfirmSchedule,
		c.configs.AutoConfirmWindow,
		c.configs.SweepBatchSize,
		lease,
		c.logger,
	)
	if err != nil {
		return nil, err
	}

	orderExpiryJob, err := jobs.NewOrderExpiryJob(
		c.CreateExpireOrdersCommandHandler(),
		c.configs.ExpirySchedule,
		c.configs.SweepBatchSize,
		lease,
		c.logger,
	)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(autoConfirmJob, orderExpiryJob), nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
