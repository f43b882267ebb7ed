package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "errands/internal/adapters/out/postgres"
	"errands/internal/adapters/out/postgres/pgtest"
	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/model/user"
	"errands/internal/pkg/clock"
	"errands/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type gormUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f gormUoWFactory) Create() commands.UoW { return f.factory.Create() }

// ScenarioIntegrationTestSuite drives the command handlers end to end against PostgreSQL.
type ScenarioIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory gormUoWFactory
	clock   *clock.Fixed
	logger  *slog.Logger
}

func (suite *ScenarioIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = gormUoWFactory{factory: postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)}
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *ScenarioIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.clock = clock.NewFixed(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
}

func (suite *ScenarioIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ScenarioIntegrationTestSuite) addUser(name string, role user.Role, balance string) *user.User {
	u, err := user.RestoreUser(kernel.NewUUID(), name, name+"'s dorm", role, user.Verified, kernel.MustMoney(balance))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().UserRepository().Add(context.Background(), u))
	return u
}

func (suite *ScenarioIntegrationTestSuite) balanceOf(id kernel.UUID) string {
	u, err := suite.factory.Create().UserRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return u.Balance().String()
}

func (suite *ScenarioIntegrationTestSuite) loadOrder(id kernel.UUID) *order.Order {
	o, err := suite.factory.Create().OrderRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return o
}

func (suite *ScenarioIntegrationTestSuite) requireChain(u *user.User) []*ledger.Record {
	ctx := context.Background()
	records, err := suite.factory.Create().BalanceRecordRepository().ListByUser(ctx, u.ID())
	suite.Require().NoError(err)
	current, err := suite.factory.Create().UserRepository().Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(ledger.VerifyChain(records, current.Balance()))
	return records
}

func (suite *ScenarioIntegrationTestSuite) createOrder(publisher *user.User, reward string, deadline time.Time) kernel.UUID {
	cmd, err := commands.NewCreateOrderCommand(publisher.ID(),
		order.Details{ExpressCompany: "SF", PickupCode: "3-4-5501", PickupAddress: "East gate locker"},
		kernel.MustMoney(reward), deadline)
	suite.Require().NoError(err)

	h := commands.NewCreateOrderCommandHandler(suite.factory, suite.clock, suite.logger)
	id, err := h.Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return id
}

func (suite *ScenarioIntegrationTestSuite) accept(orderID kernel.UUID, receiver *user.User) error {
	cmd, err := commands.NewAcceptOrderCommand(orderID, receiver.ID())
	suite.Require().NoError(err)
	h := commands.NewAcceptOrderCommandHandler(suite.factory, suite.clock, suite.logger)
	return h.Handle(context.Background(), cmd)
}

func (suite *ScenarioIntegrationTestSuite) TestOvertimeConfirmPaysEightyPercent() {
	ctx := context.Background()
	publisher := suite.addUser("alice", user.RoleUser, "100.00")
	receiver := suite.addUser("bob", user.RoleUser, "0.00")
	deadline := suite.clock.Now().Add(20 * time.Minute)

	orderID := suite.createOrder(publisher, "100.00", deadline)
	suite.Equal("0.00", suite.balanceOf(publisher.ID()))

	suite.Require().NoError(suite.accept(orderID, receiver))

	deliver, err := commands.NewDeliverOrderCommand(orderID, receiver.ID())
	suite.Require().NoError(err)
	deliverHandler := commands.NewDeliverOrderCommandHandler(suite.factory, suite.clock, suite.logger)
	suite.Require().NoError(deliverHandler.Handle(ctx, deliver))

	suite.clock.Set(deadline.Add(time.Minute))
	confirm, err := commands.NewConfirmOrderCommand(orderID, publisher.ID())
	suite.Require().NoError(err)
	confirmHandler := commands.NewConfirmOrderCommandHandler(suite.factory, suite.clock, suite.logger)
	suite.Require().NoError(confirmHandler.Handle(ctx, confirm))

	o := suite.loadOrder(orderID)
	suite.Equal(order.Completed, o.Status())
	suite.Require().NotNil(o.ActualReward())
	suite.Equal("80.00", o.ActualReward().String())
	suite.Equal("80.00", suite.balanceOf(receiver.ID()))
	suite.Equal("0.00", suite.balanceOf(publisher.ID()))

	income := suite.requireChain(receiver)
	suite.Require().Len(income, 1)
	suite.Equal(ledger.OrderIncome, income[0].Type())
	suite.Equal("80.00", income[0].Amount().String())
	suite.requireChain(publisher)
}

func (suite *ScenarioIntegrationTestSuite) TestExpirySweepRefundsOnce() {
	ctx := context.Background()
	publisher := suite.addUser("alice", user.RoleUser, "50.00")
	orderID := suite.createOrder(publisher, "20.00", suite.clock.Now().Add(20*time.Minute))
	suite.Equal("30.00", suite.balanceOf(publisher.ID()))

	suite.clock.Advance(21 * time.Minute)
	cmd, err := commands.NewExpireOrdersCommand(commands.DefaultSweepBatchSize)
	suite.Require().NoError(err)
	h := commands.NewExpireOrdersCommandHandler(suite.factory, suite.clock, suite.logger)

	result, err := h.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Equal(1, result.Succeeded)
	suite.Equal(0, result.Failed)

	o := suite.loadOrder(orderID)
	suite.Equal(order.Cancelled, o.Status())
	suite.Equal("50.00", suite.balanceOf(publisher.ID()))

	again, err := h.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Equal(0, again.Total)
	suite.Equal("50.00", suite.balanceOf(publisher.ID()))

	records, err := suite.factory.Create().BalanceRecordRepository().ListByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(records, 2)
	suite.Equal(ledger.OrderDeduct, records[0].Type())
	suite.Equal(ledger.OrderRefund, records[1].Type())
	suite.requireChain(publisher)
}

func (suite *ScenarioIntegrationTestSuite) TestApprovedReceiverDisputePaysReceiver() {
	ctx := context.Background()
	publisher := suite.addUser("alice", user.RoleUser, "40.00")
	receiver := suite.addUser("bob", user.RoleUser, "0.00")
	admin := suite.addUser("root", user.RoleAdmin, "0.00")

	orderID := suite.createOrder(publisher, "15.00", suite.clock.Now().Add(time.Hour))
	suite.Require().NoError(suite.accept(orderID, receiver))

	submit, err := commands.NewSubmitDisputeCommand(orderID, receiver.ID(), "publisher is unreachable", "")
	suite.Require().NoError(err)
	submitHandler := commands.NewSubmitDisputeCommandHandler(suite.factory, suite.clock, suite.logger)
	suite.Require().NoError(submitHandler.Handle(ctx, submit))

	review, err := commands.NewReviewDisputeCommand(orderID, admin.ID(), "APPROVED", "parcel was delivered", "receiver")
	suite.Require().NoError(err)
	reviewHandler := commands.NewReviewDisputeCommandHandler(suite.factory, suite.clock, suite.logger)
	suite.Require().NoError(reviewHandler.Handle(ctx, review))

	o := suite.loadOrder(orderID)
	suite.Equal(order.Cancelled, o.Status())
	suite.Equal(order.DisputeApproved, o.Dispute().Status())
	suite.Equal("15.00", suite.balanceOf(receiver.ID()))
	suite.Equal("25.00", suite.balanceOf(publisher.ID()))
	suite.requireChain(receiver)
	suite.requireChain(publisher)
}

func (suite *ScenarioIntegrationTestSuite) TestConcurrentAcceptHasOneWinner() {
	publisher := suite.addUser("alice", user.RoleUser, "10.00")
	orderID := suite.createOrder(publisher, "10.00", suite.clock.Now().Add(time.Hour))

	const contenders = 6
	receivers := make([]*user.User, contenders)
	for i := range receivers {
		receivers[i] = suite.addUser("receiver"+string(rune('a'+i)), user.RoleUser, "0.00")
	}

	outcomes := make([]error, contenders)
	var g errgroup.Group
	for i, r := range receivers {
		g.Go(func() error {
			outcomes[i] = suite.accept(orderID, r)
			return nil
		})
	}
	suite.Require().NoError(g.Wait())

	var winner *user.User
	for i, err := range outcomes {
		if err == nil {
			suite.Nil(winner, "only one accept may succeed")
			winner = receivers[i]
			continue
		}
		suite.True(errors.Is(err, errs.ErrInvalidState), "unexpected error: %v", err)
	}
	suite.Require().NotNil(winner)

	o := suite.loadOrder(orderID)
	suite.Equal(order.Accepted, o.Status())
	suite.Require().NotNil(o.ReceiverID())
	suite.True(o.ReceiverID().IsEqual(winner.ID()))
}

func TestScenarioIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ScenarioIntegrationTestSuite))
}
