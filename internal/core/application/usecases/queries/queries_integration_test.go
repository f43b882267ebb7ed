package queries_test

import (
	"context"
	"testing"
	"time"

	"errands/internal/adapters/out/postgres/ledgerrepo"
	"errands/internal/adapters/out/postgres/notificationrepo"
	"errands/internal/adapters/out/postgres/orderrepo"
	"errands/internal/adapters/out/postgres/pgtest"
	"errands/internal/adapters/out/postgres/userrepo"
	"errands/internal/core/application/usecases/queries"
	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/model/user"
	"errands/internal/pkg/clock"
	"errands/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg    *pgtest.Database
	clock *clock.Fixed

	orders *orderrepo.GormOrderRepository
	users  *userrepo.GormUserRepository

	alice *user.User
	bob   *user.User
	carol *user.User
	admin *user.User
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.orders = orderrepo.NewGormOrderRepository(pg.DB)
	suite.users = userrepo.NewGormUserRepository(pg.DB)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.clock = clock.NewFixed(baseTime)

	suite.alice = suite.addUser("alice", user.RoleUser, "500.00")
	suite.bob = suite.addUser("bob", user.RoleUser, "0.00")
	suite.carol = suite.addUser("carol", user.RoleUser, "0.00")
	suite.admin = suite.addUser("root", user.RoleAdmin, "0.00")
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) addUser(name string, role user.Role, balance string) *user.User {
	u, err := user.RestoreUser(kernel.NewUUID(), name, name+"'s dorm", role, user.Verified, kernel.MustMoney(balance))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.users.Add(context.Background(), u))
	return u
}

func (suite *QueriesIntegrationTestSuite) addOrder(createdAt time.Time, deadline time.Duration) *order.Order {
	ctx := context.Background()
	o, err := order.NewOrder(kernel.NewUUID(), order.NewNumber(createdAt), suite.alice,
		order.Details{ExpressCompany: "SF Express", PickupCode: "8-2-1147", PickupAddress: "North gate locker"},
		kernel.MustMoney("20.00"), createdAt.Add(deadline), createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, o))

	stored, err := suite.orders.Get(ctx, o.ID())
	suite.Require().NoError(err)
	return stored
}

func (suite *QueriesIntegrationTestSuite) accept(o *order.Order, at time.Time) *order.Order {
	ctx := context.Background()
	suite.Require().NoError(o.Accept(suite.bob, at))
	suite.Require().NoError(suite.orders.Update(ctx, o, order.Pending))
	stored, err := suite.orders.Get(ctx, o.ID())
	suite.Require().NoError(err)
	return stored
}

func (suite *QueriesIntegrationTestSuite) disputed(o *order.Order, by kernel.UUID, at time.Time) *order.Order {
	ctx := context.Background()
	evidence, err := order.NewEvidence("parcel damaged", "https://img.example/1.jpg")
	suite.Require().NoError(err)
	_, err = o.SubmitDispute(by, evidence, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Update(ctx, o, o.Status()))
	stored, err := suite.orders.Get(ctx, o.ID())
	suite.Require().NoError(err)
	return stored
}

func (suite *QueriesIntegrationTestSuite) page() queries.Page {
	page, err := queries.NewPage(1, 50)
	suite.Require().NoError(err)
	return page
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_MasksForStrangers() {
	ctx := context.Background()
	o := suite.accept(suite.addOrder(baseTime.Add(-time.Hour), 30*time.Minute), baseTime.Add(-50*time.Minute))
	handler := queries.NewGetOrderQueryHandler(suite.pg.DB, suite.clock)

	query, err := queries.NewGetOrderQuery(o.ID(), suite.carol.ID())
	suite.Require().NoError(err)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(o.Number(), view.Number)
	suite.Equal(queries.MaskedPickupCode, view.PickupCode)
	suite.Equal("alice", view.PublisherName)
	suite.Equal("bob", view.ReceiverName)
	suite.Equal(suite.bob.ID(), *view.ReceiverID)
	suite.Equal(order.Accepted, view.Status)
	suite.Equal("accepted, in progress", view.StatusDescription)
	suite.True(view.IsOvertime)
	suite.Equal("20.00", view.Reward.String())
	suite.Equal("alice's dorm", view.DeliveryAddress)

	query, err = queries.NewGetOrderQuery(o.ID(), suite.bob.ID())
	suite.Require().NoError(err)
	view, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("8-2-1147", view.PickupCode)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), suite.alice.ID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.pg.DB, suite.clock).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_Scopes() {
	ctx := context.Background()
	older := suite.addOrder(baseTime.Add(-2*time.Hour), 3*time.Hour)
	newer := suite.addOrder(baseTime.Add(-time.Hour), 3*time.Hour)
	stale := suite.addOrder(baseTime.Add(-3*time.Hour), 30*time.Minute)
	taken := suite.accept(suite.addOrder(baseTime.Add(-90*time.Minute), 3*time.Hour), baseTime.Add(-80*time.Minute))

	handler := queries.NewListOrdersQueryHandler(suite.pg.DB, suite.clock)
	list := func(scope queries.OrderScope, viewer kernel.UUID) []queries.OrderView {
		query, err := queries.NewListOrdersQuery(scope, viewer, suite.page())
		suite.Require().NoError(err)
		views, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		return views
	}

	pending := list(queries.ScopePending, suite.carol.ID())
	suite.Require().Len(pending, 2)
	suite.Equal(newer.ID(), pending[0].ID)
	suite.Equal(older.ID(), pending[1].ID)
	suite.Equal(queries.MaskedPickupCode, pending[0].PickupCode)

	published := list(queries.ScopePublished, suite.alice.ID())
	suite.Require().Len(published, 4)
	suite.Equal(newer.ID(), published[0].ID)
	suite.Equal(taken.ID(), published[1].ID)
	suite.Equal(older.ID(), published[2].ID)
	suite.Equal(stale.ID(), published[3].ID)
	suite.Equal("8-2-1147", published[3].PickupCode)

	accepted := list(queries.ScopeAccepted, suite.bob.ID())
	suite.Require().Len(accepted, 1)
	suite.Equal(taken.ID(), accepted[0].ID)

	suite.Empty(list(queries.ScopeAccepted, suite.carol.ID()))
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_Paging() {
	ctx := context.Background()
	for i := range 5 {
		suite.addOrder(baseTime.Add(-time.Duration(i+1)*time.Minute), 3*time.Hour)
	}
	page, err := queries.NewPage(2, 2)
	suite.Require().NoError(err)
	query, err := queries.NewListOrdersQuery(queries.ScopePublished, suite.alice.ID(), page)
	suite.Require().NoError(err)

	views, err := queries.NewListOrdersQueryHandler(suite.pg.DB, suite.clock).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.True(views[0].CreatedAt.Equal(baseTime.Add(-3 * time.Minute)))
	suite.True(views[1].CreatedAt.Equal(baseTime.Add(-4 * time.Minute)))
}

func (suite *QueriesIntegrationTestSuite) TestGetDispute() {
	ctx := context.Background()
	handler := queries.NewGetDisputeQueryHandler(suite.pg.DB)
	o := suite.accept(suite.addOrder(baseTime.Add(-time.Hour), 3*time.Hour), baseTime.Add(-50*time.Minute))
	get := func(viewer kernel.UUID) (queries.DisputeView, error) {
		query, err := queries.NewGetDisputeQuery(o.ID(), viewer)
		suite.Require().NoError(err)
		return handler.Handle(ctx, query)
	}

	_, err := get(suite.alice.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	o = suite.disputed(o, suite.bob.ID(), baseTime.Add(-10*time.Minute))

	view, err := get(suite.alice.ID())
	suite.Require().NoError(err)
	suite.Equal(order.DisputePending, view.Status)
	suite.Equal(order.PartyReceiver, view.Applicant)
	suite.Equal("bob", view.ApplicantName)
	suite.Equal("parcel damaged", view.Description)
	suite.Equal("https://img.example/1.jpg", view.ImageURL)
	suite.True(view.AppliedAt.Equal(baseTime.Add(-10 * time.Minute)))
	suite.Nil(view.ReviewedAt)

	_, err = get(suite.bob.ID())
	suite.NoError(err)

	_, err = get(suite.carol.ID())
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestListPendingDisputes() {
	ctx := context.Background()
	first := suite.disputed(
		suite.accept(suite.addOrder(baseTime.Add(-time.Hour), 3*time.Hour), baseTime.Add(-55*time.Minute)),
		suite.alice.ID(), baseTime.Add(-20*time.Minute))
	second := suite.disputed(
		suite.accept(suite.addOrder(baseTime.Add(-time.Hour), 3*time.Hour), baseTime.Add(-55*time.Minute)),
		suite.bob.ID(), baseTime.Add(-10*time.Minute))
	suite.accept(suite.addOrder(baseTime.Add(-time.Hour), 3*time.Hour), baseTime.Add(-55*time.Minute))

	handler := queries.NewListPendingDisputesQueryHandler(suite.pg.DB)

	query, err := queries.NewListPendingDisputesQuery(suite.admin.ID(), suite.page())
	suite.Require().NoError(err)
	views, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(first.ID(), views[0].OrderID)
	suite.Equal("alice", views[0].ApplicantName)
	suite.Equal(second.ID(), views[1].OrderID)

	query, err = queries.NewListPendingDisputesQuery(suite.alice.ID(), suite.page())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrForbidden)

	query, err = queries.NewListPendingDisputesQuery(kernel.NewUUID(), suite.page())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListNotifications() {
	ctx := context.Background()
	repo := notificationrepo.NewGormNotificationRepository(suite.pg.DB)
	orderID := kernel.NewUUID()
	add := func(title string, at time.Time, read bool) {
		n, err := notification.New(kernel.NewUUID(), suite.alice.ID(), notification.OrderAccepted, title, "", &orderID, at)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, n))
		if read {
			suite.Require().NoError(n.MarkRead(suite.alice.ID()))
			suite.Require().NoError(repo.Update(ctx, n))
		}
	}
	add("first", baseTime.Add(-3*time.Minute), true)
	add("second", baseTime.Add(-2*time.Minute), false)
	add("third", baseTime.Add(-time.Minute), false)

	handler := queries.NewListNotificationsQueryHandler(suite.pg.DB)

	query, err := queries.NewListNotificationsQuery(suite.alice.ID(), false)
	suite.Require().NoError(err)
	all, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(2), all.UnreadCount)
	suite.Require().Len(all.Notifications, 3)
	suite.Equal("third", all.Notifications[0].Title)
	suite.Equal(orderID, *all.Notifications[0].OrderID)
	suite.True(all.Notifications[2].IsRead)

	query, err = queries.NewListNotificationsQuery(suite.alice.ID(), true)
	suite.Require().NoError(err)
	unread, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(2), unread.UnreadCount)
	suite.Len(unread.Notifications, 2)

	query, err = queries.NewListNotificationsQuery(suite.bob.ID(), false)
	suite.Require().NoError(err)
	none, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Zero(none.UnreadCount)
	suite.NotNil(none.Notifications)
	suite.Empty(none.Notifications)
}

func (suite *QueriesIntegrationTestSuite) TestListBalanceRecords() {
	ctx := context.Background()
	repo := ledgerrepo.NewGormBalanceRecordRepository(suite.pg.DB)
	orderID := kernel.NewUUID()
	add := func(kind ledger.RecordType, amount, before, after string, oid *kernel.UUID) {
		r, err := ledger.NewRecord(kernel.NewUUID(), suite.alice.ID(), kind,
			kernel.MustMoney(amount), kernel.MustMoney(before), kernel.MustMoney(after), oid, kind.String(), baseTime)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, r))
	}
	add(ledger.Recharge, "520.00", "0.00", "520.00", nil)
	add(ledger.OrderDeduct, "-20.00", "520.00", "500.00", &orderID)

	handler := queries.NewListBalanceRecordsQueryHandler(suite.pg.DB)
	query, err := queries.NewListBalanceRecordsQuery(suite.alice.ID(), suite.page())
	suite.Require().NoError(err)

	history, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("500.00", history.Balance.String())
	suite.Require().Len(history.Records, 2)
	suite.Equal(ledger.OrderDeduct, history.Records[0].Type)
	suite.Equal("-20.00", history.Records[0].Amount.String())
	suite.Equal(orderID, *history.Records[0].OrderID)
	suite.Equal(ledger.Recharge, history.Records[1].Type)
	suite.Nil(history.Records[1].OrderID)

	query, err = queries.NewListBalanceRecordsQuery(kernel.NewUUID(), suite.page())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
