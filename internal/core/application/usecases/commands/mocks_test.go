package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
	"errands/internal/core/domain/model/notification"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/model/user"
	"errands/internal/core/ports"
	"errands/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListDeliveredBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

type MockBalanceRecordRepository struct{ mock.Mock }

func (m *MockBalanceRecordRepository) Add(ctx context.Context, r *ledger.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockBalanceRecordRepository) ListByUser(ctx context.Context, userID kernel.UUID) ([]*ledger.Record, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*ledger.Record), args.Error(1)
}

func (m *MockBalanceRecordRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Record, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*ledger.Record), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) BalanceRecordRepository() ports.BalanceRecordRepository {
	return m.Called().Get(0).(ports.BalanceRecordRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	return m.Called().Get(0).(commands.NotificationUoW)
}

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// testEnv wires one mocked unit of work behind a factory and records what the handler wrote.
type testEnv struct {
	orders  *MockOrderRepository
	users   *MockUserRepository
	records *MockBalanceRecordRepository
	notes   *MockNotificationRepository
	uow     *MockUoW
	factory *MockUoWFactory
	clock   *clock.Fixed
	logger  *slog.Logger

	mu            sync.Mutex
	ledger        []*ledger.Record
	notifications []*notification.Notification
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		orders:  new(MockOrderRepository),
		users:   new(MockUserRepository),
		records: new(MockBalanceRecordRepository),
		notes:   new(MockNotificationRepository),
		uow:     new(MockUoW),
		factory: new(MockUoWFactory),
		clock:   clock.NewFixed(testNow),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	env.factory.On("Create").Return(env.uow).Maybe()
	env.uow.On("Begin", mock.Anything).Return(nil).Maybe()
	env.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	env.uow.On("OrderRepository").Return(env.orders).Maybe()
	env.uow.On("UserRepository").Return(env.users).Maybe()
	env.uow.On("BalanceRecordRepository").Return(env.records).Maybe()
	env.uow.On("NotificationRepository").Return(env.notes).Maybe()

	env.users.On("UpdateBalance", mock.Anything, mock.Anything).Return(nil).Maybe()
	env.records.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		env.mu.Lock()
		defer env.mu.Unlock()
		env.ledger = append(env.ledger, args.Get(1).(*ledger.Record))
	}).Return(nil).Maybe()
	env.notes.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		env.mu.Lock()
		defer env.mu.Unlock()
		env.notifications = append(env.notifications, args.Get(1).(*notification.Notification))
	}).Return(nil).Maybe()

	return env
}

func (e *testEnv) expectCommit() {
	e.uow.On("Commit", mock.Anything).Return(nil)
}

func (e *testEnv) givenUser(t *testing.T, name string, role user.Role, verification user.VerificationStatus, balance string) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), name, name+"'s dorm", role, verification, kernel.MustMoney(balance))
	require.NoError(t, err)
	e.users.On("Get", mock.Anything, u.ID()).Return(u, nil).Maybe()
	e.users.On("GetForUpdate", mock.Anything, u.ID()).Return(u, nil).Maybe()
	return u
}

func (e *testEnv) givenOrder(o *order.Order) {
	e.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Maybe()
}

// pendingOrder publishes a 100.00 order due in 20 minutes. The reward is treated as already
// escrowed, so the publisher's stored balance is left as the test set it.
func pendingOrder(t *testing.T, publisher *user.User) *order.Order {
	t.Helper()
	funded, err := user.RestoreUser(publisher.ID(), publisher.Username(), publisher.Address(),
		publisher.Role(), publisher.Verification(), kernel.MustMoney("1000.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.NewNumber(testNow), funded,
		order.Details{PickupAddress: "North gate locker", PickupCode: "8-2-1147", ExpressCompany: "SF"},
		kernel.MustMoney("100.00"), testNow.Add(20*time.Minute), testNow)
	require.NoError(t, err)
	return o
}

func mustEvidence(t *testing.T) order.Evidence {
	t.Helper()
	evidence, err := order.NewEvidence("parcel arrived opened", "https://img.example/1.png")
	require.NoError(t, err)
	return evidence
}

func acceptedOrder(t *testing.T, publisher, receiver *user.User) *order.Order {
	t.Helper()
	o := pendingOrder(t, publisher)
	require.NoError(t, o.Accept(receiver, testNow.Add(time.Minute)))
	return o
}

func deliveredOrder(t *testing.T, publisher, receiver *user.User, at time.Time) *order.Order {
	t.Helper()
	o := acceptedOrder(t, publisher, receiver)
	require.NoError(t, o.Deliver(receiver.ID(), at))
	return o
}

func notificationsFor(env *testEnv, userID kernel.UUID) []*notification.Notification {
	env.mu.Lock()
	defer env.mu.Unlock()
	var out []*notification.Notification
	for _, n := range env.notifications {
		if n.UserID().IsEqual(userID) {
			out = append(out, n)
		}
	}
	return out
}
