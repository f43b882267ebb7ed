package services_test

import (
	"context"
	"testing"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/ledger"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Record), args.Error(1)
}

func (m *MockBalanceRecordRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*ledger.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Record), args.Error(1)
}

func newUser(t *testing.T, name, balance string) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), name, name+"'s dorm", user.RoleUser, user.Verified, kernel.MustMoney(balance))
	require.NoError(t, err)
	return u
}

func newAcceptedOrder(t *testing.T) (*order.Order, *user.User, *user.User) {
	t.Helper()
	publisher := newUser(t, "alice", "200.00")
	receiver := newUser(t, "bob", "0.00")
	o, err := order.NewOrder(kernel.NewUUID(), order.NewNumber(testNow), publisher,
		order.Details{PickupAddress: "North gate", PickupCode: "1-1"},
		kernel.MustMoney("100.00"), testNow.Add(time.Hour), testNow)
	require.NoError(t, err)
	require.NoError(t, o.Accept(receiver, testNow))
	return o, publisher, receiver
}

func disputeAndApprove(t *testing.T, o *order.Order, applicant kernel.UUID, fundTo order.Party) {
	t.Helper()
	evidence, err := order.NewEvidence("no show", "")
	require.NoError(t, err)
	_, err = o.SubmitDispute(applicant, evidence, testNow)
	require.NoError(t, err)
	require.NoError(t, o.ReviewDispute(order.DecisionApproved, "", fundTo, testNow))
}
