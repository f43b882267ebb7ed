package order_test

import (
	"testing"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newUser(t *testing.T, name string, verification user.VerificationStatus, balance string) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), name, name+"'s dorm", user.RoleUser, verification, kernel.MustMoney(balance))
	require.NoError(t, err)
	return u
}

func testDetails() order.Details {
	return order.Details{
		ExpressCompany: "SF Express",
		PickupCode:     "8-2-1147",
		Description:    "small parcel",
		PickupAddress:  "North gate locker",
	}
}

// newPendingOrder publishes a 100.00 order due in one hour.
func newPendingOrder(t *testing.T, publisher *user.User) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewNumber(testNow),
		publisher,
		testDetails(),
		kernel.MustMoney("100.00"),
		testNow.Add(time.Hour),
		testNow,
	)
	require.NoError(t, err)
	return o
}

func newAcceptedOrder(t *testing.T) (*order.Order, *user.User, *user.User) {
	t.Helper()
	publisher := newUser(t, "alice", user.Verified, "500.00")
	receiver := newUser(t, "bob", user.Verified, "0.00")
	o := newPendingOrder(t, publisher)
	require.NoError(t, o.Accept(receiver, testNow.Add(time.Minute)))
	return o, publisher, receiver
}

func newDeliveredOrder(t *testing.T) (*order.Order, *user.User, *user.User) {
	t.Helper()
	o, publisher, receiver := newAcceptedOrder(t)
	require.NoError(t, o.Deliver(receiver.ID(), testNow.Add(30*time.Minute)))
	return o, publisher, receiver
}

func mustEvidence(t *testing.T, description string) order.Evidence {
	t.Helper()
	e, err := order.NewEvidence(description, "https://img.example/1.jpg")
	require.NoError(t, err)
	return e
}
