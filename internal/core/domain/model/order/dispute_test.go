package order_test

import (
	"testing"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
	"errands/internal/core/domain/model/user"
	"errands/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvidence(t *testing.T) {
	t.Run("should require description", func(t *testing.T) {
		_, err := order.NewEvidence("   ", "https://img.example/1.jpg")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should allow missing image", func(t *testing.T) {
		e, err := order.NewEvidence(" parcel damaged ", "")

		require.NoError(t, err)
		assert.Equal(t, "parcel damaged", e.Description())
		assert.Empty(t, e.ImageURL())
	})
}

func TestParseDecision(t *testing.T) {
	d, err := order.ParseDecision("approved")
	require.NoError(t, err)
	assert.Equal(t, order.DecisionApproved, d)

	_, err = order.ParseDecision("maybe")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrder_SubmitDispute(t *testing.T) {
	t.Run("should open dispute for receiver", func(t *testing.T) {
		o, _, receiver := newAcceptedOrder(t)

		party, err := o.SubmitDispute(receiver.ID(), mustEvidence(t, "wrong pickup code"), testNow)

		require.NoError(t, err)
		assert.Equal(t, order.PartyReceiver, party)
		assert.Equal(t, order.DisputePending, o.Dispute().Status())
		assert.Equal(t, order.PartyReceiver, o.Dispute().Applicant())
		assert.Equal(t, "wrong pickup code", o.Dispute().Evidence().Description())
		require.NotNil(t, o.Dispute().AppliedAt())
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("should reject pending order", func(t *testing.T) {
		publisher := newUser(t, "alice", user.Verified, "150.00")
		o := newPendingOrder(t, publisher)

		_, err := o.SubmitDispute(publisher.ID(), mustEvidence(t, "x"), testNow)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should forbid outsiders", func(t *testing.T) {
		o, _, _ := newAcceptedOrder(t)

		_, err := o.SubmitDispute(kernel.NewUUID(), mustEvidence(t, "x"), testNow)

		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should reject second dispute while under review", func(t *testing.T) {
		o, publisher, receiver := newAcceptedOrder(t)
		_, err := o.SubmitDispute(receiver.ID(), mustEvidence(t, "first"), testNow)
		require.NoError(t, err)

		_, err = o.SubmitDispute(publisher.ID(), mustEvidence(t, "second"), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "already under review")
	})

	t.Run("should allow new dispute after rejection while non terminal", func(t *testing.T) {
		o, publisher, receiver := newDeliveredOrder(t)
		_, err := o.SubmitDispute(receiver.ID(), mustEvidence(t, "first"), testNow)
		require.NoError(t, err)
		require.NoError(t, o.ReviewDispute(order.DecisionRejected, "no proof", "", testNow))

		party, err := o.SubmitDispute(publisher.ID(), mustEvidence(t, "second"), testNow.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, order.PartyPublisher, party)
		assert.Equal(t, order.DisputePending, o.Dispute().Status())
		assert.Empty(t, o.Dispute().Remark())
	})

	t.Run("should reject new dispute after approval", func(t *testing.T) {
		o, publisher, _ := newAcceptedOrder(t)
		_, err := o.SubmitDispute(publisher.ID(), mustEvidence(t, "first"), testNow)
		require.NoError(t, err)
		require.NoError(t, o.ReviewDispute(order.DecisionApproved, "ok", "", testNow))

		_, err = o.SubmitDispute(publisher.ID(), mustEvidence(t, "again"), testNow)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_ReviewDispute(t *testing.T) {
	t.Run("should require pending dispute", func(t *testing.T) {
		o, _, _ := newAcceptedOrder(t)

		err := o.ReviewDispute(order.DecisionApproved, "", order.PartyReceiver, testNow)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown decision", func(t *testing.T) {
		o, publisher, _ := newAcceptedOrder(t)
		_, err := o.SubmitDispute(publisher.ID(), mustEvidence(t, "late"), testNow)
		require.NoError(t, err)

		err = o.ReviewDispute(order.Decision("MAYBE"), "", "", testNow)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.DisputePending, o.Dispute().Status())
	})

	t.Run("rejection leaves order status untouched", func(t *testing.T) {
		o, _, receiver := newDeliveredOrder(t)
		_, err := o.SubmitDispute(receiver.ID(), mustEvidence(t, "late"), testNow)
		require.NoError(t, err)

		require.NoError(t, o.ReviewDispute(order.DecisionRejected, "insufficient evidence", order.PartyReceiver, testNow))

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.DisputeRejected, o.Dispute().Status())
		assert.Equal(t, "insufficient evidence", o.Dispute().Remark())
		assert.Empty(t, o.Dispute().FundTo())
		assert.NotNil(t, o.Dispute().ReviewedAt())
	})

	t.Run("publisher applicant approval refunds publisher", func(t *testing.T) {
		o, publisher, receiver := newAcceptedOrder(t)
		_, err := o.SubmitDispute(publisher.ID(), mustEvidence(t, "receiver vanished"), testNow)
		require.NoError(t, err)

		require.NoError(t, o.ReviewDispute(order.DecisionApproved, "", order.PartyReceiver, testNow))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.ReasonDisputeApproved, o.CancelReason())
		assert.Equal(t, order.PartyPublisher, o.Dispute().FundTo())
		assert.Nil(t, o.ActualReward())
		require.NotNil(t, o.ReceiverID())
		assert.True(t, o.ReceiverID().IsEqual(receiver.ID()))
	})

	t.Run("receiver applicant approval requires fund direction", func(t *testing.T) {
		o, _, receiver := newAcceptedOrder(t)
		_, err := o.SubmitDispute(receiver.ID(), mustEvidence(t, "publisher unreachable"), testNow)
		require.NoError(t, err)

		err = o.ReviewDispute(order.DecisionApproved, "", "", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Equal(t, order.DisputePending, o.Dispute().Status())
	})

	t.Run("receiver applicant approval paying receiver sets actual reward", func(t *testing.T) {
		o, _, receiver := newDeliveredOrder(t)
		_, err := o.SubmitDispute(receiver.ID(), mustEvidence(t, "publisher unreachable"), testNow)
		require.NoError(t, err)

		require.NoError(t, o.ReviewDispute(order.DecisionApproved, "paid", order.PartyReceiver, testNow))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.PartyReceiver, o.Dispute().FundTo())
		require.NotNil(t, o.ActualReward())
		assert.Equal(t, "100.00", o.ActualReward().String())
	})

	t.Run("receiver applicant approval refunding publisher", func(t *testing.T) {
		o, _, receiver := newAcceptedOrder(t)
		_, err := o.SubmitDispute(receiver.ID(), mustEvidence(t, "cannot deliver"), testNow)
		require.NoError(t, err)

		require.NoError(t, o.ReviewDispute(order.DecisionApproved, "", order.PartyPublisher, testNow))

		assert.Equal(t, order.PartyPublisher, o.Dispute().FundTo())
		assert.Nil(t, o.ActualReward())
	})
}

func TestOrder_Parties(t *testing.T) {
	o, publisher, receiver := newAcceptedOrder(t)

	p, ok := o.PartyOf(publisher.ID())
	assert.True(t, ok)
	assert.Equal(t, order.PartyPublisher, p)

	p, ok = o.PartyOf(receiver.ID())
	assert.True(t, ok)
	assert.Equal(t, order.PartyReceiver, p)

	_, ok = o.PartyOf(kernel.NewUUID())
	assert.False(t, ok)

	id, ok := o.PartyID(order.PartyReceiver)
	assert.True(t, ok)
	assert.True(t, id.IsEqual(receiver.ID()))
}
