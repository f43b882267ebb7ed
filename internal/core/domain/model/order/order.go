package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/user"
	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

const (
	// MinLeadTime and MaxLeadTime bound the deadline relative to creation time. Both ends are inclusive.
	MinLeadTime = 15 * time.Minute
	MaxLeadTime = 30 * 24 * time.Hour

	NumberPrefix = "FO"

	ReasonCancelledByPublisher = "cancelled by publisher"
	ReasonExpired              = "expired, unaccepted"
	ReasonDisputeApproved      = "dispute approved"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Details is the errand itself: where to pick the parcel up, the code to collect it with,
// and where it has to go.
type Details struct {
	ExpressCompany  string
	PickupCode      string
	Description     string
	PickupAddress   string
	DeliveryAddress string
}

// Payout is the amount released to the receiver on completion.
type Payout struct {
	Amount   kernel.Money
	Overtime bool
}

// Order is the aggregate root of the errand lifecycle. Escrowed money is not held here:
// the order only records the reward, what was actually paid, and which state it is in.
// Every state change goes through a method that checks the caller and the current status.
type Order struct {
	id           kernel.UUID
	number       string
	publisherID  kernel.UUID
	receiverID   *kernel.UUID
	details      Details
	reward       kernel.Money
	deadline     time.Time
	status       Status
	actualReward *kernel.Money
	deliveredAt  *time.Time
	completedAt  *time.Time
	cancelReason string
	createdAt    time.Time
	updatedAt    time.Time
	version      int
	dispute      Dispute
	guard        guard.ConstructorGuard
}

// NewNumber builds the human-readable order number: prefix, creation time to the second
// and six random hex characters.
func NewNumber(now time.Time) string {
	return NumberPrefix + now.Format("20060102150405") + kernel.NewUUID().String()[:6]
}

// ValidateDeadline checks now+MinLeadTime <= deadline <= now+MaxLeadTime.
func ValidateDeadline(deadline, now time.Time) error {
	earliest := now.Add(MinLeadTime)
	latest := now.Add(MaxLeadTime)
	if deadline.Before(earliest) || deadline.After(latest) {
		return errs.NewValueIsOutOfRangeError(
			"deadline",
			deadline.Format(time.RFC3339),
			earliest.Format(time.RFC3339),
			latest.Format(time.RFC3339),
		)
	}
	return nil
}

// NewOrder publishes a Pending order on behalf of publisher.
//
// Checks run in this order: the publisher must be verified (Forbidden), the reward must be
// positive, the balance must cover the reward (InsufficientFunds) and the deadline must fall
// inside the allowed window. The delivery address is always taken from the publisher profile.
// Funds are not moved here; the caller escrows the reward in the same unit of work.
func NewOrder(
	id kernel.UUID,
	number string,
	publisher *user.User,
	details Details,
	reward kernel.Money,
	deadline time.Time,
	now time.Time,
) (*Order, error) {
	if err := publisher.Validate(); err != nil {
		return nil, err
	}
	if err := publisher.EnsureVerified("publish order"); err != nil {
		return nil, err
	}
	if !reward.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("reward", fmt.Errorf("%s is not positive", reward))
	}
	if !publisher.CanAfford(reward) {
		return nil, errs.NewInsufficientFundsError(publisher.ID().String(), publisher.Balance().String(), reward.String())
	}
	if err := ValidateDeadline(deadline, now); err != nil {
		return nil, err
	}

	details.DeliveryAddress = publisher.Address()
	details.PickupAddress = strings.TrimSpace(details.PickupAddress)

	var pickupErr error
	if details.PickupAddress == "" {
		pickupErr = errs.NewValueIsRequiredError("pickup address")
	}
	var numberErr error
	if !strings.HasPrefix(number, NumberPrefix) {
		numberErr = errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q lacks prefix %s", number, NumberPrefix))
	}
	if err := errors.Join(id.Validate(), numberErr, pickupErr); err != nil {
		return nil, err
	}

	return &Order{
		id:          id,
		number:      number,
		publisherID: publisher.ID(),
		details:     details,
		reward:      reward,
		deadline:    deadline,
		status:      Pending,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// State is the persisted form of an Order.
type State struct {
	ID           kernel.UUID
	Number       string
	PublisherID  kernel.UUID
	ReceiverID   *kernel.UUID
	Details      Details
	Reward       kernel.Money
	Deadline     time.Time
	Status       Status
	ActualReward *kernel.Money
	DeliveredAt  *time.Time
	CompletedAt  *time.Time
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int
	Dispute      DisputeState
}

// RestoreOrder rebuilds an order read from storage without re-running creation rules.
func RestoreOrder(s State) (*Order, error) {
	dispute, disputeErr := RestoreDispute(s.Dispute)

	var receiverErr error
	if s.ReceiverID != nil {
		receiverErr = s.ReceiverID.Validate()
	} else if s.Status == Accepted || s.Status == Delivered || s.Status == Completed {
		receiverErr = errs.NewValueIsRequiredErrorWithCause("receiver", fmt.Errorf("order in status %s has no receiver", s.Status))
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.PublisherID.Validate(),
		s.Status.Validate(),
		receiverErr,
		disputeErr,
	); err != nil {
		return nil, err
	}

	return &Order{
		id:           s.ID,
		number:       s.Number,
		publisherID:  s.PublisherID,
		receiverID:   s.ReceiverID,
		details:      s.Details,
		reward:       s.Reward,
		deadline:     s.Deadline,
		status:       s.Status,
		actualReward: s.ActualReward,
		deliveredAt:  s.DeliveredAt,
		completedAt:  s.CompletedAt,
		cancelReason: s.CancelReason,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		version:      s.Version,
		dispute:      dispute,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// State returns a snapshot for persistence.
func (o *Order) State() State {
	return State{
		ID:           o.id,
		Number:       o.number,
		PublisherID:  o.publisherID,
		ReceiverID:   o.receiverID,
		Details:      o.details,
		Reward:       o.reward,
		Deadline:     o.deadline,
		Status:       o.status,
		ActualReward: o.actualReward,
		DeliveredAt:  o.deliveredAt,
		CompletedAt:  o.completedAt,
		CancelReason: o.cancelReason,
		CreatedAt:    o.createdAt,
		UpdatedAt:    o.updatedAt,
		Version:      o.version,
		Dispute:      o.dispute.State(),
	}
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID             { return o.id }
func (o *Order) Number() string              { return o.number }
func (o *Order) PublisherID() kernel.UUID    { return o.publisherID }
func (o *Order) ReceiverID() *kernel.UUID    { return o.receiverID }
func (o *Order) Details() Details            { return o.details }
func (o *Order) Reward() kernel.Money        { return o.reward }
func (o *Order) Deadline() time.Time         { return o.deadline }
func (o *Order) Status() Status              { return o.status }
func (o *Order) ActualReward() *kernel.Money { return o.actualReward }
func (o *Order) DeliveredAt() *time.Time     { return o.deliveredAt }
func (o *Order) CompletedAt() *time.Time     { return o.completedAt }
func (o *Order) CancelReason() string        { return o.cancelReason }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) UpdatedAt() time.Time        { return o.updatedAt }
func (o *Order) Version() int                { return o.version }
func (o *Order) Dispute() Dispute            { return o.dispute }

// IsExpired reports whether the deadline lies strictly before now.
func (o *Order) IsExpired(now time.Time) bool {
	return now.After(o.deadline)
}

// IsOvertime reports an accepted order whose deadline has already passed.
func (o *Order) IsOvertime(now time.Time) bool {
	return o.status == Accepted && o.IsExpired(now)
}

// IsPublisher reports whether userID published the order.
func (o *Order) IsPublisher(userID kernel.UUID) bool {
	return o.publisherID.IsEqual(userID)
}

// IsReceiver reports whether userID is the accepted receiver.
func (o *Order) IsReceiver(userID kernel.UUID) bool {
	return o.receiverID != nil && o.receiverID.IsEqual(userID)
}

// PartyOf returns the side userID is on, if any.
func (o *Order) PartyOf(userID kernel.UUID) (Party, bool) {
	switch {
	case o.IsPublisher(userID):
		return PartyPublisher, true
	case o.IsReceiver(userID):
		return PartyReceiver, true
	default:
		return "", false
	}
}

// PartyID returns the user on side p. It returns false for the receiver of an unaccepted order.
func (o *Order) PartyID(p Party) (kernel.UUID, bool) {
	if p == PartyPublisher {
		return o.publisherID, true
	}
	if o.receiverID == nil {
		return kernel.UUID{}, false
	}
	return *o.receiverID, true
}

// Accept assigns receiver to a Pending order.
//
// Checks run in order: status must be Pending (InvalidState), the receiver must not be the
// publisher, the receiver must be verified (Forbidden), and the deadline must not have passed
// (InvalidState). Storage still has to confirm the order was Pending when the write lands.
func (o *Order) Accept(receiver *user.User, now time.Time) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}
	if err := receiver.Validate(); err != nil {
		return err
	}
	if o.IsPublisher(receiver.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("receiver", errors.New("publisher cannot accept own order"))
	}
	if err := receiver.EnsureVerified("accept order"); err != nil {
		return err
	}
	if o.IsExpired(now) {
		return errs.NewInvalidStateErrorWithReason("order", o.status.String(), "accept", "expired, cannot accept")
	}

	receiverID := receiver.ID()
	o.receiverID = &receiverID
	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Deliver records that the receiver handed the parcel over.
func (o *Order) Deliver(receiverID kernel.UUID, now time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}
	if !o.IsReceiver(receiverID) {
		return errs.NewForbiddenError("deliver order", "caller is not the receiver")
	}

	o.status = newStatus
	o.deliveredAt = &now
	o.updatedAt = now
	return nil
}

// Confirm completes a Delivered order on behalf of its publisher.
func (o *Order) Confirm(publisherID kernel.UUID, payout Payout, now time.Time) error {
	if _, err := o.status.Complete(); err != nil {
		return err
	}
	if !o.IsPublisher(publisherID) {
		return errs.NewForbiddenError("confirm order", "caller is not the publisher")
	}
	return o.complete(payout, now)
}

// AutoConfirm completes a Delivered order without a caller, once the confirmation window lapsed.
func (o *Order) AutoConfirm(payout Payout, now time.Time) error {
	if _, err := o.status.Complete(); err != nil {
		return err
	}
	return o.complete(payout, now)
}

func (o *Order) complete(payout Payout, now time.Time) error {
	if o.dispute.IsUnderReview() {
		return errs.NewInvalidStateErrorWithReason("order", o.status.String(), "complete", "dispute under review")
	}
	if payout.Amount.IsNegative() || o.reward.LessThan(payout.Amount) {
		return errs.NewValueIsOutOfRangeError("payout", payout.Amount.String(), "0.00", o.reward.String())
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	amount := payout.Amount
	o.status = newStatus
	o.actualReward = &amount
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

// Cancel withdraws a Pending order. Ownership is checked before status.
func (o *Order) Cancel(publisherID kernel.UUID, reason string, now time.Time) error {
	if !o.IsPublisher(publisherID) {
		return errs.NewForbiddenError("cancel order", "caller is not the publisher")
	}
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = ReasonCancelledByPublisher
	}
	o.status = newStatus
	o.cancelReason = reason
	o.updatedAt = now
	return nil
}

// Expire cancels a Pending order whose deadline has passed.
func (o *Order) Expire(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	if !o.IsExpired(now) {
		return errs.NewInvalidStateErrorWithReason("order", o.status.String(), "expire", "deadline not reached")
	}

	o.status = newStatus
	o.cancelReason = ReasonExpired
	o.updatedAt = now
	return nil
}

// SubmitDispute opens a dispute on behalf of one of the two participants and returns the
// side the applicant is on.
func (o *Order) SubmitDispute(userID kernel.UUID, evidence Evidence, now time.Time) (Party, error) {
	if !o.status.CanBeDisputed() {
		return "", errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("orders in status %s cannot be disputed", o.status))
	}
	applicant, ok := o.PartyOf(userID)
	if !ok {
		return "", errs.NewForbiddenError("submit dispute", "caller is not a participant of the order")
	}
	if o.dispute.IsUnderReview() {
		return "", errs.NewValueIsInvalidErrorWithCause("dispute", errors.New("already under review"))
	}
	if evidence.Description() == "" {
		return "", errs.NewValueIsRequiredError("evidence description")
	}

	applied := now
	o.dispute = Dispute{
		status:    DisputePending,
		applicant: applicant,
		evidence:  evidence,
		appliedAt: &applied,
	}
	o.updatedAt = now
	return applicant, nil
}

// ReviewDispute records the verdict on the pending dispute.
//
// Rejection only closes the dispute. Approval cancels the order whatever non-terminal state it
// is in and fixes the fund direction: a publisher-applicant always gets the reward back, while
// a receiver-applicant needs fundTo to say who is paid. When the receiver is paid, the reward
// becomes the actual reward.
func (o *Order) ReviewDispute(decision Decision, remark string, fundTo Party, now time.Time) error {
	if !o.dispute.IsUnderReview() {
		return errs.NewValueIsInvalidErrorWithCause("dispute", fmt.Errorf("dispute is %s, not under review", o.dispute.status))
	}

	reviewed := now
	switch decision {
	case DecisionRejected:
		o.dispute.status = DisputeRejected
		o.dispute.fundTo = ""
	case DecisionApproved:
		if o.dispute.applicant == PartyPublisher {
			fundTo = PartyPublisher
		} else if err := fundTo.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("fund direction", err)
		}

		newStatus, err := o.status.ForceCancel()
		if err != nil {
			return err
		}
		o.status = newStatus
		o.cancelReason = ReasonDisputeApproved
		if fundTo == PartyReceiver {
			paid := o.reward
			o.actualReward = &paid
		}
		o.dispute.status = DisputeApproved
		o.dispute.fundTo = fundTo
	default:
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is neither APPROVED nor REJECTED", string(decision)))
	}

	o.dispute.remark = strings.TrimSpace(remark)
	o.dispute.reviewedAt = &reviewed
	o.updatedAt = now
	return nil
}
