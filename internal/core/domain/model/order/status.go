package order

import (
	"fmt"

	"errands/internal/pkg/errs"
)

// Status is the lifecycle state of an errand order.
//
// Transitions:
//
//	Pending ──> Accepted ──> Delivered ──> Completed
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled
//
// Pending -> Cancelled is taken by the publisher or by expiry. Accepted and Delivered
// reach Cancelled only through an approved dispute. Completed and Cancelled are terminal.
//
// Values are persisted as integers, so the order of the constants must not change.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Pending
	Accepted
	Delivered
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Accepted:  "ACCEPTED",
		Delivered: "DELIVERED",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

func getStatusDescriptions() map[Status]string {
	//nolint:exhaustive // Unknown has no user-facing description
	return map[Status]string{
		Pending:   "waiting for a receiver",
		Accepted:  "accepted, in progress",
		Delivered: "delivered, awaiting confirmation",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// Validate rejects Unknown and any value outside the declared set.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Description is the human-readable label shown next to an order.
func (s Status) Description() string {
	return getStatusDescriptions()[s]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ParseStatus is the inverse of String.
func ParseStatus(str string) (Status, error) {
	for s, name := range getStatusStrings() {
		if s != Unknown && name == str {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", str))
}

// Accept moves Pending to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, s.transitionError("accept")
	}
	return Accepted, nil
}

// Deliver moves Accepted to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Accepted {
		return Unknown, s.transitionError("deliver")
	}
	return Delivered, nil
}

// Complete moves Delivered to Completed.
func (s Status) Complete() (Status, error) {
	if s != Delivered {
		return Unknown, s.transitionError("complete")
	}
	return Completed, nil
}

// Cancel moves Pending to Cancelled. It is the only cancellation a participant can trigger.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return Unknown, s.transitionError("cancel")
	}
	return Cancelled, nil
}

// ForceCancel moves any non-terminal status to Cancelled. Reserved for dispute approval.
func (s Status) ForceCancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, s.transitionError("cancel")
	}
	return Cancelled, nil
}

// CanBeDisputed reports whether a dispute may be opened in this status.
func (s Status) CanBeDisputed() bool {
	return s == Accepted || s == Delivered
}

func (s Status) transitionError(action string) error {
	return errs.NewInvalidStateError("order", s.String(), action)
}
