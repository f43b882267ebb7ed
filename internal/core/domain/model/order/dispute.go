package order

import (
	"fmt"
	"strings"
	"time"

	"errands/internal/pkg/errs"
)

// DisputeStatus tracks the review state of the dispute attached to an order.
type DisputeStatus int

const (
	DisputeNone DisputeStatus = iota
	DisputePending
	DisputeApproved
	DisputeRejected
)

func (s DisputeStatus) String() string {
	switch s {
	case DisputeNone:
		return "NONE"
	case DisputePending:
		return "PENDING"
	case DisputeApproved:
		return "APPROVED"
	case DisputeRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

func (s DisputeStatus) Validate() error {
	if s < DisputeNone || s > DisputeRejected {
		return errs.NewValueIsInvalidErrorWithCause("dispute status", fmt.Errorf("%d is not a valid dispute status", s))
	}
	return nil
}

// Party names one side of an order. It is used both for the dispute applicant and
// for the direction funds flow when a dispute is approved.
type Party string

const (
	PartyPublisher Party = "publisher"
	PartyReceiver  Party = "receiver"
)

func (p Party) Validate() error {
	if p != PartyPublisher && p != PartyReceiver {
		return errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%q is neither publisher nor receiver", string(p)))
	}
	return nil
}

// Decision is the reviewer's verdict on a pending dispute.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// ParseDecision accepts the decision in any letter case.
func ParseDecision(s string) (Decision, error) {
	d := Decision(strings.ToUpper(strings.TrimSpace(s)))
	if d != DecisionApproved && d != DecisionRejected {
		return "", errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is neither APPROVED nor REJECTED", s))
	}
	return d, nil
}

// Evidence is what a participant submits to back a dispute.
type Evidence struct {
	description string
	imageURL    string
}

// NewEvidence requires a non-blank description. The image reference is optional.
func NewEvidence(description, imageURL string) (Evidence, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Evidence{}, errs.NewValueIsRequiredError("evidence description")
	}
	return Evidence{description: description, imageURL: strings.TrimSpace(imageURL)}, nil
}

func (e Evidence) Description() string { return e.description }
func (e Evidence) ImageURL() string    { return e.imageURL }

// Dispute is the sub-record embedded in an order. A new submission overwrites the
// previous one once that has been reviewed.
type Dispute struct {
	status     DisputeStatus
	applicant  Party
	evidence   Evidence
	appliedAt  *time.Time
	reviewedAt *time.Time
	remark     string
	fundTo     Party
}

// DisputeState carries the persisted form of a Dispute.
type DisputeState struct {
	Status      DisputeStatus
	Applicant   Party
	Description string
	ImageURL    string
	AppliedAt   *time.Time
	ReviewedAt  *time.Time
	Remark      string
	FundTo      Party
}

// RestoreDispute rebuilds a dispute from storage.
func RestoreDispute(s DisputeState) (Dispute, error) {
	if err := s.Status.Validate(); err != nil {
		return Dispute{}, err
	}
	if s.Status == DisputeNone {
		return Dispute{}, nil
	}
	if err := s.Applicant.Validate(); err != nil {
		return Dispute{}, err
	}
	if s.FundTo != "" {
		if err := s.FundTo.Validate(); err != nil {
			return Dispute{}, err
		}
	}
	return Dispute{
		status:     s.Status,
		applicant:  s.Applicant,
		evidence:   Evidence{description: s.Description, imageURL: s.ImageURL},
		appliedAt:  s.AppliedAt,
		reviewedAt: s.ReviewedAt,
		remark:     s.Remark,
		fundTo:     s.FundTo,
	}, nil
}

func (d Dispute) Status() DisputeStatus  { return d.status }
func (d Dispute) Applicant() Party       { return d.applicant }
func (d Dispute) Evidence() Evidence     { return d.evidence }
func (d Dispute) AppliedAt() *time.Time  { return d.appliedAt }
func (d Dispute) ReviewedAt() *time.Time { return d.reviewedAt }
func (d Dispute) Remark() string         { return d.remark }
func (d Dispute) FundTo() Party          { return d.fundTo }
func (d Dispute) IsUnderReview() bool    { return d.status == DisputePending }

func (d Dispute) State() DisputeState {
	return DisputeState{
		Status:      d.status,
		Applicant:   d.applicant,
		Description: d.evidence.description,
		ImageURL:    d.evidence.imageURL,
		AppliedAt:   d.appliedAt,
		ReviewedAt:  d.reviewedAt,
		Remark:      d.remark,
		FundTo:      d.fundTo,
	}
}
