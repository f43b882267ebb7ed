package user

import (
	"errors"
	"fmt"
	"strings"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// VerificationStatus mirrors the campus identity check of a profile.
type VerificationStatus int

const (
	Unverified VerificationStatus = iota
	VerificationPending
	Verified
	VerificationRejected
)

func (v VerificationStatus) Validate() error {
	if v < Unverified || v > VerificationRejected {
		return errs.NewValueIsInvalidErrorWithCause("verification status", fmt.Errorf("%d is not a valid verification status", v))
	}
	return nil
}

// Role distinguishes ordinary participants from reviewers.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Validate() error {
	if r != RoleUser && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// User is the participant aggregate.
type User struct {
	id           kernel.UUID
	username     string
	address      string
	role         Role
	verification VerificationStatus
	balance      kernel.Money
	guard        guard.ConstructorGuard
}

// NewUser registers a profile with a zero balance.
func NewUser(id kernel.UUID, username, address string, role Role, verification VerificationStatus) (*User, error) {
	return RestoreUser(id, username, address, role, verification, kernel.ZeroMoney())
}

// RestoreUser rebuilds a profile read from storage.
func RestoreUser(
	id kernel.UUID,
	username, address string,
	role Role,
	verification VerificationStatus,
	balance kernel.Money,
) (*User, error) {
	var balanceErr error
	if balance.IsNegative() {
		balanceErr = errs.NewValueIsOutOfRangeError("balance", balance.String(), "0.00", "unbounded")
	}

	username = strings.TrimSpace(username)
	var usernameErr error
	if username == "" {
		usernameErr = errs.NewValueIsRequiredError("username")
	}

	if err := errors.Join(id.Validate(), usernameErr, role.Validate(), verification.Validate(), balanceErr); err != nil {
		return nil, err
	}

	return &User{
		id:           id,
		username:     username,
		address:      address,
		role:         role,
		verification: verification,
		balance:      balance,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID                  { return u.id }
func (u *User) Username() string                 { return u.username }
func (u *User) Address() string                  { return u.address }
func (u *User) Role() Role                       { return u.role }
func (u *User) Verification() VerificationStatus { return u.verification }
func (u *User) Balance() kernel.Money            { return u.balance }

func (u *User) IsVerified() bool { return u.verification == Verified }
func (u *User) IsAdmin() bool    { return u.role == RoleAdmin }

// EnsureVerified returns a ForbiddenError naming action when the profile has not passed
// verification.
func (u *User) EnsureVerified(action string) error {
	if !u.IsVerified() {
		return errs.NewForbiddenError(action, "account is not verified")
	}
	return nil
}

// EnsureAdmin returns a ForbiddenError naming action unless the user is an admin.
func (u *User) EnsureAdmin(action string) error {
	if !u.IsAdmin() {
		return errs.NewForbiddenError(action, "admin role required")
	}
	return nil
}

// CanAfford reports whether the balance covers amount.
func (u *User) CanAfford(amount kernel.Money) bool {
	return !u.balance.LessThan(amount)
}

// Debit takes amount off the balance and returns the balance before and after.
func (u *User) Debit(amount kernel.Money) (before, after kernel.Money, err error) {
	if !amount.IsPositive() {
		return kernel.Money{}, kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not positive", amount))
	}
	if !u.CanAfford(amount) {
		return kernel.Money{}, kernel.Money{}, errs.NewInsufficientFundsError(
			u.id.String(), u.balance.String(), amount.String())
	}
	before = u.balance
	u.balance = u.balance.Sub(amount)
	return before, u.balance, nil
}

// Credit adds amount to the balance and returns the balance before and after.
func (u *User) Credit(amount kernel.Money) (before, after kernel.Money, err error) {
	if !amount.IsPositive() {
		return kernel.Money{}, kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not positive", amount))
	}
	before = u.balance
	u.balance = u.balance.Add(amount)
	return before, u.balance, nil
}
