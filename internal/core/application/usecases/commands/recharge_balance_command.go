package commands

import (
	"errors"
	"fmt"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

var ErrRechargeBalanceCommandIsNotConstructed = errors.New(
	"RechargeBalanceCommand must be created via NewRechargeBalanceCommand constructor",
)

// RechargeBalanceCommand credits a user's balance from outside the marketplace. Only admins may issue it.
type RechargeBalanceCommand struct { //nolint:recvcheck //using for validation
	adminID kernel.UUID
	userID  kernel.UUID
	amount  kernel.Money
	remark  string

	guard guard.ConstructorGuard
}

func NewRechargeBalanceCommand(adminID, userID kernel.UUID, amount kernel.Money, remark string) (RechargeBalanceCommand, error) {
	var amountErr error
	if !amount.IsPositive() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not positive", amount))
	}
	if err := errors.Join(adminID.Validate(), userID.Validate(), amountErr); err != nil {
		return RechargeBalanceCommand{}, err
	}

	return RechargeBalanceCommand{
		adminID: adminID,
		userID:  userID,
		amount:  amount,
		remark:  remark,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RechargeBalanceCommand) Validate() error {
	return c.guard.Validate(ErrRechargeBalanceCommandIsNotConstructed)
}

func (c RechargeBalanceCommand) AdminID() kernel.UUID { return c.adminID }
func (c RechargeBalanceCommand) UserID() kernel.UUID  { return c.userID }
func (c RechargeBalanceCommand) Amount() kernel.Money { return c.amount }
func (c RechargeBalanceCommand) Remark() string       { return c.remark }
