package kernel

import (
	"fmt"

	"errands/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of fractional digits kept by balances and ledger records.
const MoneyPrecision int32 = 2

// Money is a non-floating amount of internal balance units.
//
// Every constructor truncates to MoneyPrecision, so two Money values that print the same
// are equal. Money may be negative: ledger records carry signed amounts.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney truncates d to MoneyPrecision.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Truncate(MoneyPrecision)}
}

// MoneyFromString parses a decimal literal such as "100.00". Input with non-zero digits
// beyond MoneyPrecision is rejected rather than truncated.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q: %w", s, err))
	}
	if !d.Equal(d.Truncate(MoneyPrecision)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%q has more than %d fraction digits", s, MoneyPrecision))
	}
	return NewMoney(d), nil
}

// MustMoney parses s and panics on malformed input. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// MulTruncate multiplies by factor and drops digits beyond MoneyPrecision without rounding.
func (m Money) MulTruncate(factor decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(factor))
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the amount for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly MoneyPrecision fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyPrecision)
}
