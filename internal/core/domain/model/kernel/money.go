package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount with exact decimal arithmetic.
// Order totals are sums of Money values and must be reproducible to the cent,
// which rules out float64.
type Money struct {
	amount decimal.Decimal
}

// Zero is the additive identity used to start order totals.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Cents is the scale of every stored money column.
const Cents = 2

// NewMoney wraps a decimal amount. Negative values and values finer than a
// cent are rejected: storage keeps two decimal places, and a total must equal
// the sum of its stored parts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	if !amount.Equal(amount.Truncate(Cents)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money is invalid",
			fmt.Errorf("%s has more than %d decimal places", amount.String(), Cents),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromFloat converts a float amount received from clients.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MustMoney is a test and fixture helper; it panics on input NewMoney rejects.
func MustMoney(amount string) Money {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	m, err := NewMoney(d)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Decimal exposes the underlying value for persistence and transport.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsEqual compares amounts numerically, so 10 equals 10.00.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}
