package decimal

import (
	"math"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest magnitude a Money value carries. Overflowing
// simulation values are clamped to it instead of failing presentation.
const MaxAmount = 1e15

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// FromFloat converts a simulation value to a decimal. NaN becomes zero and
// infinities or overflows are clamped to ±MaxAmount.
func FromFloat(value float64) decimal.Decimal {
	switch {
	case math.IsNaN(value):
		return decimal.Zero
	case value > MaxAmount:
		value = MaxAmount
	case value < -MaxAmount:
		value = -MaxAmount
	}
	return decimal.NewFromFloat(value)
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{FromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Cents returns the amount rounded to whole cents.
func (m Money) Cents() int64 {
	return m.Decimal.Round(2).Shift(2).IntPart()
}

// Format renders the amount in USD, e.g. "$1,234.50" or "-$12.00".
func (m Money) Format() string {
	return gomoney.New(m.Cents(), gomoney.USD).Display()
}
