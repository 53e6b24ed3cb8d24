package types

import (
	"github.com/shopspring/decimal"
)

// DEFAULT_FLOATING_PRECISION is the currency precision used for all amounts
const DEFAULT_FLOATING_PRECISION = 2

var centsPerDollar = decimal.NewFromInt(100)

// DecimalFromCents converts an amount stored in cents to main currency units
// ex 4250 -> 42.50
func DecimalFromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(centsPerDollar)
}

// CentsFromDecimal converts main currency units to cents rounding to the
// nearest cent ex 42.505 -> 4251
func CentsFromDecimal(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerDollar).Round(0).IntPart()
}

// RoundToCents rounds an amount to currency precision
func RoundToCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(DEFAULT_FLOATING_PRECISION)
}

// MaxDecimal returns the greater of a and b
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThanOrEqual(b) {
		return a
	}
	return b
}
