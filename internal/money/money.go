// Package money centralizes monetary rounding. Every amount that is stored
// or compared goes through Round2 so that repeated small operations cannot
// accumulate sub-cent drift.
package money

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Mul2 multiplies a unit amount by an integer quantity and rounds to cents.
func Mul2(unit decimal.Decimal, qty int) decimal.Decimal {
	return Round2(unit.Mul(decimal.NewFromInt(int64(qty))))
}

// Div2 divides and rounds to cents. Callers must guarantee divisor != 0.
func Div2(num, den decimal.Decimal) decimal.Decimal {
	// decimal.Div uses DivisionPrecision (16) internally; rounding after the
	// division keeps the stored value at cent granularity.
	return Round2(num.Div(den))
}
