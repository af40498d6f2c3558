// Package money holds the decimal helpers shared by every amount
// computation in the app. All invoice math goes through decimal.Decimal;
// float64 is never used for money.
package money

import "github.com/shopspring/decimal"

var Hundred = decimal.NewFromInt(100)

// Round2 rounds to 2 decimal places, half away from zero. Amounts in this
// app are non-negative, so this is plain half-up on the cent.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampPct clamps a percentage into [0, 100].
func ClampPct(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(Hundred) {
		return Hundred
	}
	return d
}

// ClampNonNeg clamps a value to be >= 0.
func ClampNonNeg(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
