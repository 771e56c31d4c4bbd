package engine

import "github.com/shopspring/decimal"

// =============================================================================
// ROUNDING - One shared rounding convention for every calculator
// =============================================================================
// Half-unit rounding appears in several independent calculators (entitlement
// pro-ration, part-time scaling). It lives here, once, so tie-breaking is
// identical everywhere.

var (
	two    = decimal.NewFromInt(2)
	twelve = decimal.NewFromInt(12)
)

// RoundHalf rounds to the nearest multiple of 0.5, half-up on ties.
// RoundHalf(10.25) = 10.5, RoundHalf(10.24) = 10.
func RoundHalf(d decimal.Decimal) decimal.Decimal {
	return d.Mul(two).Round(0).Div(two)
}

// RoundWhole rounds to the nearest whole day, ties away from zero.
func RoundWhole(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
