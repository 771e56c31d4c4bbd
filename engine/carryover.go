/*
carryover.go - Year-boundary carryover of unused leave

PURPOSE:
  Computes how many unused days roll from one accounting year into the
  next, and when that rollover expires. Pure function of its inputs: the
  caller applies the result to a balance's carried-over field exactly once
  per accounting year.

EXPIRY SEMANTICS:
  The expiry date for the cycle under evaluation is expiryMonthDay placed
  in asOf's calendar year. Year-end processing passes the NEW period's
  start date as asOf, so a March 31 expiry lands three months into the new
  year. An asOf past the expiry date means the carryover window for that
  cycle has already closed: Expired is true and Amount is forced to zero.
*/
package engine

import "github.com/shopspring/decimal"

// CarryoverResult is the outcome of evaluating one carryover cycle.
type CarryoverResult struct {
	// Amount is the number of days rolling over, capped and zeroed on expiry.
	Amount decimal.Decimal
	// DaysUntilExpiry counts whole days from asOf to the expiry date, clamped at 0.
	DaysUntilExpiry int
	// Expired reports whether asOf is already past the expiry date.
	Expired bool
	// ExpiresOn is the expiry date the cycle was evaluated against.
	ExpiresOn Date
}

// Carryover evaluates the carryover cycle whose expiry falls in asOf's
// calendar year. remainingAtYearEnd is capped at maxDays; negative remainders
// carry nothing. A zero or negative maxDays disables carryover entirely.
func Carryover(remainingAtYearEnd, maxDays decimal.Decimal, expiry MonthDay, asOf Date) CarryoverResult {
	amount := decimal.Min(remainingAtYearEnd, maxDays)
	if amount.Sign() < 0 {
		amount = decimal.Zero
	}

	expiresOn := expiry.InYear(asOf.Year())
	raw := DaysBetween(asOf, expiresOn)

	result := CarryoverResult{
		Amount:          amount,
		DaysUntilExpiry: raw,
		Expired:         raw < 0,
		ExpiresOn:       expiresOn,
	}
	if result.Expired {
		result.Amount = decimal.Zero
		result.DaysUntilExpiry = 0
	}
	return result
}
