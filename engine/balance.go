/*
balance.go - Leave balance aggregation

PURPOSE:
  A LeaveBalance holds the five stored components of an employee's leave
  account for one accounting year. The remaining balance is always derived
  from those five fields and never stored alongside them; a stored
  "remaining" column would be a second source of truth and would drift.
*/
package engine

import "github.com/shopspring/decimal"

// Balance is an employee's leave account for one accounting year, in
// work-day units (fractional in halves). All fields may be negative:
// over-draw is representable and surfaces as a negative Remaining, which
// the caller interprets, not this type.
type Balance struct {
	// Entitled is the annual entitlement after all pro-ration.
	Entitled decimal.Decimal
	// CarriedOver is set once per year by the carryover calculator.
	CarriedOver decimal.Decimal
	// Adjustment is a manual correction applied by an administrator.
	Adjustment decimal.Decimal
	// Used counts approved, consumed leave.
	Used decimal.Decimal
	// Pending counts submitted requests not yet decided.
	Pending decimal.Decimal
}

// Remaining derives the remaining balance:
// entitled + carriedOver + adjustment - used - pending.
func (b Balance) Remaining() decimal.Decimal {
	return b.Entitled.Add(b.CarriedOver).Add(b.Adjustment).Sub(b.Used).Sub(b.Pending)
}
