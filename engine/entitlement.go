/*
entitlement.go - Annual entitlement pro-ration

PURPOSE:
  Computes an employee's annual leave entitlement, adjusted for a mid-year
  employment start and for part-time weekly hours. Runs at period
  boundaries: year-end processing and new-hire onboarding.

COMPOSITION ORDER:
  Start-date pro-ration and part-time scaling do not commute under
  half-unit rounding. AnnualEntitlement fixes the order once: start-date
  pro-ration FIRST, then part-time scaling. Callers that need both must go
  through AnnualEntitlement rather than composing the two steps themselves.
*/
package engine

import "github.com/shopspring/decimal"

// ProRataEntitlement scales annualDays for an employment start inside the
// given accounting year. The start month counts as a full month worked.
// Starts before the year yield the full entitlement; starts after it yield
// zero. The result is rounded to the nearest half day.
func ProRataEntitlement(employmentStart Date, annualDays decimal.Decimal, year int) decimal.Decimal {
	if employmentStart.Before(StartOfYear(year)) {
		return annualDays
	}
	if employmentStart.After(EndOfYear(year)) {
		return decimal.Zero
	}
	monthsRemaining := decimal.NewFromInt(int64(13 - int(employmentStart.Month())))
	return RoundHalf(annualDays.Div(twelve).Mul(monthsRemaining))
}

// PartTimeProRata scales a full-time entitlement by the ratio of actual to
// full-time weekly hours, rounded to the nearest half day. A non-positive
// fullTimeHours yields zero rather than an error; policies are caller input
// and the engine stays total over degenerate numbers.
func PartTimeProRata(weeklyHours, fullTimeDays, fullTimeHours decimal.Decimal) decimal.Decimal {
	if fullTimeHours.Sign() <= 0 {
		return decimal.Zero
	}
	return RoundHalf(fullTimeDays.Mul(weeklyHours).Div(fullTimeHours))
}

// AnnualEntitlement computes the entitlement to seed a balance with:
// start-date pro-ration first, then part-time scaling. weeklyHours equal to
// (or above) fullTimeHours leaves the pro-rated amount unscaled.
func AnnualEntitlement(employmentStart Date, year int, annualDays, weeklyHours, fullTimeHours decimal.Decimal) decimal.Decimal {
	entitled := ProRataEntitlement(employmentStart, annualDays, year)
	if weeklyHours.Sign() > 0 && weeklyHours.LessThan(fullTimeHours) {
		entitled = PartTimeProRata(weeklyHours, entitled, fullTimeHours)
	}
	return entitled
}
