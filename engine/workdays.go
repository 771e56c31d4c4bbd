/*
workdays.go - Work-day sizing of a leave request span

PURPOSE:
  Converts an inclusive date range (plus optional half-day markers on its
  boundary dates) into a work-day count, given the holiday set for the
  jurisdiction. This is the calculation every request passes through before
  it can be validated, priced against a balance, or approved.

CONTRIBUTION RULES:
  - Weekend days and holidays contribute 0 — always, marker or not.
  - A single-day range with either marker set contributes 0.5.
  - In a multi-day range, the first day contributes 0.5 when the start
    marker is set and the last day 0.5 when the end marker is set; all
    interior days and unmarked boundaries contribute 1.
  - A degenerate range (start after end) contributes 0. Callers construct
    ranges speculatively, so this is a value, not an error.
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// HALF-DAY MARKERS
// =============================================================================

// HalfDay marks a boundary date of a request span as a half day.
type HalfDay string

const (
	HalfDayNone      HalfDay = ""
	HalfDayMorning   HalfDay = "morning"
	HalfDayAfternoon HalfDay = "afternoon"
)

// IsSet reports whether the marker shortens its boundary day.
func (h HalfDay) IsSet() bool { return h == HalfDayMorning || h == HalfDayAfternoon }

// =============================================================================
// LEAVE SPAN - The unit the work-day calculator consumes
// =============================================================================

// LeaveSpan is a requested leave period: a date range with optional
// half-day markers on its boundary dates.
type LeaveSpan struct {
	Range        DateRange
	StartHalfDay HalfDay
	EndHalfDay   HalfDay
}

// WorkDays sizes the span against the given holiday set.
func (s LeaveSpan) WorkDays(holidays HolidaySet) decimal.Decimal {
	return WorkDays(s.Range, holidays, s.StartHalfDay, s.EndHalfDay)
}

// =============================================================================
// WORK-DAY CALCULATOR
// =============================================================================

var (
	fullDay = decimal.NewFromInt(1)
	halfDay = decimal.NewFromFloat(0.5)
)

// WorkDays returns the work-day count of [r.Start, r.End] inclusive,
// skipping weekends and holidays and applying half-day markers to the
// boundary dates. The result is never negative; a degenerate range is 0.
func WorkDays(r DateRange, holidays HolidaySet, startHalf, endHalf HalfDay) decimal.Decimal {
	total := decimal.Zero
	if r.IsDegenerate() {
		return total
	}

	singleDay := r.Start.Equal(r.End)
	for cur := r.Start; cur.BeforeOrEqual(r.End); cur = cur.AddDays(1) {
		if cur.IsWeekend() || holidays.Contains(cur) {
			continue
		}

		contribution := fullDay
		switch {
		case singleDay:
			if startHalf.IsSet() || endHalf.IsSet() {
				contribution = halfDay
			}
		case cur.Equal(r.Start) && startHalf.IsSet():
			contribution = halfDay
		case cur.Equal(r.End) && endHalf.IsSet():
			contribution = halfDay
		}
		total = total.Add(contribution)
	}
	return total
}
