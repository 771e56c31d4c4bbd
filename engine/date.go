/*
Package engine implements the leave accounting calculations.

PURPOSE:
  This package is the pure calculation core of the system. It turns raw
  request dates, organizational policy, and a holiday calendar into
  work-day counts, entitlement figures, carryover amounts, and conflict
  detections. It holds no state, performs no I/O, and never mutates its
  inputs — every function is a plain computation over its arguments, safe
  to call speculatively from UI code.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: a calendar day with no time-of-day component
  - DateRange: an inclusive [Start, End] span of days
  - MonthDay: a recurring calendar position (e.g. March 31)

DESIGN PRINCIPLES:
  1. Day granularity: every Date is normalized to midnight UTC
  2. Totality: degenerate inputs (inverted ranges, zero policy numbers)
     produce well-defined zero results, never errors
  3. Precision: day quantities are decimal.Decimal so half days are exact

SEE ALSO:
  - workdays.go: range -> work-day count
  - entitlement.go, carryover.go: period-boundary calculators
  - balance.go: the five-field balance and its derived remaining value
*/
package engine

import "time"

// =============================================================================
// DATE - Calendar day, no time-of-day component
// =============================================================================

// Date is a calendar day. The zero value is "no date".
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string. Input-format validation is the
// caller's responsibility; this is the one place the engine can fail.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.norm().Before(other.norm()) }
func (d Date) After(other Date) bool         { return d.norm().After(other.norm()) }
func (d Date) Equal(other Date) bool         { return d.norm().Equal(other.norm()) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

func (d Date) norm() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.norm().AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.norm().AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{Time: d.norm().AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.norm().Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

// IsWeekend reports Saturday/Sunday, locale-independent.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string { return d.norm().Format("2006-01-02") }

// DaysBetween returns to - from in whole days; negative when to is earlier.
func DaysBetween(from, to Date) int {
	return int(to.norm().Sub(from.norm()).Hours() / 24)
}

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }

// =============================================================================
// MONTH-DAY - Recurring calendar position (carryover expiry, fiscal cutoffs)
// =============================================================================

type MonthDay struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// InYear anchors the month-day to a concrete year.
func (md MonthDay) InYear(year int) Date {
	return NewDate(year, md.Month, md.Day)
}

// =============================================================================
// DATE RANGE - Inclusive [Start, End] span
// =============================================================================

// DateRange is an inclusive span of calendar days. A range with
// Start > End is degenerate: it contains no days and yields zero results
// from every calculator, by design of callers constructing speculative
// ranges while a user is still typing.
type DateRange struct {
	Start Date
	End   Date
}

func NewDateRange(start, end Date) DateRange {
	return DateRange{Start: start, End: end}
}

// IsDegenerate reports whether the range contains no days.
func (r DateRange) IsDegenerate() bool { return r.Start.After(r.End) }

// Contains reports whether d falls within [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Days enumerates every calendar day in the range, in order.
// A degenerate range yields nil.
func (r DateRange) Days() []Date {
	if r.IsDegenerate() {
		return nil
	}
	var days []Date
	for cur := r.Start; cur.BeforeOrEqual(r.End); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}

// Length returns the inclusive day count; 0 for degenerate ranges.
func (r DateRange) Length() int {
	if r.IsDegenerate() {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
