package engine

// =============================================================================
// HOLIDAY SET - Dates that are non-working regardless of weekday
// =============================================================================

// HolidaySet is a set of calendar dates considered non-working, scoped by
// the supplying calendar to a country/region and year. The engine only
// performs membership tests; ownership of the data stays with the calendar
// collaborator.
type HolidaySet map[Date]struct{}

func NewHolidaySet(dates ...Date) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (hs HolidaySet) Add(d Date) { hs[DateOf(d.Time)] = struct{}{} }

func (hs HolidaySet) Contains(d Date) bool {
	if hs == nil {
		return false
	}
	_, ok := hs[DateOf(d.Time)]
	return ok
}

// Union merges another set into a new one; either operand may be nil.
func (hs HolidaySet) Union(other HolidaySet) HolidaySet {
	merged := make(HolidaySet, len(hs)+len(other))
	for d := range hs {
		merged[d] = struct{}{}
	}
	for d := range other {
		merged[d] = struct{}{}
	}
	return merged
}

// =============================================================================
// CALENDAR - External holiday-calendar collaborator
// =============================================================================

// Calendar supplies holiday sets per jurisdiction and year. Implemented by
// the persistence layer; the engine never loads holidays itself.
type Calendar interface {
	// HolidaysFor returns the holiday set for a country (and optional
	// region, empty string for country-wide) in a given year.
	HolidaysFor(countryCode, regionCode string, year int) (HolidaySet, error)
}

// NullCalendar is the no-holidays calendar, used when a company disables
// public-holiday handling.
type NullCalendar struct{}

func (NullCalendar) HolidaysFor(countryCode, regionCode string, year int) (HolidaySet, error) {
	return nil, nil
}

// HolidaysForRange collects holidays for every year a range touches.
// A degenerate range yields an empty set.
func HolidaysForRange(cal Calendar, countryCode, regionCode string, r DateRange) (HolidaySet, error) {
	if cal == nil || r.IsDegenerate() {
		return nil, nil
	}
	set := NewHolidaySet()
	for year := r.Start.Year(); year <= r.End.Year(); year++ {
		yearSet, err := cal.HolidaysFor(countryCode, regionCode, year)
		if err != nil {
			return nil, err
		}
		set = set.Union(yearSet)
	}
	return set, nil
}
