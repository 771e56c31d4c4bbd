/*
overlap.go - Conflict detection between leave spans

PURPOSE:
  Determines whether two inclusive date ranges share at least one calendar
  day. The approval workflow runs every incoming request against the
  employee's existing non-cancelled requests with this check.
*/
package engine

// Overlaps reports whether r and other share at least one calendar day.
// Touching boundary dates count as overlap; ranges separated by a full day
// do not. Symmetric and total, degenerate ranges included.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.BeforeOrEqual(other.End) && r.End.AfterOrEqual(other.Start)
}

// Overlapping returns the subset of existing ranges that conflict with r.
func Overlapping(r DateRange, existing []DateRange) []DateRange {
	var conflicts []DateRange
	for _, e := range existing {
		if r.Overlaps(e) {
			conflicts = append(conflicts, e)
		}
	}
	return conflicts
}
