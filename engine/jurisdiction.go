/*
jurisdiction.go - Per-jurisdiction legal constants

PURPOSE:
  Statutory minimum leave and the sick-leave certificate threshold differ
  by jurisdiction. Both live in one explicit configuration structure so
  additional countries are added as data, never as new branches inside the
  calculation functions.
*/
package engine

import "github.com/shopspring/decimal"

// Jurisdiction carries the legal constants of one country or region.
type Jurisdiction struct {
	// Code is the ISO 3166-1 alpha-2 country code.
	Code string
	// SixDayWeekMinimum is the statutory annual minimum in days for a
	// six-day working week; five-day-week staff get 5/6 of it.
	SixDayWeekMinimum decimal.Decimal
	// CertificateThresholdDays is the longest run of consecutive sick days
	// that does not yet require a medical certificate.
	CertificateThresholdDays int
}

var six = decimal.NewFromInt(6)

// MinimumStatutoryLeave scales the six-day-week minimum to the given
// working-week length, rounded to the nearest whole day.
func (j Jurisdiction) MinimumStatutoryLeave(workDaysPerWeek int) decimal.Decimal {
	return RoundWhole(j.SixDayWeekMinimum.Div(six).Mul(decimal.NewFromInt(int64(workDaysPerWeek))))
}

// RequiresCertificate reports whether a run of consecutive sick days is
// long enough to require a certificate. A run exactly at the threshold
// does not yet require one.
func (j Jurisdiction) RequiresCertificate(consecutiveSickDays int) bool {
	return consecutiveSickDays > j.CertificateThresholdDays
}

// =============================================================================
// REGISTRY
// =============================================================================

var jurisdictions = map[string]Jurisdiction{
	"DE": {Code: "DE", SixDayWeekMinimum: decimal.NewFromInt(24), CertificateThresholdDays: 3},
	"AT": {Code: "AT", SixDayWeekMinimum: decimal.NewFromInt(30), CertificateThresholdDays: 3},
	"CH": {Code: "CH", SixDayWeekMinimum: decimal.NewFromInt(24), CertificateThresholdDays: 3},
}

// DefaultJurisdiction is used when a country code is unknown.
var DefaultJurisdiction = jurisdictions["DE"]

// JurisdictionFor looks up the constants for a country code, falling back
// to DefaultJurisdiction for codes the registry does not know.
func JurisdictionFor(countryCode string) Jurisdiction {
	if j, ok := jurisdictions[countryCode]; ok {
		return j
	}
	return DefaultJurisdiction
}
