/*
policy.go - Organization leave policy

PURPOSE:
  A LeavePolicy is the organization-owned configuration every calculation
  reads: annual entitlement, carryover rules, certificate threshold, and
  the full-time hour baseline. Read-only input to the engine; owned and
  persisted by the caller.
*/
package engine

import "github.com/shopspring/decimal"

// LeavePolicy is one organization's leave configuration.
type LeavePolicy struct {
	Name                  string          `json:"name"`
	AnnualEntitlementDays decimal.Decimal `json:"annual_entitlement_days"`
	CarryoverEnabled      bool            `json:"carryover_enabled"`
	CarryoverMaxDays      decimal.Decimal `json:"carryover_max_days"`
	CarryoverExpiry       MonthDay        `json:"carryover_expiry"`
	SickCertificateDays   int             `json:"sick_certificate_days"`
	FullTimeWeeklyHours   decimal.Decimal `json:"full_time_weekly_hours"`
	CountryCode           string          `json:"country_code"`
}

// CarryoverCap is the effective cap for the carryover calculator: the
// configured maximum, or zero when carryover is disabled.
func (p LeavePolicy) CarryoverCap() decimal.Decimal {
	if !p.CarryoverEnabled {
		return decimal.Zero
	}
	return p.CarryoverMaxDays
}

// MeetsStatutoryMinimum reports whether the configured entitlement reaches
// the jurisdiction's legal minimum for the given working-week length.
func (p LeavePolicy) MeetsStatutoryMinimum(workDaysPerWeek int) bool {
	minimum := JurisdictionFor(p.CountryCode).MinimumStatutoryLeave(workDaysPerWeek)
	return p.AnnualEntitlementDays.GreaterThanOrEqual(minimum)
}
