/*
Package factory provides JSON to Go leave-policy conversion.

PURPOSE:
  Converts JSON policy definitions into engine.LeavePolicy values. This
  enables policy configuration without code changes - HR can define
  policies in JSON, and the factory produces the struct the engine reads.

WHY JSON?
  - Non-developers can modify policies
  - Easy integration with admin UI
  - Version control for policy definitions
  - Database storage of policy configs

JSON SCHEMA:
  {
    "id": "standard-de",
    "name": "Standard Full-Time (DE)",
    "annual_entitlement_days": 30,
    "country_code": "DE",
    "full_time_weekly_hours": 40,
    "sick_certificate_days": 3,
    "carryover": {
      "enabled": true,
      "max_days": 5,
      "expiry": {"month": 3, "day": 31}
    }
  }

DEFAULTS:
  Missing carryover expiry falls back to March 31, full-time hours to 40,
  and the certificate threshold to the jurisdiction's value. A zero or
  negative entitlement is a configuration error, not a policy.

USAGE:
  policy, err := factory.ParsePolicy(jsonString)

  Or start from a preset:
  policy, _ := factory.ParsePolicy(factory.StandardFullTimeJSON("DE", 30))

SEE ALSO:
  - engine/policy.go: the LeavePolicy type this factory produces
  - store/sqlite: persists the parsed policy as JSON config
*/
package factory

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/cderinbogaz/zeitpal-sub001/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PolicyJSON is the JSON representation of a leave policy.
type PolicyJSON struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	AnnualEntitlementDays float64        `json:"annual_entitlement_days"`
	CountryCode           string         `json:"country_code,omitempty"`
	FullTimeWeeklyHours   float64        `json:"full_time_weekly_hours,omitempty"`
	SickCertificateDays   *int           `json:"sick_certificate_days,omitempty"`
	Carryover             *CarryoverJSON `json:"carryover,omitempty"`
}

// CarryoverJSON is the carryover section of a policy.
type CarryoverJSON struct {
	Enabled bool          `json:"enabled"`
	MaxDays float64       `json:"max_days,omitempty"`
	Expiry  *MonthDayJSON `json:"expiry,omitempty"`
}

// MonthDayJSON is a recurring calendar position.
type MonthDayJSON struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParsePolicy parses a JSON string into a LeavePolicy, applying defaults
// and validating the configuration.
func ParsePolicy(jsonStr string) (engine.LeavePolicy, error) {
	var pj PolicyJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return engine.LeavePolicy{}, fmt.Errorf("failed to parse policy JSON: %w", err)
	}
	return FromJSON(pj)
}

// FromJSON converts PolicyJSON to engine.LeavePolicy.
func FromJSON(pj PolicyJSON) (engine.LeavePolicy, error) {
	if pj.AnnualEntitlementDays <= 0 {
		return engine.LeavePolicy{}, fmt.Errorf("policy %q: annual_entitlement_days must be positive, got %v",
			pj.ID, pj.AnnualEntitlementDays)
	}

	countryCode := pj.CountryCode
	if countryCode == "" {
		countryCode = engine.DefaultJurisdiction.Code
	}
	jur := engine.JurisdictionFor(countryCode)

	policy := engine.LeavePolicy{
		Name:                  pj.Name,
		AnnualEntitlementDays: decimal.NewFromFloat(pj.AnnualEntitlementDays),
		CarryoverExpiry:       engine.MonthDay{Month: time.March, Day: 31},
		SickCertificateDays:   jur.CertificateThresholdDays,
		FullTimeWeeklyHours:   decimal.NewFromInt(40),
		CountryCode:           countryCode,
	}

	if pj.FullTimeWeeklyHours > 0 {
		policy.FullTimeWeeklyHours = decimal.NewFromFloat(pj.FullTimeWeeklyHours)
	}
	if pj.SickCertificateDays != nil {
		policy.SickCertificateDays = *pj.SickCertificateDays
	}

	if pj.Carryover != nil {
		policy.CarryoverEnabled = pj.Carryover.Enabled
		policy.CarryoverMaxDays = decimal.NewFromFloat(pj.Carryover.MaxDays)
		if pj.Carryover.Expiry != nil {
			md, err := parseMonthDay(*pj.Carryover.Expiry)
			if err != nil {
				return engine.LeavePolicy{}, fmt.Errorf("policy %q: %w", pj.ID, err)
			}
			policy.CarryoverExpiry = md
		}
		if policy.CarryoverEnabled && policy.CarryoverMaxDays.Sign() <= 0 {
			return engine.LeavePolicy{}, fmt.Errorf("policy %q: carryover enabled but max_days is %v",
				pj.ID, pj.Carryover.MaxDays)
		}
	}

	return policy, nil
}

func parseMonthDay(md MonthDayJSON) (engine.MonthDay, error) {
	if md.Month < 1 || md.Month > 12 {
		return engine.MonthDay{}, fmt.Errorf("invalid expiry month: %d", md.Month)
	}
	if md.Day < 1 || md.Day > 31 {
		return engine.MonthDay{}, fmt.Errorf("invalid expiry day: %d", md.Day)
	}
	return engine.MonthDay{Month: time.Month(md.Month), Day: md.Day}, nil
}

// ToJSON converts a LeavePolicy back to its JSON representation.
func ToJSON(id string, policy engine.LeavePolicy) PolicyJSON {
	annual, _ := policy.AnnualEntitlementDays.Float64()
	hours, _ := policy.FullTimeWeeklyHours.Float64()
	threshold := policy.SickCertificateDays

	pj := PolicyJSON{
		ID:                    id,
		Name:                  policy.Name,
		AnnualEntitlementDays: annual,
		CountryCode:           policy.CountryCode,
		FullTimeWeeklyHours:   hours,
		SickCertificateDays:   &threshold,
	}

	if policy.CarryoverEnabled {
		maxDays, _ := policy.CarryoverMaxDays.Float64()
		pj.Carryover = &CarryoverJSON{
			Enabled: true,
			MaxDays: maxDays,
			Expiry: &MonthDayJSON{
				Month: int(policy.CarryoverExpiry.Month),
				Day:   policy.CarryoverExpiry.Day,
			},
		}
	}
	return pj
}

// =============================================================================
// PRESET POLICIES
// =============================================================================

// StandardFullTimeJSON is the default full-time policy for a jurisdiction:
// carryover capped at 5 days expiring March 31.
func StandardFullTimeJSON(countryCode string, annualDays float64) string {
	return fmt.Sprintf(`{
		"id": "standard-%s",
		"name": "Standard Full-Time (%s)",
		"annual_entitlement_days": %v,
		"country_code": %q,
		"full_time_weekly_hours": 40,
		"carryover": {
			"enabled": true,
			"max_days": 5,
			"expiry": {"month": 3, "day": 31}
		}
	}`, countryCode, countryCode, annualDays, countryCode)
}

// NoCarryoverJSON is a use-it-or-lose-it policy.
func NoCarryoverJSON(countryCode string, annualDays float64) string {
	return fmt.Sprintf(`{
		"id": "no-carryover-%s",
		"name": "No Carryover (%s)",
		"annual_entitlement_days": %v,
		"country_code": %q,
		"full_time_weekly_hours": 40,
		"carryover": {"enabled": false}
	}`, countryCode, countryCode, annualDays, countryCode)
}
