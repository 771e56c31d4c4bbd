/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates policies, employees,
	holidays and balances that demonstrate specific features.

AVAILABLE SCENARIOS:

	new-employee:   Full-time employee with a seeded current-year balance
	mid-year-hire:  Part-timer hired July 1st, pro-rated entitlement
	carryover:      Closed previous year with capped carryover into this one

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create policies via factory presets
 3. Create employees and German public holidays
 4. Seed balances through the onboarding service
 5. Optionally run the year-end batch

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "carryover"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: shared handler context and error helpers
  - factory/policy.go: policy JSON presets
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/cderinbogaz/zeitpal-sub001/engine"
	"github.com/cderinbogaz/zeitpal-sub001/factory"
	"github.com/cderinbogaz/zeitpal-sub001/store/sqlite"
)

// ScenarioDTO describes an available demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "new-employee",
		Name:        "New Employee",
		Description: "Full-time employee on the standard 30-day policy with a seeded current-year balance.",
	},
	{
		ID:          "mid-year-hire",
		Name:        "Mid-Year Part-Time Hire",
		Description: "20h/week employee hired July 1st: start-date pro-ration composed with part-time scaling.",
	},
	{
		ID:          "carryover",
		Name:        "Year-End Carryover",
		Description: "Previous year closed with 8 days left; the capped 5 carry into the current year until March 31.",
	},
}

// ListScenarios returns all available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": h.currentScenario})
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	var err error
	switch req.ScenarioID {
	case "new-employee":
		err = h.loadNewEmployeeScenario(ctx)
	case "mid-year-hire":
		err = h.loadMidYearHireScenario(ctx)
	case "carryover":
		err = h.loadCarryoverScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": req.ScenarioID, "status": "loaded"})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadNewEmployeeScenario(ctx context.Context) error {
	if err := h.resetWithBaseline(ctx); err != nil {
		return err
	}

	emp := sqlite.Employee{
		ID:          "anna",
		Name:        "Anna Fischer",
		Email:       "anna@example.com",
		StartDate:   engine.NewDate(2022, time.January, 1),
		WeeklyHours: decimal.NewFromInt(40),
		PolicyID:    "standard-DE",
		CountryCode: "DE",
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	_, err := h.Onboarding.SeedBalance(ctx, emp.ID, time.Now().UTC().Year())
	return err
}

func (h *Handler) loadMidYearHireScenario(ctx context.Context) error {
	if err := h.resetWithBaseline(ctx); err != nil {
		return err
	}

	year := time.Now().UTC().Year()
	emp := sqlite.Employee{
		ID:          "jonas",
		Name:        "Jonas Keller",
		Email:       "jonas@example.com",
		StartDate:   engine.NewDate(year, time.July, 1),
		WeeklyHours: decimal.NewFromInt(20),
		PolicyID:    "standard-DE",
		CountryCode: "DE",
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	_, err := h.Onboarding.SeedBalance(ctx, emp.ID, year)
	return err
}

func (h *Handler) loadCarryoverScenario(ctx context.Context) error {
	if err := h.resetWithBaseline(ctx); err != nil {
		return err
	}

	year := time.Now().UTC().Year()
	emp := sqlite.Employee{
		ID:          "mara",
		Name:        "Mara Weber",
		Email:       "mara@example.com",
		StartDate:   engine.NewDate(year-3, time.January, 1),
		WeeklyHours: decimal.NewFromInt(40),
		PolicyID:    "standard-DE",
		CountryCode: "DE",
	}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	// Previous year ends with 30 - 22 = 8 days left; the cap carries 5.
	if err := h.Store.SaveBalance(ctx, sqlite.BalanceRecord{
		EmployeeID: emp.ID,
		Year:       year - 1,
		Balance: engine.Balance{
			Entitled: decimal.NewFromInt(30),
			Used:     decimal.NewFromInt(22),
		},
	}); err != nil {
		return err
	}

	_, err := h.YearEnd.ProcessYear(ctx, year-1)
	return err
}

// resetWithBaseline clears the database and installs the standard policy
// plus the fixed-date German public holidays.
func (h *Handler) resetWithBaseline(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}

	policy, err := factory.ParsePolicy(factory.StandardFullTimeJSON("DE", 30))
	if err != nil {
		return err
	}
	if err := h.Store.SavePolicy(ctx, sqlite.PolicyRecord{
		ID:     "standard-DE",
		Name:   policy.Name,
		Policy: policy,
	}); err != nil {
		return err
	}

	year := time.Now().UTC().Year()
	defaults := []struct {
		month time.Month
		day   int
		name  string
	}{
		{time.January, 1, "Neujahr"},
		{time.May, 1, "Tag der Arbeit"},
		{time.October, 3, "Tag der Deutschen Einheit"},
		{time.December, 25, "1. Weihnachtstag"},
		{time.December, 26, "2. Weihnachtstag"},
	}
	for i, d := range defaults {
		if err := h.Store.SaveHoliday(ctx, sqlite.Holiday{
			ID:          fmt.Sprintf("de-default-%d", i+1),
			CountryCode: "DE",
			Date:        engine.NewDate(year, d.month, d.day),
			Name:        d.name,
			Recurring:   true,
		}); err != nil {
			return err
		}
	}
	return nil
}
