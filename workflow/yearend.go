/*
yearend.go - Year-end carryover batch and onboarding seeding

PURPOSE:
  Runs the entitlement and carryover calculators once per employee per
  accounting year:

  - Year-end: close year N by carrying unused days into year N+1 (capped,
    with an expiry date) and seeding year N+1's entitlement. Idempotent:
    a yearend_runs row per employee per closed year guards against
    double-processing.
  - Onboarding: seed a new hire's first balance, pro-rated for the start
    date and part-time hours.

CARRYOVER TIMING:
  Carryover is evaluated as of the new period's first day, so the expiry
  month/day lands inside the new year (a March 31 expiry gives roughly
  three months to use the carried days).
*/
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cderinbogaz/zeitpal-sub001/engine"
	"github.com/cderinbogaz/zeitpal-sub001/store/sqlite"
)

// YearEndService closes accounting years.
type YearEndService struct {
	Store  *sqlite.Store
	Logger *slog.Logger
}

func NewYearEndService(store *sqlite.Store, logger *slog.Logger) *YearEndService {
	if logger == nil {
		logger = slog.Default()
	}
	return &YearEndService{Store: store, Logger: logger}
}

// YearEndReport summarizes one batch run.
type YearEndReport struct {
	Year      int
	Processed int
	Skipped   int
	Failed    int
	Results   []YearEndResult
}

// YearEndResult is one employee's outcome.
type YearEndResult struct {
	EmployeeID  string
	CarriedOver decimal.Decimal
	Expired     bool
	NewEntitled decimal.Decimal
	Skipped     bool
	Err         error
}

// ProcessYear closes the given year for every employee: computes carryover
// from the year's remaining balance and seeds the next year's balance.
// Employees already processed for this year are skipped, so the batch can
// be re-run safely.
func (ys *YearEndService) ProcessYear(ctx context.Context, year int) (*YearEndReport, error) {
	employees, err := ys.Store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	report := &YearEndReport{Year: year}
	for _, emp := range employees {
		result := ys.processEmployee(ctx, emp, year)
		report.Results = append(report.Results, result)
		switch {
		case result.Err != nil:
			report.Failed++
		case result.Skipped:
			report.Skipped++
		default:
			report.Processed++
		}
	}

	ys.Logger.Info("year-end batch finished",
		slog.Int("year", year),
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (ys *YearEndService) processEmployee(ctx context.Context, emp sqlite.Employee, year int) YearEndResult {
	result := YearEndResult{EmployeeID: emp.ID}

	done, err := ys.Store.IsYearEndComplete(ctx, emp.ID, year)
	if err != nil {
		result.Err = fmt.Errorf("failed to check year-end state: %w", err)
		return result
	}
	if done {
		result.Skipped = true
		return result
	}

	closing, err := ys.Store.GetBalance(ctx, emp.ID, year)
	if err != nil {
		result.Err = fmt.Errorf("failed to load balance: %w", err)
		return result
	}
	if closing == nil {
		// No balance to close; nothing carries into the new year.
		result.Skipped = true
		return result
	}

	policyRec, err := ys.Store.GetPolicy(ctx, emp.PolicyID)
	if err != nil {
		result.Err = fmt.Errorf("failed to load policy: %w", err)
		return result
	}
	if policyRec == nil {
		result.Err = ErrPolicyNotFound
		return result
	}
	policy := policyRec.Policy

	newYearStart := engine.StartOfYear(year + 1)
	carry := engine.Carryover(
		closing.Balance.Remaining(),
		policy.CarryoverCap(),
		policy.CarryoverExpiry,
		newYearStart,
	)

	entitled := engine.AnnualEntitlement(
		emp.StartDate, year+1,
		policy.AnnualEntitlementDays,
		emp.WeeklyHours,
		policy.FullTimeWeeklyHours,
	)

	// A balance for the new year may already exist (seeded so the employee
	// could book ahead). Only entitled and carried-over belong to this
	// batch; used, pending and adjustment are owned by the approval
	// workflow and must survive the merge.
	next := sqlite.BalanceRecord{
		EmployeeID: emp.ID,
		Year:       year + 1,
	}
	if existing, err := ys.Store.GetBalance(ctx, emp.ID, year+1); err != nil {
		result.Err = fmt.Errorf("failed to load next year balance: %w", err)
		return result
	} else if existing != nil {
		next.Balance = existing.Balance
	}
	next.Balance.Entitled = entitled
	next.Balance.CarriedOver = carry.Amount
	if carry.Amount.Sign() > 0 {
		next.CarryoverExpiresOn = carry.ExpiresOn
	}

	if err := ys.Store.SaveBalance(ctx, next); err != nil {
		result.Err = fmt.Errorf("failed to seed next year balance: %w", err)
		return result
	}
	if err := ys.Store.MarkYearEndComplete(ctx, emp.ID, year, carry.Amount, carry.Expired); err != nil {
		result.Err = fmt.Errorf("failed to mark year-end complete: %w", err)
		return result
	}

	result.CarriedOver = carry.Amount
	result.Expired = carry.Expired
	result.NewEntitled = entitled

	ys.Logger.Info("year closed for employee",
		slog.String("employee_id", emp.ID),
		slog.Int("year", year),
		slog.String("carried_over", carry.Amount.String()),
		slog.String("new_entitled", entitled.String()),
	)
	return result
}
