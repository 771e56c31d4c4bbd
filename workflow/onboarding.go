/*
onboarding.go - First-year balance seeding for new hires

PURPOSE:
  Seeds the first accounting-year balance of a newly created employee:
  start-date pro-ration first, then part-time scaling, same composition
  order the year-end batch uses.
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

// OnboardingService seeds first-year balances.
type OnboardingService struct {
	Store  *sqlite.Store
	Logger *slog.Logger
}

func NewOnboardingService(store *sqlite.Store, logger *slog.Logger) *OnboardingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnboardingService{Store: store, Logger: logger}
}

// SeedBalance creates the balance for an employee's accounting year from
// their policy, start date, and weekly hours. It refuses to overwrite an
// existing balance; corrections go through manual adjustment instead.
func (os *OnboardingService) SeedBalance(ctx context.Context, employeeID string, year int) (*sqlite.BalanceRecord, error) {
	emp, err := os.Store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	existing, err := os.Store.GetBalance(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}
	if existing != nil {
		return nil, ErrBalanceAlreadySeeded
	}

	policyRec, err := os.Store.GetPolicy(ctx, emp.PolicyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}
	if policyRec == nil {
		return nil, ErrPolicyNotFound
	}
	policy := policyRec.Policy

	entitled := engine.AnnualEntitlement(
		emp.StartDate, year,
		policy.AnnualEntitlementDays,
		emp.WeeklyHours,
		policy.FullTimeWeeklyHours,
	)

	rec := sqlite.BalanceRecord{
		EmployeeID: employeeID,
		Year:       year,
		Balance: engine.Balance{
			Entitled:    entitled,
			CarriedOver: decimal.Zero,
			Adjustment:  decimal.Zero,
			Used:        decimal.Zero,
			Pending:     decimal.Zero,
		},
	}
	if err := os.Store.SaveBalance(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save balance: %w", err)
	}

	os.Logger.Info("first-year balance seeded",
		slog.String("employee_id", employeeID),
		slog.Int("year", year),
		slog.String("entitled", entitled.String()),
	)
	return &rec, nil
}
