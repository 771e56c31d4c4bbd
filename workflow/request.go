/*
Package workflow orchestrates the request lifecycle and period batches on
top of the calculation engine and the SQLite store.

request.go - Leave request lifecycle

PURPOSE:
  Handles the request state machine:
  1. Preview: size a speculative span with no side effects
  2. Submit: validate (work days, overlap, balance) and hold the amount
     as pending
  3. Approve: convert pending to used
  4. Reject/Cancel: release the pending hold

  Only pending requests transition. The request row and the balance row
  of every transition commit in one database transaction.

BALANCE DISCIPLINE:
  Vacation requests hold their work-day count in the balance's pending
  field at submission, so concurrent requests cannot overdraw. Sick
  requests never touch the vacation balance; instead the jurisdiction's
  certificate rule is evaluated and surfaced to the caller.
*/
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cderinbogaz/zeitpal-sub001/engine"
	"github.com/cderinbogaz/zeitpal-sub001/store/sqlite"
)

// RequestService handles the leave request lifecycle.
type RequestService struct {
	Store  *sqlite.Store
	Logger *slog.Logger
}

func NewRequestService(store *sqlite.Store, logger *slog.Logger) *RequestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestService{Store: store, Logger: logger}
}

// SubmitInput is a request submission.
type SubmitInput struct {
	EmployeeID string
	Kind       string
	Span       engine.LeaveSpan
	Reason     string
}

// SubmitResult is the outcome of a submission.
type SubmitResult struct {
	Request *sqlite.LeaveRequest
	// CertificateRequired is set on sick requests whose length exceeds the
	// jurisdiction's certificate threshold.
	CertificateRequired bool
}

// Preview sizes a span for an employee without persisting anything. Safe
// to call while the user is still picking dates; degenerate spans simply
// return zero.
func (rs *RequestService) Preview(ctx context.Context, employeeID string, span engine.LeaveSpan) (decimal.Decimal, error) {
	emp, err := rs.Store.GetEmployee(ctx, employeeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load employee: %w", err)
	}
	if emp == nil {
		return decimal.Zero, ErrEmployeeNotFound
	}

	holidays, err := engine.HolidaysForRange(rs.calendarFor(emp), emp.CountryCode, emp.RegionCode, span.Range)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load holidays: %w", err)
	}
	return span.WorkDays(holidays), nil
}

// calendarFor returns the holiday calendar for an employee. An empty
// country code opts the employee out of public-holiday handling.
func (rs *RequestService) calendarFor(emp *sqlite.Employee) engine.Calendar {
	if emp.CountryCode == "" {
		return engine.NullCalendar{}
	}
	return rs.Store
}

// Submit validates a request and records it as pending. Vacation requests
// hold their work-day count against the balance of the year the span
// starts in.
func (rs *RequestService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	emp, err := rs.Store.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	holidays, err := engine.HolidaysForRange(rs.calendarFor(emp), emp.CountryCode, emp.RegionCode, in.Span.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	workDays := in.Span.WorkDays(holidays)
	if workDays.Sign() <= 0 {
		return nil, ErrZeroWorkDays
	}

	if err := rs.checkOverlap(ctx, in.EmployeeID, in.Span.Range); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request := sqlite.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: in.EmployeeID,
		Kind:       in.Kind,
		Span:       in.Span,
		Status:     sqlite.StatusPending,
		WorkDays:   workDays,
		Reason:     in.Reason,
		CreatedAt:  now,
	}

	result := &SubmitResult{Request: &request}

	if in.Kind == sqlite.KindSick {
		jur := engine.JurisdictionFor(emp.CountryCode)
		result.CertificateRequired = jur.RequiresCertificate(in.Span.Range.Length())
		if err := rs.Store.SaveRequest(ctx, request); err != nil {
			return nil, fmt.Errorf("failed to save request: %w", err)
		}
		rs.logSubmit(request, result.CertificateRequired)
		return result, nil
	}

	// Vacation: balance check and pending hold, atomically with the
	// request row.
	year := in.Span.Range.Start.Year()
	err = rs.Store.WithTx(ctx, func(tx *sqlite.Tx) error {
		bal, err := tx.GetBalance(ctx, in.EmployeeID, year)
		if err != nil {
			return fmt.Errorf("failed to load balance: %w", err)
		}
		if bal == nil {
			return ErrBalanceNotFound
		}

		remaining := bal.Balance.Remaining()
		if workDays.GreaterThan(remaining) {
			return &InsufficientBalanceError{
				EmployeeID: in.EmployeeID,
				Remaining:  remaining,
				Requested:  workDays,
			}
		}

		bal.Balance.Pending = bal.Balance.Pending.Add(workDays)
		if err := tx.SaveBalance(ctx, *bal); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		return tx.SaveRequest(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	rs.logSubmit(request, false)
	return result, nil
}

func (rs *RequestService) logSubmit(r sqlite.LeaveRequest, certificate bool) {
	rs.Logger.Info("leave request submitted",
		slog.String("request_id", r.ID),
		slog.String("employee_id", r.EmployeeID),
		slog.String("kind", r.Kind),
		slog.String("range", r.Span.Range.String()),
		slog.String("work_days", r.WorkDays.String()),
		slog.Bool("certificate_required", certificate),
	)
}

func (rs *RequestService) checkOverlap(ctx context.Context, employeeID string, r engine.DateRange) error {
	active, err := rs.Store.ListActiveRequests(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to load active requests: %w", err)
	}

	existing := make([]engine.DateRange, 0, len(active))
	for _, a := range active {
		existing = append(existing, a.Span.Range)
	}

	if conflicts := engine.Overlapping(r, existing); len(conflicts) > 0 {
		return &OverlapError{EmployeeID: employeeID, Requested: r, Conflicts: conflicts}
	}
	return nil
}

// Approve converts a pending request to approved, moving its work-day
// count from pending to used on vacation balances.
func (rs *RequestService) Approve(ctx context.Context, requestID, approverID string) (*sqlite.LeaveRequest, error) {
	return rs.decide(ctx, requestID, approverID, sqlite.StatusApproved, "")
}

// Reject rejects a pending request and releases its pending hold.
func (rs *RequestService) Reject(ctx context.Context, requestID, deciderID, reason string) (*sqlite.LeaveRequest, error) {
	return rs.decide(ctx, requestID, deciderID, sqlite.StatusRejected, reason)
}

// Cancel cancels a pending request and releases its pending hold.
func (rs *RequestService) Cancel(ctx context.Context, requestID string) (*sqlite.LeaveRequest, error) {
	return rs.decide(ctx, requestID, "", sqlite.StatusCancelled, "")
}

func (rs *RequestService) decide(ctx context.Context, requestID, deciderID, status, reason string) (*sqlite.LeaveRequest, error) {
	var decided *sqlite.LeaveRequest

	err := rs.Store.WithTx(ctx, func(tx *sqlite.Tx) error {
		request, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to load request: %w", err)
		}
		if request == nil {
			return ErrRequestNotFound
		}
		if request.Status != sqlite.StatusPending {
			return &TransitionError{RequestID: requestID, Status: request.Status}
		}

		now := time.Now().UTC()
		request.Status = status
		request.DecidedBy = deciderID
		request.DecidedAt = &now
		request.RejectionReason = reason

		if request.Kind == sqlite.KindVacation {
			year := request.Span.Range.Start.Year()
			bal, err := tx.GetBalance(ctx, request.EmployeeID, year)
			if err != nil {
				return fmt.Errorf("failed to load balance: %w", err)
			}
			if bal == nil {
				return ErrBalanceNotFound
			}

			bal.Balance.Pending = bal.Balance.Pending.Sub(request.WorkDays)
			if status == sqlite.StatusApproved {
				bal.Balance.Used = bal.Balance.Used.Add(request.WorkDays)
			}
			if err := tx.SaveBalance(ctx, *bal); err != nil {
				return fmt.Errorf("failed to update balance: %w", err)
			}
		}

		if err := tx.SaveRequest(ctx, *request); err != nil {
			return fmt.Errorf("failed to save request: %w", err)
		}
		decided = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs.Logger.Info("leave request decided",
		slog.String("request_id", decided.ID),
		slog.String("status", decided.Status),
		slog.String("decided_by", deciderID),
	)
	return decided, nil
}

// =============================================================================
// BALANCE VIEW - What the employee sees
// =============================================================================

// BalanceView is the user-facing balance summary. Remaining is derived at
// read time from the five stored fields.
type BalanceView struct {
	EmployeeID  string
	Year        int
	Entitled    decimal.Decimal
	CarriedOver decimal.Decimal
	Adjustment  decimal.Decimal
	Used        decimal.Decimal
	Pending     decimal.Decimal
	Remaining   decimal.Decimal
	// CarryoverExpiresOn is the zero date when no expiry applies.
	CarryoverExpiresOn engine.Date
}

// GetBalanceView loads an employee's balance for a year and derives the
// remaining amount.
func (rs *RequestService) GetBalanceView(ctx context.Context, employeeID string, year int) (*BalanceView, error) {
	rec, err := rs.Store.GetBalance(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}
	if rec == nil {
		return nil, ErrBalanceNotFound
	}

	return &BalanceView{
		EmployeeID:         rec.EmployeeID,
		Year:               rec.Year,
		Entitled:           rec.Balance.Entitled,
		CarriedOver:        rec.Balance.CarriedOver,
		Adjustment:         rec.Balance.Adjustment,
		Used:               rec.Balance.Used,
		Pending:            rec.Balance.Pending,
		Remaining:          rec.Balance.Remaining(),
		CarryoverExpiresOn: rec.CarryoverExpiresOn,
	}, nil
}

// Adjust applies a manual correction to an employee's balance.
func (rs *RequestService) Adjust(ctx context.Context, employeeID string, year int, delta decimal.Decimal) (*BalanceView, error) {
	err := rs.Store.WithTx(ctx, func(tx *sqlite.Tx) error {
		bal, err := tx.GetBalance(ctx, employeeID, year)
		if err != nil {
			return fmt.Errorf("failed to load balance: %w", err)
		}
		if bal == nil {
			return ErrBalanceNotFound
		}
		bal.Balance.Adjustment = bal.Balance.Adjustment.Add(delta)
		return tx.SaveBalance(ctx, *bal)
	})
	if err != nil {
		return nil, err
	}

	rs.Logger.Info("balance adjusted",
		slog.String("employee_id", employeeID),
		slog.Int("year", year),
		slog.String("delta", delta.String()),
	)
	return rs.GetBalanceView(ctx, employeeID, year)
}
