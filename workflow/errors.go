/*
errors.go - Centralized error types for the workflow layer

PURPOSE:
  All workflow errors in one place. The engine itself is total and never
  fails on degenerate numbers; everything that CAN fail - missing records,
  invalid state transitions, business rule violations - surfaces here.

USAGE:
  API handlers translate these with errors.Is/errors.As:

    if errors.Is(err, workflow.ErrInsufficientBalance) {
        respondError(w, http.StatusUnprocessableEntity, err)
    }
*/
package workflow

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cderinbogaz/zeitpal-sub001/engine"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrPolicyNotFound is returned when an employee's policy doesn't exist.
	ErrPolicyNotFound = errors.New("policy not found")

	// ErrRequestNotFound is returned when a referenced request doesn't exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrBalanceNotFound is returned when no balance has been seeded for the
	// employee's accounting year.
	ErrBalanceNotFound = errors.New("no balance for accounting year")

	// ErrInsufficientBalance is returned when a request exceeds the
	// remaining balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOverlappingRequest is returned when a span conflicts with an
	// existing pending or approved request.
	ErrOverlappingRequest = errors.New("overlapping request")

	// ErrZeroWorkDays is returned when a span contains no work days
	// (weekends and holidays only, or an inverted range).
	ErrZeroWorkDays = errors.New("request contains no work days")

	// ErrInvalidTransition is returned when a decision targets a request
	// that is no longer pending.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrBalanceAlreadySeeded is returned when onboarding targets a year
	// that already has a balance.
	ErrBalanceAlreadySeeded = errors.New("balance already seeded")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError carries the shortfall details.
type InsufficientBalanceError struct {
	EmployeeID string
	Remaining  decimal.Decimal
	Requested  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: remaining %v, requested %v",
		e.Remaining, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// OverlapError carries the conflicting ranges.
type OverlapError struct {
	EmployeeID string
	Requested  engine.DateRange
	Conflicts  []engine.DateRange
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("request %s overlaps %d existing request(s)",
		e.Requested, len(e.Conflicts))
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlappingRequest
}

// TransitionError reports a decision on a non-pending request.
type TransitionError struct {
	RequestID string
	Status    string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("can only decide pending requests, request %s is %s",
		e.RequestID, e.Status)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrPolicyNotFound) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrBalanceNotFound)
}

// IsClientError reports whether the error is a business rule violation the
// caller can fix, as opposed to a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrOverlappingRequest) ||
		errors.Is(err, ErrZeroWorkDays) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrBalanceAlreadySeeded)
}
