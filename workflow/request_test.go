package workflow_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cderinbogaz/zeitpal-sub001/engine"
	"github.com/cderinbogaz/zeitpal-sub001/store/sqlite"
	"github.com/cderinbogaz/zeitpal-sub001/workflow"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func days(n float64) decimal.Decimal {
	return decimal.NewFromFloat(n)
}

func date(year int, month time.Month, day int) engine.Date {
	return engine.NewDate(year, month, day)
}

func span(start, end engine.Date) engine.LeaveSpan {
	return engine.LeaveSpan{Range: engine.DateRange{Start: start, End: end}}
}

// seedEmployee creates a standard policy, a full-time employee on it, and
// a 2024 balance of 30 entitled days.
func seedEmployee(t *testing.T, store *sqlite.Store, id string) {
	ctx := context.Background()

	require.NoError(t, store.SavePolicy(ctx, sqlite.PolicyRecord{
		ID:   "standard",
		Name: "Standard Full-Time",
		Policy: engine.LeavePolicy{
			Name:                  "Standard Full-Time",
			AnnualEntitlementDays: days(30),
			CarryoverEnabled:      true,
			CarryoverMaxDays:      days(5),
			CarryoverExpiry:       engine.MonthDay{Month: time.March, Day: 31},
			SickCertificateDays:   3,
			FullTimeWeeklyHours:   days(40),
			CountryCode:           "DE",
		},
	}))

	require.NoError(t, store.SaveEmployee(ctx, sqlite.Employee{
		ID:          id,
		Name:        "Test Employee",
		StartDate:   date(2022, time.January, 1),
		WeeklyHours: days(40),
		PolicyID:    "standard",
		CountryCode: "DE",
	}))

	require.NoError(t, store.SaveBalance(ctx, sqlite.BalanceRecord{
		EmployeeID: id,
		Year:       2024,
		Balance:    engine.Balance{Entitled: days(30)},
	}))
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmit_HoldsPendingAndSizesSpan(t *testing.T) {
	// GIVEN: A full week request (Mon Jun 3 - Fri Jun 7 2024), no holidays
	// WHEN: Submitting
	// THEN: 5 work days held as pending, remaining drops to 25

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())
	ctx := context.Background()

	result, err := svc.Submit(ctx, workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 7)),
	})
	require.NoError(t, err)
	assert.Equal(t, sqlite.StatusPending, result.Request.Status)
	assert.True(t, result.Request.WorkDays.Equal(days(5)))

	view, err := svc.GetBalanceView(ctx, "emp-1", 2024)
	require.NoError(t, err)
	assert.True(t, view.Pending.Equal(days(5)))
	assert.True(t, view.Remaining.Equal(days(25)))
}

func TestSubmit_HolidayShortensSpan(t *testing.T) {
	// GIVEN: A holiday inside the requested week
	// WHEN: Submitting Mon-Fri
	// THEN: Only 4 work days are held

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	require.NoError(t, store.SaveHoliday(context.Background(), sqlite.Holiday{
		ID:          "hol-1",
		CountryCode: "DE",
		Date:        date(2024, time.June, 5),
		Name:        "Regional Day",
	}))
	svc := workflow.NewRequestService(store, quietLogger())

	result, err := svc.Submit(context.Background(), workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 7)),
	})
	require.NoError(t, err)
	assert.True(t, result.Request.WorkDays.Equal(days(4)))
}

func TestSubmit_WeekendOnly_Rejected(t *testing.T) {
	// GIVEN: A Saturday-Sunday span
	// WHEN: Submitting
	// THEN: Rejected as containing no work days

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())

	_, err := svc.Submit(context.Background(), workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 1), date(2024, time.June, 2)),
	})
	assert.ErrorIs(t, err, workflow.ErrZeroWorkDays)
}

func TestSubmit_Overlap_Rejected(t *testing.T) {
	// GIVEN: An existing pending request for Jun 3-7
	// WHEN: Submitting a span that touches its last day
	// THEN: Rejected with the conflicting range

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())
	ctx := context.Background()

	_, err := svc.Submit(ctx, workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 7)),
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 7), date(2024, time.June, 11)),
	})
	assert.ErrorIs(t, err, workflow.ErrOverlappingRequest)

	var overlapErr *workflow.OverlapError
	require.ErrorAs(t, err, &overlapErr)
	assert.Len(t, overlapErr.Conflicts, 1)
}

func TestSubmit_InsufficientBalance_Rejected(t *testing.T) {
	// GIVEN: Only 2 remaining days (28 already used)
	// WHEN: Submitting a 5-day request
	// THEN: Rejected with the shortfall details, balance untouched

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	ctx := context.Background()
	require.NoError(t, store.SaveBalance(ctx, sqlite.BalanceRecord{
		EmployeeID: "emp-1",
		Year:       2024,
		Balance:    engine.Balance{Entitled: days(30), Used: days(28)},
	}))
	svc := workflow.NewRequestService(store, quietLogger())

	_, err := svc.Submit(ctx, workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 7)),
	})
	assert.ErrorIs(t, err, workflow.ErrInsufficientBalance)

	var balErr *workflow.InsufficientBalanceError
	require.ErrorAs(t, err, &balErr)
	assert.True(t, balErr.Remaining.Equal(days(2)))
	assert.True(t, balErr.Requested.Equal(days(5)))

	view, err := svc.GetBalanceView(ctx, "emp-1", 2024)
	require.NoError(t, err)
	assert.True(t, view.Pending.IsZero(), "failed submission must not hold pending days")
}

func TestSubmit_UnknownEmployee_Rejected(t *testing.T) {
	// GIVEN: No such employee
	// WHEN: Submitting
	// THEN: Not-found error

	store := newTestStore(t)
	svc := workflow.NewRequestService(store, quietLogger())

	_, err := svc.Submit(context.Background(), workflow.SubmitInput{
		EmployeeID: "ghost",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 7)),
	})
	assert.ErrorIs(t, err, workflow.ErrEmployeeNotFound)
}

func TestSubmit_SickLeave_CertificateAboveThreshold(t *testing.T) {
	// GIVEN: A 4-calendar-day sick span against a 3-day threshold
	// WHEN: Submitting
	// THEN: Certificate required; vacation balance untouched

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())
	ctx := context.Background()

	result, err := svc.Submit(ctx, workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindSick,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 6)),
	})
	require.NoError(t, err)
	assert.True(t, result.CertificateRequired)

	view, err := svc.GetBalanceView(ctx, "emp-1", 2024)
	require.NoError(t, err)
	assert.True(t, view.Pending.IsZero(), "sick leave must not hold vacation days")
}

func TestSubmit_SickLeave_NoCertificateAtThreshold(t *testing.T) {
	// GIVEN: A sick span exactly at the 3-day threshold
	// WHEN: Submitting
	// THEN: No certificate required yet

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())

	result, err := svc.Submit(context.Background(), workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindSick,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 5)),
	})
	require.NoError(t, err)
	assert.False(t, result.CertificateRequired)
}

// =============================================================================
// DECISION TESTS
// =============================================================================

func submitWeek(t *testing.T, svc *workflow.RequestService) string {
	t.Helper()
	result, err := svc.Submit(context.Background(), workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 7)),
	})
	require.NoError(t, err)
	return result.Request.ID
}

func TestApprove_MovesPendingToUsed(t *testing.T) {
	// GIVEN: A pending 5-day request
	// WHEN: Approving
	// THEN: Pending released, used increased, remaining unchanged

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())
	ctx := context.Background()
	id := submitWeek(t, svc)

	approved, err := svc.Approve(ctx, id, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, sqlite.StatusApproved, approved.Status)
	assert.Equal(t, "manager-1", approved.DecidedBy)
	require.NotNil(t, approved.DecidedAt)

	view, err := svc.GetBalanceView(ctx, "emp-1", 2024)
	require.NoError(t, err)
	assert.True(t, view.Pending.IsZero())
	assert.True(t, view.Used.Equal(days(5)))
	assert.True(t, view.Remaining.Equal(days(25)))
}

func TestReject_ReleasesPending(t *testing.T) {
	// GIVEN: A pending 5-day request
	// WHEN: Rejecting
	// THEN: Pending released, nothing used

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())
	ctx := context.Background()
	id := submitWeek(t, svc)

	rejected, err := svc.Reject(ctx, id, "manager-1", "team is at capacity")
	require.NoError(t, err)
	assert.Equal(t, sqlite.StatusRejected, rejected.Status)
	assert.Equal(t, "team is at capacity", rejected.RejectionReason)

	view, err := svc.GetBalanceView(ctx, "emp-1", 2024)
	require.NoError(t, err)
	assert.True(t, view.Pending.IsZero())
	assert.True(t, view.Used.IsZero())
	assert.True(t, view.Remaining.Equal(days(30)))
}

func TestCancel_ReleasesPending(t *testing.T) {
	// GIVEN: A pending request
	// WHEN: The employee cancels it
	// THEN: Pending released and the span is free to request again

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())
	ctx := context.Background()
	id := submitWeek(t, svc)

	cancelled, err := svc.Cancel(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sqlite.StatusCancelled, cancelled.Status)

	// Same span can be requested again.
	_, err = svc.Submit(ctx, workflow.SubmitInput{
		EmployeeID: "emp-1",
		Kind:       sqlite.KindVacation,
		Span:       span(date(2024, time.June, 3), date(2024, time.June, 7)),
	})
	assert.NoError(t, err)
}

func TestDecide_OnlyPendingTransitions(t *testing.T) {
	// GIVEN: An already approved request
	// WHEN: Rejecting it
	// THEN: Invalid transition

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())
	ctx := context.Background()
	id := submitWeek(t, svc)

	_, err := svc.Approve(ctx, id, "manager-1")
	require.NoError(t, err)

	_, err = svc.Reject(ctx, id, "manager-1", "too late")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	var trErr *workflow.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, sqlite.StatusApproved, trErr.Status)
}

// =============================================================================
// PREVIEW AND ADJUSTMENT TESTS
// =============================================================================

func TestPreview_NoSideEffects(t *testing.T) {
	// GIVEN: A valid span
	// WHEN: Previewing
	// THEN: The size is returned and nothing is stored

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())
	ctx := context.Background()

	got, err := svc.Preview(ctx, "emp-1", engine.LeaveSpan{
		Range:        engine.DateRange{Start: date(2024, time.June, 3), End: date(2024, time.June, 7)},
		StartHalfDay: engine.HalfDayAfternoon,
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(days(4.5)))

	requests, err := store.ListRequestsByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestPreview_DegenerateSpan_Zero(t *testing.T) {
	// GIVEN: An inverted range, as UI code builds while the user types
	// WHEN: Previewing
	// THEN: Zero, no error

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())

	got, err := svc.Preview(context.Background(), "emp-1",
		span(date(2024, time.June, 7), date(2024, time.June, 3)))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestPreview_NoCountryCode_IgnoresHolidays(t *testing.T) {
	// GIVEN: An employee without a country code and a stored holiday on
	// the span (public-holiday handling is opted out by the empty code)
	// WHEN: Previewing a full work week over that holiday
	// THEN: All five days count

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	ctx := context.Background()
	require.NoError(t, store.SaveEmployee(ctx, sqlite.Employee{
		ID:          "emp-nc",
		Name:        "No Country",
		StartDate:   date(2022, time.January, 1),
		WeeklyHours: days(40),
		PolicyID:    "standard",
	}))
	require.NoError(t, store.SaveHoliday(ctx, sqlite.Holiday{
		ID:   "hol-nc",
		Date: date(2024, time.June, 5),
		Name: "Floating Day",
	}))

	svc := workflow.NewRequestService(store, quietLogger())
	got, err := svc.Preview(ctx, "emp-nc",
		span(date(2024, time.June, 3), date(2024, time.June, 7)))
	require.NoError(t, err)
	assert.True(t, got.Equal(days(5)), "holiday must not shorten the span")
}

func TestAdjust_ChangesRemaining(t *testing.T) {
	// GIVEN: A seeded 30-day balance
	// WHEN: Applying a -3 day correction
	// THEN: Remaining reflects the adjustment

	store := newTestStore(t)
	seedEmployee(t, store, "emp-1")
	svc := workflow.NewRequestService(store, quietLogger())

	view, err := svc.Adjust(context.Background(), "emp-1", 2024, days(-3))
	require.NoError(t, err)
	assert.True(t, view.Adjustment.Equal(days(-3)))
	assert.True(t, view.Remaining.Equal(days(27)))
}
