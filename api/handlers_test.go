/*
handlers_test.go - HTTP-level tests for the API

Tests for:
- Employee creation and lookup
- Request preview, submission, approval and conflict handling
- Balance reads with derived remaining
- Holiday management and its effect on work-day sizing
- Policy config validation
- Year-end batch trigger
*/
package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cderinbogaz/zeitpal-sub001/factory"
	"github.com/cderinbogaz/zeitpal-sub001/store/sqlite"
	"github.com/cderinbogaz/zeitpal-sub001/workflow"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	requests := workflow.NewRequestService(store, logger)
	yearEnd := workflow.NewYearEndService(store, logger)
	onboarding := workflow.NewOnboardingService(store, logger)

	h := NewHandler(store, requests, yearEnd, onboarding)
	srv := httptest.NewServer(NewRouter(h, nil))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

// seedFixtures creates the standard policy, one employee and a seeded 2024
// balance through the public API.
func seedFixtures(t *testing.T, srv *httptest.Server) {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/policies", CreatePolicyRequest{
		ID:     "standard",
		Config: factory.StandardFullTimeJSON("DE", 30),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/employees", CreateEmployeeRequest{
		ID:          "emp-1",
		Name:        "Mara Weber",
		Email:       "mara@example.com",
		StartDate:   "2022-01-01",
		WeeklyHours: 40,
		PolicyID:    "standard",
		CountryCode: "DE",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/admin/balances", SeedBalanceRequest{
		EmployeeID: "emp-1",
		Year:       2024,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}

func getBalance(t *testing.T, srv *httptest.Server, employeeID string, year int) BalanceDTO {
	t.Helper()

	resp, body := doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/employees/%s/balance?year=%d", srv.URL, employeeID, year), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var dto BalanceDTO
	require.NoError(t, json.Unmarshal(body, &dto))
	return dto
}

func TestCreateAndGetEmployee(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/employees/emp-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dto EmployeeDTO
	require.NoError(t, json.Unmarshal(body, &dto))
	assert.Equal(t, "Mara Weber", dto.Name)
	assert.Equal(t, "2022-01-01", dto.StartDate)
	assert.Equal(t, "standard", dto.PolicyID)
}

func TestCreateEmployee_UnknownPolicy(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/employees", CreateEmployeeRequest{
		Name:      "Nobody",
		StartDate: "2024-01-01",
		PolicyID:  "missing",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSeededBalance(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	bal := getBalance(t, srv, "emp-1", 2024)
	assert.Equal(t, "30", bal.Entitled)
	assert.Equal(t, "30", bal.Remaining)
	assert.Equal(t, "0", bal.Pending)
}

func TestSubmitAndApproveFlow(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	// Mon Jun 3 - Fri Jun 7 2024: five work days
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/employees/emp-1/requests", SubmitLeaveRequest{
		Kind:      "vacation",
		StartDate: "2024-06-03",
		EndDate:   "2024-06-07",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var dto LeaveRequestDTO
	require.NoError(t, json.Unmarshal(body, &dto))
	assert.Equal(t, "5", dto.WorkDays)
	assert.Equal(t, sqlite.StatusPending, dto.Status)

	bal := getBalance(t, srv, "emp-1", 2024)
	assert.Equal(t, "5", bal.Pending)
	assert.Equal(t, "25", bal.Remaining)

	resp, body = doJSON(t, http.MethodPost,
		srv.URL+"/api/requests/"+dto.ID+"/approve", DecisionRequest{DeciderID: "mgr-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var approved LeaveRequestDTO
	require.NoError(t, json.Unmarshal(body, &approved))
	assert.Equal(t, sqlite.StatusApproved, approved.Status)
	assert.Equal(t, "mgr-1", approved.DecidedBy)

	bal = getBalance(t, srv, "emp-1", 2024)
	assert.Equal(t, "0", bal.Pending)
	assert.Equal(t, "5", bal.Used)
	assert.Equal(t, "25", bal.Remaining)
}

func TestSubmitOverlap_Conflict(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/employees/emp-1/requests", SubmitLeaveRequest{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-07",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// Overlaps the first span on Jun 7
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/employees/emp-1/requests", SubmitLeaveRequest{
		StartDate: "2024-06-07",
		EndDate:   "2024-06-10",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSubmitWeekendOnly_BadRequest(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	// Sat Jun 8 - Sun Jun 9 2024
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/employees/emp-1/requests", SubmitLeaveRequest{
		StartDate: "2024-06-08",
		EndDate:   "2024-06-09",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSickRequest_CertificateFlag(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	// Mon Jun 3 - Thu Jun 6: four calendar days, past the DE threshold
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/employees/emp-1/requests", SubmitLeaveRequest{
		Kind:      "sick",
		StartDate: "2024-06-03",
		EndDate:   "2024-06-06",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var dto LeaveRequestDTO
	require.NoError(t, json.Unmarshal(body, &dto))
	assert.True(t, dto.CertificateRequired)

	// Sick leave never holds vacation days
	bal := getBalance(t, srv, "emp-1", 2024)
	assert.Equal(t, "0", bal.Pending)
}

func TestPreview_DoesNotPersist(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/requests/preview", PreviewRequest{
		EmployeeID:   "emp-1",
		StartDate:    "2024-06-03",
		EndDate:      "2024-06-07",
		StartHalfDay: "afternoon",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var preview PreviewDTO
	require.NoError(t, json.Unmarshal(body, &preview))
	assert.Equal(t, "4.5", preview.WorkDays)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/employees/emp-1/requests", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var requests []LeaveRequestDTO
	require.NoError(t, json.Unmarshal(body, &requests))
	assert.Empty(t, requests)
}

func TestHoliday_ShortensPreview(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/holidays", CreateHolidayRequest{
		CountryCode: "DE",
		Date:        "2024-06-05",
		Name:        "Company Day",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/requests/preview", PreviewRequest{
		EmployeeID: "emp-1",
		StartDate:  "2024-06-03",
		EndDate:    "2024-06-07",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var preview PreviewDTO
	require.NoError(t, json.Unmarshal(body, &preview))
	assert.Equal(t, "4", preview.WorkDays)
}

func TestCreatePolicy_InvalidConfig(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/policies", CreatePolicyRequest{
		ID:     "broken",
		Config: `{"id": "broken", "name": "Broken", "annual_entitlement_days": 0}`,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdjustment(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/admin/adjustments", AdjustmentRequest{
		EmployeeID: "emp-1",
		Year:       2024,
		Delta:      -3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var bal BalanceDTO
	require.NoError(t, json.Unmarshal(body, &bal))
	assert.Equal(t, "-3", bal.Adjustment)
	assert.Equal(t, "27", bal.Remaining)
}

func TestYearEndBatch(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/admin/yearend", YearEndRequest{Year: 2024})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var report YearEndReportDTO
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 1, report.Processed)

	// Untouched 2024 balance of 30 carries the capped 5 into 2025
	bal := getBalance(t, srv, "emp-1", 2025)
	assert.Equal(t, "30", bal.Entitled)
	assert.Equal(t, "5", bal.CarriedOver)
	assert.Equal(t, "35", bal.Remaining)
	assert.Equal(t, "2025-03-31", bal.CarryoverExpiresOn)
}

func TestPendingList(t *testing.T) {
	srv := newTestServer(t)
	seedFixtures(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/employees/emp-1/requests", SubmitLeaveRequest{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-04",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var submitted LeaveRequestDTO
	require.NoError(t, json.Unmarshal(body, &submitted))

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/requests/pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending []LeaveRequestDTO
	require.NoError(t, json.Unmarshal(body, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, submitted.ID, pending[0].ID)

	// Cancelling empties the list again
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/requests/"+submitted.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/requests/pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pending = nil
	require.NoError(t, json.Unmarshal(body, &pending))
	assert.Empty(t, pending)
}
