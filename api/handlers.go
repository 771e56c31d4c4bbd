/*
handlers.go - HTTP API handlers for the leave accounting engine

PURPOSE:
  Exposes the leave accounting engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the workflow
  services.

ENDPOINTS:
  Employees:
    GET    /api/employees                  List all employees
    POST   /api/employees                  Create employee
    GET    /api/employees/{id}             Get employee details
    GET    /api/employees/{id}/balance     Computed balance (?year=YYYY)
    GET    /api/employees/{id}/requests    Request history
    POST   /api/employees/{id}/requests    Submit leave request

  Requests:
    POST   /api/requests/preview           Size a span without persisting
    GET    /api/requests/pending           All pending requests
    POST   /api/requests/{id}/approve      Approve (pending only)
    POST   /api/requests/{id}/reject       Reject (pending only)
    POST   /api/requests/{id}/cancel       Cancel (pending only)

  Policies:
    GET    /api/policies                   List policies
    POST   /api/policies                   Create policy from JSON config
    GET    /api/policies/{id}              Get policy

  Holidays:
    GET    /api/holidays                   List (?country=DE&region=BY)
    POST   /api/holidays                   Create holiday
    DELETE /api/holidays/{id}              Delete holiday

  Admin:
    POST   /api/admin/yearend              Run year-end batch for a year
    POST   /api/admin/adjustments          Manual balance adjustment
    POST   /api/admin/balances             Seed a new hire's first balance

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (overlapping request, duplicate seed)
  - 422: Business rule rejection (insufficient balance, bad transition)
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - workflow: the services these handlers delegate to
*/
package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cderinbogaz/zeitpal-sub001/engine"
	"github.com/cderinbogaz/zeitpal-sub001/factory"
	"github.com/cderinbogaz/zeitpal-sub001/store/sqlite"
	"github.com/cderinbogaz/zeitpal-sub001/workflow"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *sqlite.Store
	Requests   *workflow.RequestService
	YearEnd    *workflow.YearEndService
	Onboarding *workflow.OnboardingService

	// Track currently loaded demo scenario
	currentScenario string
}

// NewHandler wires a handler to the store and the workflow services.
func NewHandler(store *sqlite.Store, requests *workflow.RequestService,
	yearEnd *workflow.YearEndService, onboarding *workflow.OnboardingService) *Handler {
	return &Handler{
		Store:      store,
		Requests:   requests,
		YearEnd:    yearEnd,
		Onboarding: onboarding,
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := engine.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	if req.Name == "" || req.PolicyID == "" {
		writeError(w, http.StatusBadRequest, "name and policy_id are required", nil)
		return
	}

	if policy, err := h.Store.GetPolicy(r.Context(), req.PolicyID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up policy", err)
		return
	} else if policy == nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown policy %q", req.PolicyID), nil)
		return
	}

	emp := sqlite.Employee{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		StartDate:   startDate,
		WeeklyHours: decimal.NewFromFloat(req.WeeklyHours),
		PolicyID:    req.PolicyID,
		CountryCode: req.CountryCode,
		RegionCode:  req.RegionCode,
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	if emp.CountryCode == "" {
		emp.CountryCode = engine.DefaultJurisdiction.Code
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// =============================================================================
// BALANCE HANDLERS
// =============================================================================

// GetBalance returns the computed balance for an employee-year. The year
// defaults to the current year; remaining is derived, never read from disk.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	year := time.Now().UTC().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		if _, err := fmt.Sscanf(y, "%d", &year); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
	}

	view, err := h.Requests.GetBalanceView(r.Context(), employeeID, year)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTO(view))
}

// CreateAdjustment applies a manual delta to a balance.
func (h *Handler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var req AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" || req.Year == 0 {
		writeError(w, http.StatusBadRequest, "employee_id and year are required", nil)
		return
	}

	view, err := h.Requests.Adjust(r.Context(), req.EmployeeID, req.Year, decimal.NewFromFloat(req.Delta))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTO(view))
}

// SeedBalance creates the first balance row for a new hire, pro-rated by
// start date and weekly hours.
func (h *Handler) SeedBalance(w http.ResponseWriter, r *http.Request) {
	var req SeedBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" || req.Year == 0 {
		writeError(w, http.StatusBadRequest, "employee_id and year are required", nil)
		return
	}

	rec, err := h.Onboarding.SeedBalance(r.Context(), req.EmployeeID, req.Year)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, BalanceDTO{
		EmployeeID:  rec.EmployeeID,
		Year:        rec.Year,
		Entitled:    rec.Balance.Entitled.String(),
		CarriedOver: rec.Balance.CarriedOver.String(),
		Adjustment:  rec.Balance.Adjustment.String(),
		Used:        rec.Balance.Used.String(),
		Pending:     rec.Balance.Pending.String(),
		Remaining:   rec.Balance.Remaining().String(),
	})
}

// =============================================================================
// LEAVE REQUEST HANDLERS
// =============================================================================

// PreviewRequest sizes a hypothetical span for an employee. Nothing is
// persisted, so the UI can call this on every date change.
func (h *Handler) PreviewRequest(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	span, err := parseSpan(req.StartDate, req.EndDate, req.StartHalfDay, req.EndHalfDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid span", err)
		return
	}

	workDays, err := h.Requests.Preview(r.Context(), req.EmployeeID, span)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PreviewDTO{WorkDays: workDays.String()})
}

// SubmitRequest submits a leave request for an employee.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	kind := req.Kind
	if kind == "" {
		kind = sqlite.KindVacation
	}
	if kind != sqlite.KindVacation && kind != sqlite.KindSick {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown kind %q", req.Kind), nil)
		return
	}

	span, err := parseSpan(req.StartDate, req.EndDate, req.StartHalfDay, req.EndHalfDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid span", err)
		return
	}

	result, err := h.Requests.Submit(r.Context(), workflow.SubmitInput{
		EmployeeID: employeeID,
		Kind:       kind,
		Span:       span,
		Reason:     req.Reason,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	dto := toRequestDTO(*result.Request)
	dto.CertificateRequired = result.CertificateRequired
	writeJSON(w, http.StatusCreated, dto)
}

// ListEmployeeRequests returns an employee's request history.
func (h *Handler) ListEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	requests, err := h.Store.ListRequestsByEmployee(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

// ListPendingRequests returns all pending requests across employees.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListPendingRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending requests", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

// ApproveRequest approves a pending request, moving its days from pending
// to used.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := h.Requests.Approve(r.Context(), requestID, req.DeciderID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*updated))
}

// RejectRequest rejects a pending request, releasing its held days.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := h.Requests.Reject(r.Context(), requestID, req.DeciderID, req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*updated))
}

// CancelRequest lets an employee withdraw a pending request.
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	updated, err := h.Requests.Cancel(r.Context(), requestID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*updated))
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

// ListPolicies returns all policies.
func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListPolicies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}

	dtos := make([]PolicyDTO, len(records))
	for i, rec := range records {
		dtos[i] = toPolicyDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPolicy returns a single policy.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetPolicy(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get policy", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Policy not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toPolicyDTO(*rec))
}

// CreatePolicy parses a JSON policy config and stores it. Invalid configs
// never reach the database.
func (h *Handler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	policy, err := factory.ParsePolicy(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid policy config", err)
		return
	}

	rec := sqlite.PolicyRecord{ID: req.ID, Name: policy.Name, Policy: policy}
	if err := h.Store.SavePolicy(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save policy", err)
		return
	}

	saved, err := h.Store.GetPolicy(r.Context(), req.ID)
	if err != nil || saved == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload policy", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPolicyDTO(*saved))
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns holidays, optionally filtered by country and region.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	region := r.URL.Query().Get("region")

	holidays, err := h.Store.ListHolidays(r.Context(), country, region)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{
			ID:          hol.ID,
			CountryCode: hol.CountryCode,
			RegionCode:  hol.RegionCode,
			Date:        hol.Date.String(),
			Name:        hol.Name,
			Recurring:   hol.Recurring,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a public holiday to the calendar.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.CountryCode == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "country_code and name are required", nil)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	hol := sqlite.Holiday{
		ID:          uuid.NewString(),
		CountryCode: req.CountryCode,
		RegionCode:  req.RegionCode,
		Date:        date,
		Name:        req.Name,
		Recurring:   req.Recurring,
	}
	if err := h.Store.SaveHoliday(r.Context(), hol); err != nil {
		if sqlite.IsDuplicate(err) {
			writeError(w, http.StatusConflict, "Holiday already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}

	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID:          hol.ID,
		CountryCode: hol.CountryCode,
		RegionCode:  hol.RegionCode,
		Date:        hol.Date.String(),
		Name:        hol.Name,
		Recurring:   hol.Recurring,
	})
}

// DeleteHoliday removes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// TriggerYearEnd runs the year-end batch for the given year. Employees
// already closed for that year are skipped, so re-running is safe.
func (h *Handler) TriggerYearEnd(w http.ResponseWriter, r *http.Request) {
	var req YearEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Year == 0 {
		writeError(w, http.StatusBadRequest, "year is required", nil)
		return
	}

	report, err := h.YearEnd.ProcessYear(r.Context(), req.Year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Year-end batch failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toYearEndReportDTO(report))
}

// =============================================================================
// DTO CONVERSION
// =============================================================================

func toEmployeeDTO(e sqlite.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		StartDate:   e.StartDate.String(),
		WeeklyHours: e.WeeklyHours.String(),
		PolicyID:    e.PolicyID,
		CountryCode: e.CountryCode,
		RegionCode:  e.RegionCode,
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toBalanceDTO(v *workflow.BalanceView) BalanceDTO {
	dto := BalanceDTO{
		EmployeeID:  v.EmployeeID,
		Year:        v.Year,
		Entitled:    v.Entitled.String(),
		CarriedOver: v.CarriedOver.String(),
		Adjustment:  v.Adjustment.String(),
		Used:        v.Used.String(),
		Pending:     v.Pending.String(),
		Remaining:   v.Remaining.String(),
	}
	if !v.CarryoverExpiresOn.IsZero() {
		dto.CarryoverExpiresOn = v.CarryoverExpiresOn.String()
	}
	return dto
}

func toRequestDTO(r sqlite.LeaveRequest) LeaveRequestDTO {
	dto := LeaveRequestDTO{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Kind:            r.Kind,
		StartDate:       r.Span.Range.Start.String(),
		EndDate:         r.Span.Range.End.String(),
		StartHalfDay:    string(r.Span.StartHalfDay),
		EndHalfDay:      string(r.Span.EndHalfDay),
		Status:          r.Status,
		WorkDays:        r.WorkDays.String(),
		Reason:          r.Reason,
		DecidedBy:       r.DecidedBy,
		RejectionReason: r.RejectionReason,
	}
	if r.DecidedAt != nil {
		dto.DecidedAt = r.DecidedAt.Format(time.RFC3339)
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toRequestDTOs(requests []sqlite.LeaveRequest) []LeaveRequestDTO {
	dtos := make([]LeaveRequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = toRequestDTO(r)
	}
	return dtos
}

func toPolicyDTO(rec sqlite.PolicyRecord) PolicyDTO {
	dto := PolicyDTO{
		ID:      rec.ID,
		Name:    rec.Name,
		Config:  factory.ToJSON(rec.ID, rec.Policy),
		Version: rec.Version,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toYearEndReportDTO(report *workflow.YearEndReport) YearEndReportDTO {
	dto := YearEndReportDTO{
		Year:      report.Year,
		Processed: report.Processed,
		Skipped:   report.Skipped,
		Failed:    report.Failed,
		Results:   make([]YearEndResultDTO, len(report.Results)),
	}
	for i, res := range report.Results {
		rd := YearEndResultDTO{
			EmployeeID: res.EmployeeID,
			Skipped:    res.Skipped,
		}
		if res.Err != nil {
			rd.Error = res.Err.Error()
		} else if !res.Skipped {
			rd.CarriedOver = res.CarriedOver.String()
			rd.Expired = res.Expired
			rd.NewEntitled = res.NewEntitled.String()
		}
		dto.Results[i] = rd
	}
	return dto
}

// =============================================================================
// HELPERS
// =============================================================================

func parseSpan(start, end, startHalf, endHalf string) (engine.LeaveSpan, error) {
	startDate, err := engine.ParseDate(start)
	if err != nil {
		return engine.LeaveSpan{}, fmt.Errorf("invalid start_date: %w", err)
	}
	endDate, err := engine.ParseDate(end)
	if err != nil {
		return engine.LeaveSpan{}, fmt.Errorf("invalid end_date: %w", err)
	}

	sh, err := parseHalfDay(startHalf)
	if err != nil {
		return engine.LeaveSpan{}, err
	}
	eh, err := parseHalfDay(endHalf)
	if err != nil {
		return engine.LeaveSpan{}, err
	}

	return engine.LeaveSpan{
		Range:        engine.NewDateRange(startDate, endDate),
		StartHalfDay: sh,
		EndHalfDay:   eh,
	}, nil
}

func parseHalfDay(s string) (engine.HalfDay, error) {
	switch engine.HalfDay(s) {
	case engine.HalfDayNone, engine.HalfDayMorning, engine.HalfDayAfternoon:
		return engine.HalfDay(s), nil
	default:
		return engine.HalfDayNone, fmt.Errorf("invalid half-day marker %q", s)
	}
}

// writeServiceError maps workflow errors to HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case workflow.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, workflow.ErrOverlappingRequest),
		errors.Is(err, workflow.ErrBalanceAlreadySeeded):
		writeError(w, http.StatusConflict, "Conflict", err)
	case errors.Is(err, workflow.ErrInsufficientBalance),
		errors.Is(err, workflow.ErrInvalidTransition):
		writeError(w, http.StatusUnprocessableEntity, "Request rejected", err)
	case errors.Is(err, workflow.ErrZeroWorkDays):
		writeError(w, http.StatusBadRequest, "Span contains no work days", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
