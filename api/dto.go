/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Employee:
    EmployeeDTO, CreateEmployeeRequest

  Balance:
    BalanceDTO, AdjustmentRequest, SeedBalanceRequest

  Leave requests:
    SubmitLeaveRequest, LeaveRequestDTO, DecisionRequest,
    PreviewRequest, PreviewDTO

  Policy:
    PolicyDTO (wraps factory.PolicyJSON), CreatePolicyRequest

  Holidays:
    HolidayDTO, CreateHolidayRequest

  Admin:
    YearEndRequest, YearEndReportDTO

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

DECIMAL FIELDS:
  Day quantities travel as JSON strings ("4.5", "30") to avoid float
  drift on the wire. Clients parse them with their own decimal types.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/policy.go: PolicyJSON type
*/
package api

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	StartDate   string `json:"start_date"`
	WeeklyHours string `json:"weekly_hours"`
	PolicyID    string `json:"policy_id"`
	CountryCode string `json:"country_code"`
	RegionCode  string `json:"region_code,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	StartDate   string  `json:"start_date"`
	WeeklyHours float64 `json:"weekly_hours"`
	PolicyID    string  `json:"policy_id"`
	CountryCode string  `json:"country_code"`
	RegionCode  string  `json:"region_code,omitempty"`
}

// =============================================================================
// BALANCES
// =============================================================================

// BalanceDTO is the computed balance view for one employee-year.
// Remaining is derived from the other five fields, never stored.
type BalanceDTO struct {
	EmployeeID         string `json:"employee_id"`
	Year               int    `json:"year"`
	Entitled           string `json:"entitled"`
	CarriedOver        string `json:"carried_over"`
	Adjustment         string `json:"adjustment"`
	Used               string `json:"used"`
	Pending            string `json:"pending"`
	Remaining          string `json:"remaining"`
	CarryoverExpiresOn string `json:"carryover_expires_on,omitempty"`
}

// AdjustmentRequest applies a manual correction to a balance.
type AdjustmentRequest struct {
	EmployeeID string  `json:"employee_id"`
	Year       int     `json:"year"`
	Delta      float64 `json:"delta"`
	Reason     string  `json:"reason,omitempty"`
}

// SeedBalanceRequest creates a first balance for a new hire.
type SeedBalanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// SubmitLeaveRequest is the request body to submit a leave request.
type SubmitLeaveRequest struct {
	Kind         string `json:"kind"` // "vacation" or "sick"
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartHalfDay string `json:"start_half_day,omitempty"` // "morning" or "afternoon"
	EndHalfDay   string `json:"end_half_day,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// LeaveRequestDTO represents a leave request in API responses.
type LeaveRequestDTO struct {
	ID                  string `json:"id"`
	EmployeeID          string `json:"employee_id"`
	Kind                string `json:"kind"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	StartHalfDay        string `json:"start_half_day,omitempty"`
	EndHalfDay          string `json:"end_half_day,omitempty"`
	Status              string `json:"status"`
	WorkDays            string `json:"work_days"`
	Reason              string `json:"reason,omitempty"`
	DecidedBy           string `json:"decided_by,omitempty"`
	DecidedAt           string `json:"decided_at,omitempty"`
	RejectionReason     string `json:"rejection_reason,omitempty"`
	CertificateRequired bool   `json:"certificate_required,omitempty"`
	CreatedAt           string `json:"created_at,omitempty"`
}

// DecisionRequest carries the decider for approve/reject/cancel.
type DecisionRequest struct {
	DeciderID string `json:"decider_id"`
	Reason    string `json:"reason,omitempty"`
}

// PreviewRequest sizes a hypothetical leave span without persisting it.
type PreviewRequest struct {
	EmployeeID   string `json:"employee_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartHalfDay string `json:"start_half_day,omitempty"`
	EndHalfDay   string `json:"end_half_day,omitempty"`
}

// PreviewDTO is the speculative sizing result.
type PreviewDTO struct {
	WorkDays string `json:"work_days"`
}

// =============================================================================
// POLICIES & HOLIDAYS
// =============================================================================

// PolicyDTO represents a policy in API responses.
type PolicyDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Config    any    `json:"config"`
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreatePolicyRequest creates a policy from its JSON config.
type CreatePolicyRequest struct {
	ID     string `json:"id"`
	Config string `json:"config"` // raw policy JSON, parsed by the factory
}

// HolidayDTO represents a public holiday.
type HolidayDTO struct {
	ID          string `json:"id"`
	CountryCode string `json:"country_code"`
	RegionCode  string `json:"region_code,omitempty"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Recurring   bool   `json:"recurring"`
}

// CreateHolidayRequest creates a public holiday.
type CreateHolidayRequest struct {
	CountryCode string `json:"country_code"`
	RegionCode  string `json:"region_code,omitempty"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Recurring   bool   `json:"recurring"`
}

// =============================================================================
// ADMIN
// =============================================================================

// YearEndRequest triggers the year-end batch for one year.
type YearEndRequest struct {
	Year int `json:"year"`
}

// YearEndReportDTO summarizes a year-end batch run.
type YearEndReportDTO struct {
	Year      int                `json:"year"`
	Processed int                `json:"processed"`
	Skipped   int                `json:"skipped"`
	Failed    int                `json:"failed"`
	Results   []YearEndResultDTO `json:"results"`
}

// YearEndResultDTO is one employee's outcome within a batch run.
type YearEndResultDTO struct {
	EmployeeID  string `json:"employee_id"`
	CarriedOver string `json:"carried_over,omitempty"`
	Expired     bool   `json:"expired,omitempty"`
	NewEntitled string `json:"new_entitled,omitempty"`
	Skipped     bool   `json:"skipped,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
