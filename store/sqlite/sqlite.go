/*
Package sqlite provides the SQLite-backed storage for the leave system.

PURPOSE:
  Implements the persistence the calculation engine treats as external
  collaborators: the policy store, the holiday calendar, and the
  balance/request store. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees:      Employee records with start date and weekly hours
  policies:       Leave policies as versioned JSON configuration
  holidays:       Public holidays per country/region, with recurring flag
  leave_balances: The five stored balance components per employee per year.
                  There is deliberately NO remaining column - remaining is
                  always derived via engine.Balance.Remaining so the stored
                  fields stay the single source of truth.
  leave_requests: Request spans with half-day markers, status, and the
                  work-day count computed at submission time
  yearend_runs:   One row per employee per processed year; makes the
                  year-end batch idempotent

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of WAL mode. Request state
  transitions that touch both a request row and a balance row go through
  WithTx so the two writes commit atomically.

USAGE:
  store, err := sqlite.New("./data/zeitpal.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  Use ":memory:" as the path for tests.

SEE ALSO:
  - engine: the pure calculation core this store feeds
  - workflow: request lifecycle and year-end batch built on this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/cderinbogaz/zeitpal-sub001/engine"
)

// Request lifecycle states. Only pending requests transition.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Request kinds.
const (
	KindVacation = "vacation"
	KindSick     = "sick"
)

// Store implements all storage used by the workflow and API layers.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) a SQLite database at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		start_date TEXT NOT NULL,
		weekly_hours TEXT NOT NULL DEFAULT '0',
		policy_id TEXT NOT NULL,
		country_code TEXT NOT NULL DEFAULT 'DE',
		region_code TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS policies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		country_code TEXT NOT NULL,
		region_code TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_country_date
		ON holidays(country_code, region_code, date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON holidays(country_code, region_code, date, name);

	-- Remaining is derived, never stored: five components only.
	CREATE TABLE IF NOT EXISTS leave_balances (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		entitled TEXT NOT NULL DEFAULT '0',
		carried_over TEXT NOT NULL DEFAULT '0',
		adjustment TEXT NOT NULL DEFAULT '0',
		used TEXT NOT NULL DEFAULT '0',
		pending TEXT NOT NULL DEFAULT '0',
		carryover_expires_on TEXT,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, year)
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'vacation',
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		start_half TEXT NOT NULL DEFAULT '',
		end_half TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		work_days TEXT NOT NULL,
		reason TEXT,
		decided_by TEXT,
		decided_at TEXT,
		rejection_reason TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON leave_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON leave_requests(status);
	CREATE INDEX IF NOT EXISTS idx_requests_employee_dates
		ON leave_requests(employee_id, start_date, end_date);

	CREATE TABLE IF NOT EXISTS yearend_runs (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		carried_over TEXT NOT NULL DEFAULT '0',
		expired BOOLEAN DEFAULT FALSE,
		completed_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, year)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// execer is satisfied by both *sql.DB and *sql.Tx so the read/write helpers
// can run inside or outside an explicit transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// Employee is an employee record.
type Employee struct {
	ID          string
	Name        string
	Email       string
	StartDate   engine.Date
	WeeklyHours decimal.Decimal
	PolicyID    string
	CountryCode string
	RegionCode  string
	CreatedAt   time.Time
}

// SaveEmployee inserts or updates an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, email, start_date, weekly_hours, policy_id, country_code, region_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			start_date = excluded.start_date,
			weekly_hours = excluded.weekly_hours,
			policy_id = excluded.policy_id,
			country_code = excluded.country_code,
			region_code = excluded.region_code
	`

	_, err := s.db.ExecContext(ctx, query,
		emp.ID, emp.Name, emp.Email,
		emp.StartDate.String(),
		emp.WeeklyHours.String(),
		emp.PolicyID, emp.CountryCode, emp.RegionCode,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetEmployee retrieves an employee by ID; nil when not found.
func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, start_date, weekly_hours, policy_id, country_code, region_code, created_at FROM employees WHERE id = ?",
		id,
	)
	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, start_date, weekly_hours, policy_id, country_code, region_code, created_at FROM employees ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	return err
}

func scanEmployee(row rowScanner) (Employee, error) {
	var (
		emp         Employee
		email       sql.NullString
		startDate   string
		weeklyHours string
		createdAt   string
	)
	err := row.Scan(&emp.ID, &emp.Name, &email, &startDate, &weeklyHours,
		&emp.PolicyID, &emp.CountryCode, &emp.RegionCode, &createdAt)
	if err != nil {
		return emp, err
	}
	emp.Email = email.String
	emp.StartDate, _ = engine.ParseDate(startDate)
	emp.WeeklyHours = parseDecimal(weeklyHours)
	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return emp, nil
}

// =============================================================================
// POLICIES
// =============================================================================

// PolicyRecord is a stored leave policy with its JSON configuration.
type PolicyRecord struct {
	ID        string
	Name      string
	Policy    engine.LeavePolicy
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SavePolicy inserts or updates a policy, bumping its version on update.
func (s *Store) SavePolicy(ctx context.Context, rec PolicyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	configJSON, err := json.Marshal(rec.Policy)
	if err != nil {
		return fmt.Errorf("failed to encode policy config: %w", err)
	}

	query := `
		INSERT INTO policies (id, name, config_json, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json,
			version = policies.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, query, rec.ID, rec.Name, string(configJSON), now, now)
	return err
}

// GetPolicy retrieves a policy by ID; nil when not found.
func (s *Store) GetPolicy(ctx context.Context, id string) (*PolicyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		rec                  PolicyRecord
		configJSON           string
		createdAt, updatedAt string
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, config_json, version, created_at, updated_at FROM policies WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.Name, &configJSON, &rec.Version, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(configJSON), &rec.Policy); err != nil {
		return nil, fmt.Errorf("failed to decode policy config: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// ListPolicies returns all policies ordered by name.
func (s *Store) ListPolicies(ctx context.Context) ([]PolicyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, config_json, version, created_at, updated_at FROM policies ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []PolicyRecord
	for rows.Next() {
		var (
			rec                  PolicyRecord
			configJSON           string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &configJSON, &rec.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(configJSON), &rec.Policy); err != nil {
			return nil, fmt.Errorf("failed to decode policy config: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		policies = append(policies, rec)
	}
	return policies, rows.Err()
}

// DeletePolicy removes a policy.
func (s *Store) DeletePolicy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM policies WHERE id = ?", id)
	return err
}

// =============================================================================
// HOLIDAYS - implements engine.Calendar
// =============================================================================

// Holiday is a stored public holiday.
type Holiday struct {
	ID          string
	CountryCode string
	RegionCode  string
	Date        engine.Date
	Name        string
	// Recurring holidays apply every year on the same month/day.
	Recurring bool
	CreatedAt time.Time
}

// SaveHoliday inserts or updates a holiday.
func (s *Store) SaveHoliday(ctx context.Context, h Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, country_code, region_code, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(country_code, region_code, date, name) DO UPDATE SET
			recurring = excluded.recurring
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.CountryCode, h.RegionCode,
		h.Date.String(), h.Name, h.Recurring,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// DeleteHoliday removes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

// ListHolidays returns the holidays visible to a country/region: the
// country-wide ones plus the region-specific ones.
func (s *Store) ListHolidays(ctx context.Context, countryCode, regionCode string) ([]Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, country_code, region_code, date, name, recurring, created_at
		FROM holidays
		WHERE country_code = ? AND (region_code = '' OR region_code = ?)
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, countryCode, regionCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var (
			h       Holiday
			dateStr string
			created string
		)
		if err := rows.Scan(&h.ID, &h.CountryCode, &h.RegionCode, &dateStr, &h.Name, &h.Recurring, &created); err != nil {
			return nil, err
		}
		h.Date, _ = engine.ParseDate(dateStr)
		h.CreatedAt, _ = time.Parse(time.RFC3339, created)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// HolidaysFor returns the holiday set for a country/region and year.
// Recurring holidays are anchored to the requested year. Implements
// engine.Calendar, so the store can be handed to the engine directly.
func (s *Store) HolidaysFor(countryCode, regionCode string, year int) (engine.HolidaySet, error) {
	holidays, err := s.ListHolidays(context.Background(), countryCode, regionCode)
	if err != nil {
		return nil, err
	}

	set := engine.NewHolidaySet()
	for _, h := range holidays {
		switch {
		case h.Recurring:
			set.Add(engine.NewDate(year, h.Date.Month(), h.Date.Day()))
		case h.Date.Year() == year:
			set.Add(h.Date)
		}
	}
	return set, nil
}

// =============================================================================
// LEAVE BALANCES
// =============================================================================

// BalanceRecord is one employee's stored balance for one accounting year.
// The remaining value is derived via Balance.Remaining, never persisted.
type BalanceRecord struct {
	EmployeeID string
	Year       int
	Balance    engine.Balance
	// CarryoverExpiresOn is set when carried-over days have an expiry date.
	CarryoverExpiresOn engine.Date
	UpdatedAt          time.Time
}

// SaveBalance inserts or replaces a balance record.
func (s *Store) SaveBalance(ctx context.Context, rec BalanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return saveBalance(ctx, s.db, rec)
}

func saveBalance(ctx context.Context, db execer, rec BalanceRecord) error {
	query := `
		INSERT INTO leave_balances
		(employee_id, year, entitled, carried_over, adjustment, used, pending, carryover_expires_on, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, year) DO UPDATE SET
			entitled = excluded.entitled,
			carried_over = excluded.carried_over,
			adjustment = excluded.adjustment,
			used = excluded.used,
			pending = excluded.pending,
			carryover_expires_on = excluded.carryover_expires_on,
			updated_at = excluded.updated_at
	`

	var expiresOn any
	if !rec.CarryoverExpiresOn.IsZero() {
		expiresOn = rec.CarryoverExpiresOn.String()
	}

	_, err := db.ExecContext(ctx, query,
		rec.EmployeeID, rec.Year,
		rec.Balance.Entitled.String(),
		rec.Balance.CarriedOver.String(),
		rec.Balance.Adjustment.String(),
		rec.Balance.Used.String(),
		rec.Balance.Pending.String(),
		expiresOn,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetBalance retrieves an employee's balance for a year; nil when not found.
func (s *Store) GetBalance(ctx context.Context, employeeID string, year int) (*BalanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return getBalance(ctx, s.db, employeeID, year)
}

func getBalance(ctx context.Context, db execer, employeeID string, year int) (*BalanceRecord, error) {
	var (
		rec                                          BalanceRecord
		entitled, carried, adjustment, used, pending string
		expiresOn                                    sql.NullString
		updatedAt                                    string
	)

	err := db.QueryRowContext(ctx,
		`SELECT employee_id, year, entitled, carried_over, adjustment, used, pending, carryover_expires_on, updated_at
		 FROM leave_balances WHERE employee_id = ? AND year = ?`,
		employeeID, year,
	).Scan(&rec.EmployeeID, &rec.Year, &entitled, &carried, &adjustment, &used, &pending, &expiresOn, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.Balance = engine.Balance{
		Entitled:    parseDecimal(entitled),
		CarriedOver: parseDecimal(carried),
		Adjustment:  parseDecimal(adjustment),
		Used:        parseDecimal(used),
		Pending:     parseDecimal(pending),
	}
	if expiresOn.Valid {
		rec.CarryoverExpiresOn, _ = engine.ParseDate(expiresOn.String)
	}
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// LeaveRequest is a stored leave request.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Kind       string
	Span       engine.LeaveSpan
	Status     string
	// WorkDays is the span's work-day count, computed once at submission.
	WorkDays        decimal.Decimal
	Reason          string
	DecidedBy       string
	DecidedAt       *time.Time
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SaveRequest inserts or updates a request.
func (s *Store) SaveRequest(ctx context.Context, r LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return saveRequest(ctx, s.db, r)
}

func saveRequest(ctx context.Context, db execer, r LeaveRequest) error {
	query := `
		INSERT INTO leave_requests
		(id, employee_id, kind, start_date, end_date, start_half, end_half, status,
		 work_days, reason, decided_by, decided_at, rejection_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			decided_by = excluded.decided_by,
			decided_at = excluded.decided_at,
			rejection_reason = excluded.rejection_reason,
			updated_at = excluded.updated_at
	`

	var decidedAt any
	if r.DecidedAt != nil {
		decidedAt = r.DecidedAt.Format(time.RFC3339)
	}

	now := time.Now().UTC()
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := db.ExecContext(ctx, query,
		r.ID, r.EmployeeID, r.Kind,
		r.Span.Range.Start.String(), r.Span.Range.End.String(),
		string(r.Span.StartHalfDay), string(r.Span.EndHalfDay),
		r.Status, r.WorkDays.String(), r.Reason,
		r.DecidedBy, decidedAt, r.RejectionReason,
		createdAt.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	return err
}

const selectRequest = `
	SELECT id, employee_id, kind, start_date, end_date, start_half, end_half, status,
	       work_days, reason, decided_by, decided_at, rejection_reason, created_at, updated_at
	FROM leave_requests`

// GetRequest retrieves a request by ID; nil when not found.
func (s *Store) GetRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return getRequest(ctx, s.db, id)
}

func getRequest(ctx context.Context, db execer, id string) (*LeaveRequest, error) {
	row := db.QueryRowContext(ctx, selectRequest+" WHERE id = ?", id)
	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRequestsByEmployee returns all requests of one employee, newest first.
func (s *Store) ListRequestsByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx, selectRequest+" WHERE employee_id = ? ORDER BY created_at DESC", employeeID)
}

// ListPendingRequests returns all pending requests, oldest first.
func (s *Store) ListPendingRequests(ctx context.Context) ([]LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx, selectRequest+" WHERE status = ? ORDER BY created_at ASC", StatusPending)
}

// ListActiveRequests returns an employee's pending and approved requests,
// the set an incoming request must not overlap.
func (s *Store) ListActiveRequests(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx,
		selectRequest+" WHERE employee_id = ? AND status IN (?, ?) ORDER BY start_date ASC",
		employeeID, StatusPending, StatusApproved)
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func scanRequest(row rowScanner) (LeaveRequest, error) {
	var (
		r                            LeaveRequest
		startDate, endDate           string
		startHalf, endHalf           string
		workDays                     string
		reason, decidedBy, rejection sql.NullString
		decidedAt                    sql.NullString
		createdAt, updatedAt         string
	)

	err := row.Scan(&r.ID, &r.EmployeeID, &r.Kind, &startDate, &endDate,
		&startHalf, &endHalf, &r.Status, &workDays, &reason,
		&decidedBy, &decidedAt, &rejection, &createdAt, &updatedAt)
	if err != nil {
		return r, err
	}

	r.Span.Range.Start, _ = engine.ParseDate(startDate)
	r.Span.Range.End, _ = engine.ParseDate(endDate)
	r.Span.StartHalfDay = engine.HalfDay(startHalf)
	r.Span.EndHalfDay = engine.HalfDay(endHalf)
	r.WorkDays = parseDecimal(workDays)
	r.Reason = reason.String
	r.DecidedBy = decidedBy.String
	r.RejectionReason = rejection.String
	if decidedAt.Valid {
		t, _ := time.Parse(time.RFC3339, decidedAt.String)
		r.DecidedAt = &t
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return r, nil
}

// =============================================================================
// YEAR-END RUNS
// =============================================================================

// MarkYearEndComplete records that the year-end batch processed an
// employee's year. Inserting a duplicate run fails on the primary key,
// which is how the batch stays idempotent.
func (s *Store) MarkYearEndComplete(ctx context.Context, employeeID string, year int, carriedOver decimal.Decimal, expired bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO yearend_runs (employee_id, year, carried_over, expired, completed_at) VALUES (?, ?, ?, ?, ?)",
		employeeID, year, carriedOver.String(), expired,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// IsYearEndComplete reports whether the batch already processed this
// employee's year.
func (s *Store) IsYearEndComplete(ctx context.Context, employeeID string, year int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM yearend_runs WHERE employee_id = ? AND year = ?",
		employeeID, year,
	).Scan(&count)
	return count > 0, err
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// Tx exposes the operations a request state transition needs, bound to one
// database transaction.
type Tx struct {
	tx *sql.Tx
}

// SaveRequest writes a request inside the transaction.
func (t *Tx) SaveRequest(ctx context.Context, r LeaveRequest) error {
	return saveRequest(ctx, t.tx, r)
}

// SaveBalance writes a balance record inside the transaction.
func (t *Tx) SaveBalance(ctx context.Context, rec BalanceRecord) error {
	return saveBalance(ctx, t.tx, rec)
}

// GetRequest reads a request inside the transaction.
func (t *Tx) GetRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	return getRequest(ctx, t.tx, id)
}

// GetBalance reads a balance inside the transaction.
func (t *Tx) GetBalance(ctx context.Context, employeeID string, year int) (*BalanceRecord, error) {
	return getBalance(ctx, t.tx, employeeID, year)
}

// WithTx runs fn inside a database transaction. The request row and the
// balance row of a state transition must commit together or not at all.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"leave_requests", "leave_balances", "yearend_runs", "holidays", "employees", "policies"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
