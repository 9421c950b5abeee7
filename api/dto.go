/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model (decimal.Decimal, time.Time) from the wire
  contract (plain numbers, ISO dates).

NAMING CONVENTION:
  - *Request: request body types from clients
  - *Response / *DTO: types returned to clients

MONEY ON THE WIRE:
  Hours, rates, and costs are serialized as JSON numbers already rounded
  to two decimal places by the engines. The float64 conversion picks the
  nearest binary value and the encoder emits its shortest decimal form,
  which reproduces the 2dp figure on the wire.

SEE ALSO:
  - handlers.go: parsing, defaulting, and conversion helpers
*/
package api

// =============================================================================
// CALCULATE REQUESTS
// =============================================================================

// ShiftRequest is one shift to cost. start_time is HH:MM on a 24-hour
// clock; break_minutes defaults to 0 and is_public_holiday to false.
type ShiftRequest struct {
	ShiftDate       string  `json:"shift_date"` // ISO date
	StartTime       string  `json:"start_time"`
	DurationHours   float64 `json:"duration_hours"`
	BreakMinutes    float64 `json:"break_minutes"`
	IsPublicHoliday bool    `json:"is_public_holiday"`
}

// BulkShiftRequest costs many shifts for one worker.
type BulkShiftRequest struct {
	AwardCode            string         `json:"award_code"`
	EmploymentType       string         `json:"employment_type"`
	ClassificationLevel  int            `json:"classification_level"`
	CasualLoadingPercent *float64       `json:"casual_loading_percent"`
	WorkerID             string         `json:"worker_id"`
	Shifts               []ShiftRequest `json:"shifts"`
}

// RosterWorker is one worker inside a roster request.
type RosterWorker struct {
	WorkerID             string         `json:"worker_id"`
	WorkerName           string         `json:"worker_name"`
	AwardCode            string         `json:"award_code"`
	EmploymentType       string         `json:"employment_type"`
	Classification       string         `json:"classification"`
	ClassificationLevel  int            `json:"classification_level"`
	CasualLoadingPercent *float64       `json:"casual_loading_percent"`
	Shifts               []ShiftRequest `json:"shifts,omitempty"`
}

// RosterRequest costs several workers, each with their own shifts.
type RosterRequest struct {
	RosterName string         `json:"roster_name"`
	Workers    []RosterWorker `json:"workers"`
}

// ShiftRosterShift is a shared shift worked by several workers.
type ShiftRosterShift struct {
	ShiftRequest
	WorkerIDs []string `json:"worker_ids"`
}

// ShiftRosterRequest costs shared shifts against a worker list.
type ShiftRosterRequest struct {
	RosterName string             `json:"roster_name"`
	Workers    []RosterWorker     `json:"workers"`
	Shifts     []ShiftRosterShift `json:"shifts"`
}

// =============================================================================
// CALCULATE RESPONSES
// =============================================================================

// SegmentDTO is one priced, labeled run of hours.
type SegmentDTO struct {
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	Rate        float64 `json:"rate"`
	Cost        float64 `json:"cost"`
	PenaltyKey  string  `json:"penalty_key"`
}

// ShiftResponse is one fully costed shift.
type ShiftResponse struct {
	ShiftDate string       `json:"shift_date"`
	DayType   string       `json:"day_type"`
	PaidHours float64      `json:"paid_hours"`
	GrossPay  float64      `json:"gross_pay"`
	Segments  []SegmentDTO `json:"segments"`
	Warnings  []string     `json:"warnings"`
}

// BulkShiftResponse is one worker's costed shifts with totals.
type BulkShiftResponse struct {
	WorkerID     string          `json:"worker_id"`
	AwardCode    string          `json:"award_code"`
	RatesVersion string          `json:"rates_version"`
	TotalCost    float64         `json:"total_cost"`
	TotalHours   float64         `json:"total_hours"`
	Shifts       []ShiftResponse `json:"shifts"`
	Warnings     []string        `json:"warnings"`
}

// WorkerShiftResponse is one worker inside a roster response.
type WorkerShiftResponse struct {
	WorkerID             string          `json:"worker_id"`
	WorkerName           string          `json:"worker_name"`
	AwardCode            string          `json:"award_code"`
	EmploymentType       string          `json:"employment_type"`
	Classification       string          `json:"classification"`
	ClassificationLevel  int             `json:"classification_level"`
	CasualLoadingPercent float64         `json:"casual_loading_percent"`
	OrdinaryHourlyRate   float64         `json:"ordinary_hourly_rate"`
	TotalCost            float64         `json:"total_cost"`
	TotalHours           float64         `json:"total_hours"`
	Shifts               []ShiftResponse `json:"shifts"`
	Warnings             []string        `json:"warnings"`
}

// RosterResponse is a fully costed multi-worker roster.
type RosterResponse struct {
	RosterName   string                `json:"roster_name"`
	RatesVersion string                `json:"rates_version"`
	TotalCost    float64               `json:"total_cost"`
	TotalHours   float64               `json:"total_hours"`
	Workers      []WorkerShiftResponse `json:"workers"`
	Warnings     []string              `json:"warnings"`
}

// ShiftWorkerResultDTO is one worker's costing of one shared shift.
type ShiftWorkerResultDTO struct {
	WorkerID             string       `json:"worker_id"`
	WorkerName           string       `json:"worker_name"`
	Classification       string       `json:"classification"`
	ClassificationLevel  int          `json:"classification_level"`
	EmploymentType       string       `json:"employment_type"`
	CasualLoadingPercent float64      `json:"casual_loading_percent"`
	OrdinaryHourlyRate   float64      `json:"ordinary_hourly_rate"`
	PaidHours            float64      `json:"paid_hours"`
	GrossPay             float64      `json:"gross_pay"`
	Segments             []SegmentDTO `json:"segments"`
	Warnings             []string     `json:"warnings"`
}

// ShiftRosterShiftResultDTO is one shared shift with all workers costed.
type ShiftRosterShiftResultDTO struct {
	ShiftDate       string                 `json:"shift_date"`
	StartTime       string                 `json:"start_time"`
	DurationHours   float64                `json:"duration_hours"`
	BreakMinutes    float64                `json:"break_minutes"`
	DayType         string                 `json:"day_type"`
	Workers         []ShiftWorkerResultDTO `json:"workers"`
	ShiftTotalCost  float64                `json:"shift_total_cost"`
	ShiftTotalHours float64                `json:"shift_total_hours"`
}

// WorkerTotalDTO is a worker's running total across a shift roster.
type WorkerTotalDTO struct {
	WorkerID   string  `json:"worker_id"`
	WorkerName string  `json:"worker_name"`
	TotalHours float64 `json:"total_hours"`
	TotalCost  float64 `json:"total_cost"`
}

// ShiftRosterResponse is a fully costed shared-shift roster.
type ShiftRosterResponse struct {
	RosterName   string                      `json:"roster_name"`
	RatesVersion string                      `json:"rates_version"`
	TotalCost    float64                     `json:"total_cost"`
	TotalHours   float64                     `json:"total_hours"`
	Shifts       []ShiftRosterShiftResultDTO `json:"shifts"`
	WorkerTotals []WorkerTotalDTO            `json:"worker_totals"`
	Warnings     []string                    `json:"warnings"`
}

// =============================================================================
// RATES / HEALTH / ADMIN
// =============================================================================

// RatesResponse exposes the effective rate table for an award/type/level.
type RatesResponse struct {
	AwardCode            string             `json:"award_code"`
	RatesVersion         string             `json:"rates_version"`
	EmploymentType       string             `json:"employment_type"`
	ClassificationLevel  int                `json:"classification_level"`
	OrdinaryHourlyRate   float64            `json:"ordinary_hourly_rate"`
	CasualLoadingPercent float64            `json:"casual_loading_percent"`
	PenaltyRates         map[string]float64 `json:"penalty_rates"`
	Source               string             `json:"source"` // "database" or "defaults"
}

// AwardSummaryDTO is one award in the picker listing.
type AwardSummaryDTO struct {
	AwardCode  string `json:"award_code"`
	AwardTitle string `json:"award_title"`
}

// AwardsResponse lists the award registry.
type AwardsResponse struct {
	Awards []AwardSummaryDTO `json:"awards"`
}

// ClassificationDTO is one classification row for an award.
type ClassificationDTO struct {
	Classification      string  `json:"classification"`
	ClassificationLevel int     `json:"classification_level"`
	BaseRate            float64 `json:"base_rate"`
	BaseRateType        string  `json:"base_rate_type"`
	CalculatedRate      float64 `json:"calculated_rate"`
	CalculatedRateType  string  `json:"calculated_rate_type"`
	EmploymentType      string  `json:"employment_type"`
}

// ClassificationsResponse lists an award's classifications.
type ClassificationsResponse struct {
	Classifications []ClassificationDTO `json:"classifications"`
}

// ReferenceSummaryResponse reports seeded reference-data row counts.
type ReferenceSummaryResponse struct {
	DatabaseConnected bool `json:"database_connected"`
	Awards            int  `json:"awards"`
	Classifications   int  `json:"classifications"`
	Penalties         int  `json:"penalties"`
	WageAllowances    int  `json:"wage_allowances"`
	ExpenseAllowances int  `json:"expense_allowances"`
}

// WageAllowanceDTO is one wage-linked allowance row.
type WageAllowanceDTO struct {
	Allowance        string  `json:"allowance"`
	Type             string  `json:"type"`
	Rate             float64 `json:"rate"`
	BaseRate         float64 `json:"base_rate"`
	RateUnit         string  `json:"rate_unit"`
	AllowanceAmount  float64 `json:"allowance_amount"`
	PaymentFrequency string  `json:"payment_frequency"`
}

// ExpenseAllowanceDTO is one expense reimbursement allowance row.
type ExpenseAllowanceDTO struct {
	Allowance        string  `json:"allowance"`
	AllowanceAmount  float64 `json:"allowance_amount"`
	PaymentFrequency string  `json:"payment_frequency"`
}

// AllowancesResponse lists an award's allowances of either kind.
type AllowancesResponse struct {
	AwardCode         string                `json:"award_code"`
	WageAllowances    []WageAllowanceDTO    `json:"wage_allowances,omitempty"`
	ExpenseAllowances []ExpenseAllowanceDTO `json:"expense_allowances,omitempty"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status       string `json:"status"`
	Environment  string `json:"environment"`
	RatesVersion string `json:"rates_version"`
}

// CreateAPIKeyRequest creates a key for an org.
type CreateAPIKeyRequest struct {
	OrgID   string `json:"org_id"`
	OrgName string `json:"org_name"`
}

// APIKeyDTO is a key record without the secret.
type APIKeyDTO struct {
	ID         int64   `json:"id"`
	OrgID      string  `json:"org_id"`
	OrgName    string  `json:"org_name"`
	KeyPrefix  string  `json:"key_prefix"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
	LastUsedAt *string `json:"last_used_at,omitempty"`
	TotalCalls int64   `json:"total_calls"`
}

// CreateAPIKeyResponse carries the raw key exactly once.
type CreateAPIKeyResponse struct {
	APIKeyDTO
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
