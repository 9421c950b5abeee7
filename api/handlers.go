/*
handlers.go - HTTP API handlers for the shift-cost engine

PURPOSE:
  Exposes the calculation engines via REST. Handles HTTP request/response,
  JSON serialization, query-parameter defaulting, and delegates all pricing
  to the engine and roster packages.

ENDPOINTS:
  Calculate:
    POST /api/v1/calculate/shift        Cost a single shift
    POST /api/v1/calculate/bulk         Many shifts, one worker
    POST /api/v1/calculate/roster       Many workers with their shifts
    POST /api/v1/calculate/shift-roster Shared shifts, several workers each

  Reference:
    GET  /api/v1/rates/{award_code}/{employment_type}  Effective rate table
    GET  /health                        Liveness probe
    GET  /metrics                       Prometheus metrics
    (reference-data listings live in reference.go)

  Admin (bearer token):
    POST   /api/v1/admin/keys           Create API key
    GET    /api/v1/admin/keys           List API keys
    DELETE /api/v1/admin/keys/{id}      Revoke API key

RATE RESOLUTION:
  The single-shift endpoint asks the store for rates resolved per
  (award_code, employment_type, classification_level) and prices with the
  rate-table engine. Store unreachable or award not found is NOT an error:
  the handler falls back to the fine-grained engine with the built-in
  award constants and still returns a complete result.

ERROR HANDLING:
  Errors are returned as a JSON envelope with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing or invalid API key
  - 404: Unknown admin resource
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - auth.go: API-key middleware and admin key management
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/engine"
	"github.com/warp/award-engine/roster"
	"github.com/warp/award-engine/store/sqlite"
)

// Default query-parameter values for the calculate endpoints.
const (
	defaultAwardCode      = "MA000004"
	defaultEmploymentType = "CA"
	defaultLevel          = 1
	defaultCasualLoading  = 25.0
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       *sqlite.Store // nil runs the API on built-in constants only
	Table       award.RateTable
	Environment string
}

// NewHandler creates a handler priced against the given rate table.
func NewHandler(store *sqlite.Store, table award.RateTable, environment string) *Handler {
	return &Handler{Store: store, Table: table, Environment: environment}
}

// =============================================================================
// CALCULATE HANDLERS
// =============================================================================

// CalculateShift costs a single shift.
// POST /api/v1/calculate/shift
func (h *Handler) CalculateShift(w http.ResponseWriter, r *http.Request) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	q := r.URL.Query()
	awardCode := queryOr(q.Get("award_code"), defaultAwardCode)
	employmentType := queryOr(q.Get("employment_type"), defaultEmploymentType)
	level := queryIntOr(q.Get("classification_level"), defaultLevel)
	loading, err := queryLoading(q.Get("casual_loading_percent"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid casual_loading_percent", err)
		return
	}

	in, err := toShiftInput(req, loading)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	res, err := h.costShift(r, awardCode, employmentType, level, in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	calculateRequests.WithLabelValues("shift").Inc()
	writeJSON(w, http.StatusOK, toShiftResponse(res))
}

// costShift prices one shift, preferring store-resolved rates and falling
// back to the fine-grained engine with built-in constants.
func (h *Handler) costShift(r *http.Request, awardCode, employmentType string, level int, in engine.ShiftInput) (*engine.ShiftResult, error) {
	if h.Store != nil {
		resolved, err := h.Store.LookupResolvedRates(r.Context(), awardCode, employmentType, level)
		if err == nil {
			return engine.ComputeFromRates(in, *resolved, h.Table)
		}
	}
	return engine.Compute(in, h.Table)
}

// CalculateBulk costs many shifts for one worker.
// POST /api/v1/calculate/bulk
func (h *Handler) CalculateBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	loading := loadingOr(req.CasualLoadingPercent)
	worker := roster.Worker{
		WorkerID:             req.WorkerID,
		AwardCode:            queryOr(req.AwardCode, defaultAwardCode),
		EmploymentType:       queryOr(req.EmploymentType, defaultEmploymentType),
		ClassificationLevel:  req.ClassificationLevel,
		CasualLoadingPercent: loading,
	}
	for _, s := range req.Shifts {
		in, err := toShiftInput(s, loading)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid shift", err)
			return
		}
		worker.Shifts = append(worker.Shifts, in)
	}

	wr, err := roster.CalculateWorker(worker, h.Table)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	shifts := make([]ShiftResponse, len(wr.Shifts))
	for i, res := range wr.Shifts {
		shifts[i] = toShiftResponse(res)
	}

	calculateRequests.WithLabelValues("bulk").Inc()
	writeJSON(w, http.StatusOK, BulkShiftResponse{
		WorkerID:     req.WorkerID,
		AwardCode:    worker.AwardCode,
		RatesVersion: h.Table.RatesVersion,
		TotalCost:    wr.TotalCost.InexactFloat64(),
		TotalHours:   wr.TotalHours.InexactFloat64(),
		Shifts:       shifts,
		Warnings:     wr.Warnings,
	})
}

// CalculateRoster costs several workers, each with their own shifts.
// POST /api/v1/calculate/roster
func (h *Handler) CalculateRoster(w http.ResponseWriter, r *http.Request) {
	var req RosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	workers, err := toWorkers(req.Workers, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	rr, err := roster.CalculateRoster(req.RosterName, workers, h.Table)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	out := make([]WorkerShiftResponse, len(rr.Workers))
	for i, wres := range rr.Workers {
		shifts := make([]ShiftResponse, len(wres.Shifts))
		for j, res := range wres.Shifts {
			shifts[j] = toShiftResponse(res)
		}
		out[i] = WorkerShiftResponse{
			WorkerID:             wres.Worker.WorkerID,
			WorkerName:           wres.Worker.WorkerName,
			AwardCode:            wres.Worker.AwardCode,
			EmploymentType:       wres.Worker.EmploymentType,
			Classification:       wres.Worker.Classification,
			ClassificationLevel:  wres.Worker.ClassificationLevel,
			CasualLoadingPercent: wres.Worker.CasualLoadingPercent,
			OrdinaryHourlyRate:   wres.OrdinaryHourlyRate.InexactFloat64(),
			TotalCost:            wres.TotalCost.InexactFloat64(),
			TotalHours:           wres.TotalHours.InexactFloat64(),
			Shifts:               shifts,
			Warnings:             wres.Warnings,
		}
	}

	calculateRequests.WithLabelValues("roster").Inc()
	writeJSON(w, http.StatusOK, RosterResponse{
		RosterName:   req.RosterName,
		RatesVersion: h.Table.RatesVersion,
		TotalCost:    rr.TotalCost.InexactFloat64(),
		TotalHours:   rr.TotalHours.InexactFloat64(),
		Workers:      out,
		Warnings:     rr.Warnings,
	})
}

// CalculateShiftRoster costs shared shifts against a worker list.
// POST /api/v1/calculate/shift-roster
func (h *Handler) CalculateShiftRoster(w http.ResponseWriter, r *http.Request) {
	var req ShiftRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	workers, err := toWorkers(req.Workers, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	shifts := make([]roster.RosterShift, 0, len(req.Shifts))
	for _, s := range req.Shifts {
		in, err := toShiftInput(s.ShiftRequest, 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid shift", err)
			return
		}
		shifts = append(shifts, roster.RosterShift{Shift: in, WorkerIDs: s.WorkerIDs})
	}

	sr, err := roster.CalculateShiftRoster(req.RosterName, workers, shifts, h.Table)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	rows := make([]ShiftRosterShiftResultDTO, len(sr.Shifts))
	for i, row := range sr.Shifts {
		workerDTOs := make([]ShiftWorkerResultDTO, len(row.Workers))
		for j, wres := range row.Workers {
			resp := toShiftResponse(wres.Result)
			workerDTOs[j] = ShiftWorkerResultDTO{
				WorkerID:             wres.Worker.WorkerID,
				WorkerName:           wres.Worker.WorkerName,
				Classification:       wres.Worker.Classification,
				ClassificationLevel:  wres.Worker.ClassificationLevel,
				EmploymentType:       wres.Worker.EmploymentType,
				CasualLoadingPercent: wres.Worker.CasualLoadingPercent,
				OrdinaryHourlyRate:   wres.OrdinaryHourlyRate.InexactFloat64(),
				PaidHours:            resp.PaidHours,
				GrossPay:             resp.GrossPay,
				Segments:             resp.Segments,
				Warnings:             resp.Warnings,
			}
		}
		rows[i] = ShiftRosterShiftResultDTO{
			ShiftDate:       row.Shift.Date.Format("2006-01-02"),
			StartTime:       row.Shift.StartTime,
			DurationHours:   row.Shift.DurationHours,
			BreakMinutes:    row.Shift.BreakMinutes,
			DayType:         string(row.DayType),
			Workers:         workerDTOs,
			ShiftTotalCost:  row.TotalCost.InexactFloat64(),
			ShiftTotalHours: row.TotalHours.InexactFloat64(),
		}
	}

	totals := make([]WorkerTotalDTO, len(sr.WorkerTotals))
	for i, wt := range sr.WorkerTotals {
		totals[i] = WorkerTotalDTO{
			WorkerID:   wt.WorkerID,
			WorkerName: wt.WorkerName,
			TotalHours: wt.TotalHours.InexactFloat64(),
			TotalCost:  wt.TotalCost.InexactFloat64(),
		}
	}

	calculateRequests.WithLabelValues("shift_roster").Inc()
	writeJSON(w, http.StatusOK, ShiftRosterResponse{
		RosterName:   req.RosterName,
		RatesVersion: h.Table.RatesVersion,
		TotalCost:    sr.TotalCost.InexactFloat64(),
		TotalHours:   sr.TotalHours.InexactFloat64(),
		Shifts:       rows,
		WorkerTotals: totals,
		Warnings:     sr.Warnings,
	})
}

// =============================================================================
// RATES / HEALTH
// =============================================================================

// GetRates returns the effective rate table for an award/type/level,
// database-resolved when possible, built-in defaults otherwise.
// GET /api/v1/rates/{award_code}/{employment_type}
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	awardCode := chi.URLParam(r, "award_code")
	employmentType := chi.URLParam(r, "employment_type")
	level := queryIntOr(q.Get("classification_level"), defaultLevel)
	loading, err := queryLoading(q.Get("casual_loading_percent"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid casual_loading_percent", err)
		return
	}

	loadingMult := decimal.NewFromInt(1).
		Add(decimal.NewFromFloat(loading).Div(decimal.NewFromInt(100)))

	if h.Store != nil {
		resolved, err := h.Store.LookupResolvedRates(r.Context(), awardCode, employmentType, level)
		if err == nil {
			ordinary := award.RoundHalfUp(resolved.Ordinary.Mul(loadingMult), 2)
			penalty := map[string]float64{
				string(award.KeyOrdinary): ordinary.InexactFloat64(),
			}
			add := func(key award.PenaltyKey, rate *decimal.Decimal, mult string) {
				if rate != nil {
					penalty[string(key)] = award.RoundHalfUp(rate.Mul(loadingMult), 2).InexactFloat64()
					return
				}
				penalty[string(key)] = award.RoundHalfUp(ordinary.Mul(decimal.RequireFromString(mult)), 2).InexactFloat64()
			}
			add(award.KeySaturdayOrdinary, resolved.Saturday, "1.25")
			add(award.KeySunday, resolved.Sunday, "1.50")
			add(award.KeyPublicHoliday, resolved.PublicHoliday, "2.25")

			writeJSON(w, http.StatusOK, RatesResponse{
				AwardCode:            awardCode,
				RatesVersion:         h.Table.RatesVersion,
				EmploymentType:       employmentType,
				ClassificationLevel:  level,
				OrdinaryHourlyRate:   ordinary.InexactFloat64(),
				CasualLoadingPercent: loading,
				PenaltyRates:         penalty,
				Source:               "database",
			})
			return
		}
	}

	ordinary := award.OrdinaryHourlyRate(h.Table, decimal.NewFromFloat(loading))
	penalty := make(map[string]float64, len(h.Table.PenaltyMultipliers))
	for key, mult := range h.Table.PenaltyMultipliers {
		penalty[string(key)] = award.RoundHalfUp(ordinary.Mul(mult), 2).InexactFloat64()
	}

	writeJSON(w, http.StatusOK, RatesResponse{
		AwardCode:            awardCode,
		RatesVersion:         h.Table.RatesVersion,
		EmploymentType:       employmentType,
		ClassificationLevel:  level,
		OrdinaryHourlyRate:   ordinary.InexactFloat64(),
		CasualLoadingPercent: loading,
		PenaltyRates:         penalty,
		Source:               "defaults",
	})
}

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		Environment:  h.Environment,
		RatesVersion: h.Table.RatesVersion,
	})
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toShiftInput(req ShiftRequest, loading float64) (engine.ShiftInput, error) {
	date, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		return engine.ShiftInput{}, fmt.Errorf("invalid shift_date %q: %w", req.ShiftDate, err)
	}
	return engine.ShiftInput{
		Date:                 date,
		StartTime:            req.StartTime,
		DurationHours:        req.DurationHours,
		BreakMinutes:         req.BreakMinutes,
		IsPublicHoliday:      req.IsPublicHoliday,
		CasualLoadingPercent: loading,
	}, nil
}

func toWorkers(dtos []RosterWorker, withShifts bool) ([]roster.Worker, error) {
	workers := make([]roster.Worker, 0, len(dtos))
	for _, d := range dtos {
		loading := loadingOr(d.CasualLoadingPercent)
		w := roster.Worker{
			WorkerID:             d.WorkerID,
			WorkerName:           d.WorkerName,
			AwardCode:            queryOr(d.AwardCode, defaultAwardCode),
			EmploymentType:       queryOr(d.EmploymentType, defaultEmploymentType),
			Classification:       d.Classification,
			ClassificationLevel:  d.ClassificationLevel,
			CasualLoadingPercent: loading,
		}
		if withShifts {
			for _, s := range d.Shifts {
				in, err := toShiftInput(s, loading)
				if err != nil {
					return nil, err
				}
				w.Shifts = append(w.Shifts, in)
			}
		}
		workers = append(workers, w)
	}
	return workers, nil
}

func toShiftResponse(res *engine.ShiftResult) ShiftResponse {
	segments := make([]SegmentDTO, len(res.Segments))
	for i, s := range res.Segments {
		segments[i] = SegmentDTO{
			Description: s.Description,
			Hours:       s.Hours.InexactFloat64(),
			Rate:        s.Rate.InexactFloat64(),
			Cost:        s.Cost.InexactFloat64(),
			PenaltyKey:  string(s.PenaltyKey),
		}
	}
	return ShiftResponse{
		ShiftDate: res.ShiftDate.Format("2006-01-02"),
		DayType:   string(res.DayType),
		PaidHours: res.PaidHours.InexactFloat64(),
		GrossPay:  res.GrossPay.InexactFloat64(),
		Segments:  segments,
		Warnings:  res.Warnings,
	}
}

func queryOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func queryIntOr(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// queryLoading parses casual_loading_percent with its default of 25,
// enforcing the 0-100 range.
func queryLoading(v string) (float64, error) {
	if v == "" {
		return defaultCasualLoading, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > 100 {
		return 0, fmt.Errorf("casual_loading_percent %v out of range [0,100]", f)
	}
	return f, nil
}

func loadingOr(v *float64) float64 {
	if v == nil {
		return defaultCasualLoading
	}
	return *v
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

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
