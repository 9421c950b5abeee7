/*
reference.go - Reference-data endpoints over the seeded award tables

Read-only listings of the MAP export data the seeder loads: the award
registry (for award pickers), per-award classifications, allowances, and a
row-count summary. These endpoints degrade gracefully without a database -
empty listings rather than errors - except the classifications lookup,
which is meaningless without one.

ENDPOINTS:
  GET /api/v1/awards                                Award picker (no auth)
  GET /api/v1/classifications/{award_code}          Classifications (API key)
  GET /api/v1/reference-data/summary                Row counts
  GET /api/v1/reference-data/wage-allowances        Wage allowances
  GET /api/v1/reference-data/expense-allowances     Expense allowances
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/award-engine/store/sqlite"
)

// ListAwards returns the award registry for award pickers.
// GET /api/v1/awards
func (h *Handler) ListAwards(w http.ResponseWriter, r *http.Request) {
	resp := AwardsResponse{Awards: []AwardSummaryDTO{}}
	if h.Store == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	awards, err := h.Store.ListAwards(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list awards", err)
		return
	}
	for _, a := range awards {
		resp.Awards = append(resp.Awards, AwardSummaryDTO{
			AwardCode:  a.AwardCode,
			AwardTitle: a.Name,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListClassifications returns an award's classifications, filtered by
// employment_type when supplied ('AD' rows always included). A
// classification_level query narrows to that single level's detail row.
// GET /api/v1/classifications/{award_code}
func (h *Handler) ListClassifications(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Database not available", nil)
		return
	}

	awardCode := chi.URLParam(r, "award_code")
	q := r.URL.Query()
	employmentType := q.Get("employment_type")

	if lv := q.Get("classification_level"); lv != "" {
		level := queryIntOr(lv, defaultLevel)
		c, err := h.Store.ClassificationDetails(r.Context(),
			awardCode, queryOr(employmentType, defaultEmploymentType), level)
		if err != nil {
			writeError(w, http.StatusNotFound, "Classification not found", nil)
			return
		}
		writeJSON(w, http.StatusOK, ClassificationsResponse{
			Classifications: []ClassificationDTO{toClassificationDTO(*c)},
		})
		return
	}

	rows, err := h.Store.Classifications(r.Context(), awardCode, employmentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list classifications", err)
		return
	}
	dtos := make([]ClassificationDTO, len(rows))
	for i, c := range rows {
		dtos[i] = toClassificationDTO(c)
	}
	writeJSON(w, http.StatusOK, ClassificationsResponse{Classifications: dtos})
}

// ReferenceSummary reports per-table row counts for the seeded data.
// GET /api/v1/reference-data/summary
func (h *Handler) ReferenceSummary(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, http.StatusOK, ReferenceSummaryResponse{DatabaseConnected: false})
		return
	}

	counts, err := h.Store.ReferenceCounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count reference data", err)
		return
	}
	writeJSON(w, http.StatusOK, ReferenceSummaryResponse{
		DatabaseConnected: true,
		Awards:            counts.Awards,
		Classifications:   counts.Classifications,
		Penalties:         counts.PenaltyRates,
		WageAllowances:    counts.WageAllowances,
		ExpenseAllowances: counts.ExpenseAllowances,
	})
}

// ListWageAllowances lists an award's wage-linked allowances.
// GET /api/v1/reference-data/wage-allowances
func (h *Handler) ListWageAllowances(w http.ResponseWriter, r *http.Request) {
	awardCode := queryOr(r.URL.Query().Get("award_code"), defaultAwardCode)
	resp := AllowancesResponse{AwardCode: awardCode, WageAllowances: []WageAllowanceDTO{}}
	if h.Store == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	rows, err := h.Store.WageAllowances(r.Context(), awardCode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list wage allowances", err)
		return
	}
	for _, a := range rows {
		resp.WageAllowances = append(resp.WageAllowances, WageAllowanceDTO{
			Allowance:        a.Allowance,
			Type:             a.Type,
			Rate:             a.Rate,
			BaseRate:         a.BaseRate,
			RateUnit:         a.RateUnit,
			AllowanceAmount:  a.AllowanceAmount,
			PaymentFrequency: a.PaymentFrequency,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListExpenseAllowances lists an award's expense reimbursement allowances.
// GET /api/v1/reference-data/expense-allowances
func (h *Handler) ListExpenseAllowances(w http.ResponseWriter, r *http.Request) {
	awardCode := queryOr(r.URL.Query().Get("award_code"), defaultAwardCode)
	resp := AllowancesResponse{AwardCode: awardCode, ExpenseAllowances: []ExpenseAllowanceDTO{}}
	if h.Store == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	rows, err := h.Store.ExpenseAllowances(r.Context(), awardCode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list expense allowances", err)
		return
	}
	for _, a := range rows {
		resp.ExpenseAllowances = append(resp.ExpenseAllowances, ExpenseAllowanceDTO{
			Allowance:        a.Allowance,
			AllowanceAmount:  a.AllowanceAmount,
			PaymentFrequency: a.PaymentFrequency,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toClassificationDTO(c sqlite.Classification) ClassificationDTO {
	return ClassificationDTO{
		Classification:      c.Classification,
		ClassificationLevel: c.ClassificationLevel,
		BaseRate:            c.BaseRate,
		BaseRateType:        c.BaseRateType,
		CalculatedRate:      c.CalculatedRate,
		CalculatedRateType:  c.CalculatedRateType,
		EmploymentType:      c.EmploymentType,
	}
}
