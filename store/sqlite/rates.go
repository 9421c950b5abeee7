/*
rates.go - Rate resolution from the penalty and classification tables

The MAP export does not tag rows with machine-readable day types; it
carries free-text penalty descriptions ("Saturday - ordinary hours",
"Overtime - Monday to Friday - first 3 hours"). Resolution is therefore
keyword matching over lowercased descriptions, scanning rows ordered by
ascending rate so the lowest matching rate wins. Rows without a calculated
hourly value are ignored.

Employment-type fallback: an exact employee_rate_type_code match is tried
first, then the 'AD' (adult) rows.
*/
package sqlite

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/engine"
)

// Penalty description keywords (lowercase) for each day/time type.
var (
	ordinaryKeywords = []string{"ordinary hours", "ordinary hourly rate", "ordinary rate"}
	saturdayKeywords = []string{"saturday"}
	sundayKeywords   = []string{"sunday"}
	holidayKeywords  = []string{"public holiday"}
	otFirstKeywords  = []string{
		"monday to saturday – first", "monday to friday – first",
		"monday to saturday - first", "monday to friday - first",
		"first 2 hours", "first 3 hours", "overtime - first",
	}
	otAfterKeywords = []string{
		"monday to saturday – after", "monday to friday – after",
		"monday to saturday - after", "monday to friday - after",
		"after 2 hours", "after 3 hours", "overtime - after",
	}
)

func matchAny(description string, keywords []string) bool {
	d := strings.ToLower(strings.TrimSpace(description))
	for _, k := range keywords {
		if strings.Contains(d, k) {
			return true
		}
	}
	return false
}

// penaltyRow is one usable penalty_rates row.
type penaltyRow struct {
	Description     string
	RatePercent     float64
	CalculatedValue float64
}

// rowsFor fetches penalty rows for the exact employment type, then falls
// back to 'AD'. Rows are ordered by ascending rate.
func (s *Store) rowsFor(ctx context.Context, awardCode, employmentType string, level int) ([]penaltyRow, error) {
	for _, et := range []string{employmentType, "AD"} {
		rows, err := s.db.QueryContext(ctx, `
			SELECT penalty_description, COALESCE(rate, 0), penalty_calculated_value
			FROM penalty_rates
			WHERE award_code = ? AND employee_rate_type_code = ?
			  AND classification_level = ? AND penalty_calculated_value IS NOT NULL
			ORDER BY rate ASC`,
			awardCode, et, level)
		if err != nil {
			return nil, err
		}

		var out []penaltyRow
		for rows.Next() {
			var r penaltyRow
			if err := rows.Scan(&r.Description, &r.RatePercent, &r.CalculatedValue); err != nil {
				rows.Close()
				return nil, err
			}
			out = append(out, r)
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return nil, nil
}

// LookupResolvedRates resolves the full rate set for one award/employment
// type/classification level. The ordinary rate is required; everything else
// is optional and left nil when no row matches. Returns ErrNotFound when no
// ordinary rate can be resolved.
func (s *Store) LookupResolvedRates(ctx context.Context, awardCode, employmentType string, level int) (*engine.ResolvedRates, error) {
	rows, err := s.rowsFor(ctx, awardCode, employmentType, level)
	if err != nil {
		return nil, err
	}

	pick := func(keywords []string) *decimal.Decimal {
		for _, r := range rows {
			if matchAny(r.Description, keywords) {
				d := decimal.NewFromFloat(r.CalculatedValue)
				return &d
			}
		}
		return nil
	}

	ordinary := pick(ordinaryKeywords)
	if ordinary == nil {
		return nil, ErrNotFound
	}

	return &engine.ResolvedRates{
		Ordinary:      *ordinary,
		Saturday:      pick(saturdayKeywords),
		Sunday:        pick(sundayKeywords),
		PublicHoliday: pick(holidayKeywords),
		OvertimeFirst: pick(otFirstKeywords),
		OvertimeAfter: pick(otAfterKeywords),
	}, nil
}

// OrdinaryRate returns just the base ordinary hourly rate (lowest-rate
// ordinary-hours match), or ErrNotFound.
func (s *Store) OrdinaryRate(ctx context.Context, awardCode, employmentType string, level int) (decimal.Decimal, error) {
	rows, err := s.rowsFor(ctx, awardCode, employmentType, level)
	if err != nil {
		return decimal.Zero, err
	}
	for _, r := range rows {
		if matchAny(r.Description, ordinaryKeywords) {
			return decimal.NewFromFloat(r.CalculatedValue), nil
		}
	}
	return decimal.Zero, ErrNotFound
}

// BaseWeeklyRate returns the weekly base rate from the classifications
// table, trying the exact employment type then 'AD'.
func (s *Store) BaseWeeklyRate(ctx context.Context, awardCode, employmentType string, level int) (decimal.Decimal, error) {
	for _, et := range []string{employmentType, "AD"} {
		var base float64
		err := s.db.QueryRowContext(ctx, `
			SELECT base_rate FROM classifications
			WHERE award_code = ? AND employee_rate_type_code = ?
			  AND classification_level = ? AND base_rate IS NOT NULL
			  AND LOWER(COALESCE(base_rate_type, '')) LIKE '%weekly%'
			LIMIT 1`,
			awardCode, et, level).Scan(&base)
		if err == nil {
			return decimal.NewFromFloat(base), nil
		}
	}
	return decimal.Zero, ErrNotFound
}

// Classification is the full detail row for an award/type/level.
type Classification struct {
	AwardCode           string
	EmploymentType      string
	Classification      string
	ClassificationLevel int
	BaseRate            float64
	BaseRateType        string
	CalculatedRate      float64
	CalculatedRateType  string
}

// ClassificationDetails returns classification details, with the 'AD'
// employment-type fallback.
func (s *Store) ClassificationDetails(ctx context.Context, awardCode, employmentType string, level int) (*Classification, error) {
	for _, et := range []string{employmentType, "AD"} {
		row := s.db.QueryRowContext(ctx, `
			SELECT classification, classification_level,
			       COALESCE(base_rate, 0), COALESCE(base_rate_type, ''),
			       COALESCE(calculated_rate, 0), COALESCE(calculated_rate_type, '')
			FROM classifications
			WHERE award_code = ? AND employee_rate_type_code = ? AND classification_level = ?
			LIMIT 1`,
			awardCode, et, level)

		c := Classification{AwardCode: awardCode, EmploymentType: employmentType}
		err := row.Scan(&c.Classification, &c.ClassificationLevel,
			&c.BaseRate, &c.BaseRateType, &c.CalculatedRate, &c.CalculatedRateType)
		if err == nil {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// WageAllowance is one wage-linked allowance row.
type WageAllowance struct {
	Allowance        string
	Type             string
	Rate             float64
	BaseRate         float64
	RateUnit         string
	AllowanceAmount  float64
	PaymentFrequency string
}

// WageAllowances lists wage allowances for an award.
func (s *Store) WageAllowances(ctx context.Context, awardCode string) ([]WageAllowance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(allowance, ''), COALESCE(type, ''), COALESCE(rate, 0),
		       COALESCE(base_rate, 0), COALESCE(rate_unit, ''),
		       COALESCE(allowance_amount, 0), COALESCE(payment_frequency, '')
		FROM wage_allowances WHERE award_code = ?`, awardCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WageAllowance
	for rows.Next() {
		var a WageAllowance
		if err := rows.Scan(&a.Allowance, &a.Type, &a.Rate, &a.BaseRate,
			&a.RateUnit, &a.AllowanceAmount, &a.PaymentFrequency); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ExpenseAllowance is one expense reimbursement allowance row.
type ExpenseAllowance struct {
	Allowance        string
	AllowanceAmount  float64
	PaymentFrequency string
}

// ExpenseAllowances lists expense allowances for an award.
func (s *Store) ExpenseAllowances(ctx context.Context, awardCode string) ([]ExpenseAllowance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(allowance, ''), COALESCE(allowance_amount, 0), COALESCE(payment_frequency, '')
		FROM expense_allowances WHERE award_code = ?`, awardCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExpenseAllowance
	for rows.Next() {
		var a ExpenseAllowance
		if err := rows.Scan(&a.Allowance, &a.AllowanceAmount, &a.PaymentFrequency); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
