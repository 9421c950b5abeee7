/*
seed.go - CSV import from the MAP export files

The five MAP exports (awards, classifications, wage allowances, expense
allowances, penalty rates) arrive as CSV with a header row, UTF-8 BOM,
currency symbols, thousands separators, and three different date formats.
Each seeder replaces the table wholesale inside one transaction.
*/
package sqlite

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// record is one CSV row addressed by header name.
type record map[string]string

func readCSV(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	// Strip the UTF-8 BOM the MAP exports carry on the first column.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var out []record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rec := make(record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r record) str(key string) string {
	return strings.TrimSpace(r[key])
}

// parseDate accepts the formats seen across the MAP exports; empty and
// unparseable values are nil.
func parseDate(val string) *string {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, val); err == nil {
			s := t.Format("2006-01-02")
			return &s
		}
	}
	return nil
}

// parseFloat strips currency symbols and thousands separators.
func parseFloat(val string) *float64 {
	cleaned := strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(val))
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseInt(val string) *int {
	f := parseFloat(val)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// SeedAwards replaces the awards table from a MAP award export.
func (s *Store) SeedAwards(ctx context.Context, csvPath string) (int, error) {
	recs, err := readCSV(csvPath)
	if err != nil {
		return 0, err
	}
	return s.replaceAll(ctx, "awards", recs, `
		INSERT INTO awards (award_id, award_fixed_id, award_code, name, version_number,
			award_operative_from, award_operative_to, last_modified_datetime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		func(r record) []any {
			return []any{
				r.str("awardID"), nullable(r.str("awardFixedID")), r.str("awardCode"),
				r.str("name"), nullable(r.str("versionNumber")),
				parseDate(r.str("awardOperativeFrom")), parseDate(r.str("awardOperativeTo")),
				parseDate(r.str("lastModifiedDateTime")),
			}
		}, nil)
}

// SeedClassifications replaces the classifications table.
func (s *Store) SeedClassifications(ctx context.Context, csvPath string) (int, error) {
	recs, err := readCSV(csvPath)
	if err != nil {
		return 0, err
	}
	return s.replaceAll(ctx, "classifications", recs, `
		INSERT INTO classifications (award_code, employee_rate_type_code, classification,
			classification_level, base_rate, base_rate_type, calculated_rate,
			calculated_rate_type, operative_from, operative_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(r record) []any {
			return []any{
				r.str("awardCode"), r.str("employeeRateTypeCode"), r.str("classification"),
				intOr(parseInt(r.str("classificationLevel")), 1),
				parseFloat(r.str("baseRate")), nullable(r.str("baseRateType")),
				parseFloat(r.str("calculatedRate")), nullable(r.str("calculatedRateType")),
				parseDate(r.str("operativeFrom")), parseDate(r.str("operativeTo")),
			}
		}, nil)
}

// SeedWageAllowances replaces the wage_allowances table.
func (s *Store) SeedWageAllowances(ctx context.Context, csvPath string) (int, error) {
	recs, err := readCSV(csvPath)
	if err != nil {
		return 0, err
	}
	return s.replaceAll(ctx, "wage_allowances", recs, `
		INSERT INTO wage_allowances (award_code, allowance, type, rate, base_rate,
			rate_unit, allowance_amount, payment_frequency, operative_from, operative_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(r record) []any {
			return []any{
				r.str("awardCode"), nullable(r.str("allowance")), nullable(r.str("type")),
				parseFloat(r.str("rate")), parseFloat(r.str("baseRate")),
				nullable(r.str("rateUnit")), parseFloat(r.str("allowanceAmount")),
				nullable(r.str("paymentFrequency")),
				parseDate(r.str("operativeFrom")), parseDate(r.str("operativeTo")),
			}
		}, nil)
}

// SeedExpenseAllowances replaces the expense_allowances table. The export
// is inconsistent about the operativeFrom header case.
func (s *Store) SeedExpenseAllowances(ctx context.Context, csvPath string) (int, error) {
	recs, err := readCSV(csvPath)
	if err != nil {
		return 0, err
	}
	return s.replaceAll(ctx, "expense_allowances", recs, `
		INSERT INTO expense_allowances (award_code, allowance, allowance_amount,
			payment_frequency, operative_from, operative_to)
		VALUES (?, ?, ?, ?, ?, ?)`,
		func(r record) []any {
			from := r.str("OperativeFrom")
			if from == "" {
				from = r.str("operativeFrom")
			}
			return []any{
				r.str("awardCode"), nullable(r.str("allowance")),
				parseFloat(r.str("allowanceAmount")), nullable(r.str("paymentFrequency")),
				parseDate(from), parseDate(r.str("operativeTo")),
			}
		}, nil)
}

// SeedPenaltyRates replaces the penalty_rates table, skipping rows without
// an award code.
func (s *Store) SeedPenaltyRates(ctx context.Context, csvPath string) (int, error) {
	recs, err := readCSV(csvPath)
	if err != nil {
		return 0, err
	}
	return s.replaceAll(ctx, "penalty_rates", recs, `
		INSERT INTO penalty_rates (award_code, employee_rate_type_code, classification,
			classification_level, penalty_description, rate, penalty_rate_unit,
			penalty_calculated_value, operative_from, operative_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(r record) []any {
			return []any{
				r.str("awardCode"), r.str("employeeRateTypeCode"), r.str("classification"),
				intOr(parseInt(r.str("classificationLevel")), 1),
				r.str("penaltyDescription"), parseFloat(r.str("rate")),
				nullable(r.str("penaltyRateUnit")), parseFloat(r.str("penaltyCalculatedValue")),
				parseDate(r.str("operativeFrom")), parseDate(r.str("operativeTo")),
			}
		},
		func(r record) bool { return r.str("awardCode") != "" })
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// replaceAll deletes a table's rows and inserts the records in one
// transaction, returning the inserted count.
func (s *Store) replaceAll(ctx context.Context, table string, recs []record,
	insertSQL string, args func(record) []any, keep func(record) bool) (int, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, rec := range recs {
		if keep != nil && !keep(rec) {
			continue
		}
		if _, err := stmt.ExecContext(ctx, args(rec)...); err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
