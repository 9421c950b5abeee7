/*
reference.go - Reference-data listings over the seeded MAP tables

Read-only queries behind the reference-data and award-picker endpoints:
award registry, per-award classification lists, and table row counts. The
'AD' (adult) rows are always included when filtering classifications by
employment type, since they apply to every type.
*/
package sqlite

import "context"

// Award is one row of the award registry.
type Award struct {
	AwardCode     string
	Name          string
	VersionNumber string
	OperativeFrom *string
	OperativeTo   *string
}

// ListAwards returns the award registry ordered by award code.
func (s *Store) ListAwards(ctx context.Context) ([]Award, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT award_code, name, COALESCE(version_number, ''),
		       award_operative_from, award_operative_to
		FROM awards ORDER BY award_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Award
	for rows.Next() {
		var a Award
		if err := rows.Scan(&a.AwardCode, &a.Name, &a.VersionNumber,
			&a.OperativeFrom, &a.OperativeTo); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Classifications lists an award's classifications ordered by level then
// name. An employment-type filter keeps that type's rows plus the 'AD' rows;
// empty means no filter.
func (s *Store) Classifications(ctx context.Context, awardCode, employmentType string) ([]Classification, error) {
	query := `
		SELECT employee_rate_type_code, classification, classification_level,
		       COALESCE(base_rate, 0), COALESCE(base_rate_type, ''),
		       COALESCE(calculated_rate, 0), COALESCE(calculated_rate_type, '')
		FROM classifications
		WHERE award_code = ?`
	args := []any{awardCode}
	if employmentType != "" {
		query += ` AND employee_rate_type_code IN (?, 'AD')`
		args = append(args, employmentType)
	}
	query += ` ORDER BY classification_level, classification`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Classification
	for rows.Next() {
		c := Classification{AwardCode: awardCode}
		if err := rows.Scan(&c.EmploymentType, &c.Classification, &c.ClassificationLevel,
			&c.BaseRate, &c.BaseRateType, &c.CalculatedRate, &c.CalculatedRateType); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReferenceCounts is the per-table row count summary.
type ReferenceCounts struct {
	Awards            int
	Classifications   int
	PenaltyRates      int
	WageAllowances    int
	ExpenseAllowances int
}

// ReferenceCounts counts the rows in every seeded reference table.
func (s *Store) ReferenceCounts(ctx context.Context) (*ReferenceCounts, error) {
	var c ReferenceCounts
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"awards", &c.Awards},
		{"classifications", &c.Classifications},
		{"penalty_rates", &c.PenaltyRates},
		{"wage_allowances", &c.WageAllowances},
		{"expense_allowances", &c.ExpenseAllowances},
	} {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table).Scan(q.dst); err != nil {
			return nil, err
		}
	}
	return &c, nil
}
