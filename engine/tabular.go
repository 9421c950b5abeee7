/*
tabular.go - Rate-table shift costing

Coarse engine variant used when hourly rates were already resolved per
award/classification from the rate store. Trades the slice walk for a
three-way partition: flat day rate for Saturday/Sunday/public holiday,
otherwise ordinary hours up to the daily threshold, then overtime tier 1
for up to 3 hours, then tier 2. Time-of-day splits within a weekday shift
are not modeled here.

RATE LOADING:
  Every supplied rate is loaded as round2(rate * (1 + loading/100)). An
  absent rate - or one that loads to zero - falls back to the ordinary rate
  times the award's default multiplier (Saturday 1.25, Sunday 1.50, holiday
  2.25, overtime 1.50/2.00).
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/award"
)

// ResolvedRates is the rate-loader result for one award/employment-type/
// classification-level triple. Optional rates are nil when the store had no
// matching row.
type ResolvedRates struct {
	Ordinary      decimal.Decimal
	Saturday      *decimal.Decimal
	Sunday        *decimal.Decimal
	PublicHoliday *decimal.Decimal
	OvertimeFirst *decimal.Decimal // first 3 overtime hours
	OvertimeAfter *decimal.Decimal // beyond 3 overtime hours
}

// ComputeFromRates prices a shift from pre-resolved hourly rates. Casual
// loading is applied on top of every rate passed in.
func ComputeFromRates(in ShiftInput, rates ResolvedRates, t award.RateTable) (*ShiftResult, error) {
	if _, err := in.validate(); err != nil {
		return nil, err
	}

	loading := decimal.NewFromInt(1).
		Add(decimal.NewFromFloat(in.CasualLoadingPercent).Div(decimal.NewFromInt(100)))
	load := func(r *decimal.Decimal) decimal.Decimal {
		if r == nil {
			return decimal.Zero
		}
		return award.RoundHalfUp(r.Mul(loading), 2)
	}

	ordRate := award.RoundHalfUp(rates.Ordinary.Mul(loading), 2)
	fallback := func(loaded decimal.Decimal, mult string) decimal.Decimal {
		if loaded.IsZero() {
			return award.RoundHalfUp(ordRate.Mul(decimal.RequireFromString(mult)), 2)
		}
		return loaded
	}
	satRate := fallback(load(rates.Saturday), "1.25")
	sunRate := fallback(load(rates.Sunday), "1.50")
	phRate := fallback(load(rates.PublicHoliday), "2.25")
	otFirst := fallback(load(rates.OvertimeFirst), "1.50")
	otAfter := fallback(load(rates.OvertimeAfter), "2.00")

	paidHoursRaw := decimal.NewFromFloat(in.DurationHours).
		Sub(decimal.NewFromFloat(in.BreakMinutes).Div(decimal.NewFromInt(60)))
	if paidHoursRaw.IsNegative() {
		paidHoursRaw = decimal.Zero
	}

	warnings := []string{}
	paidHours := paidHoursRaw
	if paidHoursRaw.LessThan(t.MinimumEngagementHours) {
		paidHours = t.MinimumEngagementHours
		warnings = append(warnings, fmt.Sprintf(
			"Minimum casual engagement of %s hours applied (actual hours: %s)",
			t.MinimumEngagementHours.String(), paidHoursRaw.StringFixed(2)))
	}

	dayType := award.DayTypeFor(in.Date, in.IsPublicHoliday)
	var segments []Segment

	flat := func(desc string, rate decimal.Decimal, key award.PenaltyKey) {
		segments = append(segments, Segment{
			Description: desc,
			Hours:       paidHours.Round(2),
			Rate:        rate,
			Cost:        award.RoundHalfUp(paidHours.Mul(rate), 2),
			PenaltyKey:  key,
		})
	}

	switch dayType {
	case award.DaySaturday:
		flat("Saturday - ordinary hours", satRate, award.KeySaturdayOrdinary)
	case award.DaySunday:
		flat("Sunday - ordinary hours", sunRate, award.KeySunday)
	case award.DayPublicHoliday:
		flat("Public holiday", phRate, award.KeyPublicHoliday)
	default:
		// Weekday: ordinary hours up to the daily threshold, then overtime.
		threshold := decimal.NewFromInt(int64(t.OrdinaryHoursPerDay))
		ordinaryHours := decimal.Min(paidHours, threshold)
		segments = append(segments, Segment{
			Description: "Ordinary hours",
			Hours:       ordinaryHours.Round(2),
			Rate:        ordRate,
			Cost:        award.RoundHalfUp(ordinaryHours.Mul(ordRate), 2),
			PenaltyKey:  award.KeyOrdinary,
		})

		if paidHours.GreaterThan(threshold) {
			otHours := paidHours.Sub(threshold)
			three := decimal.NewFromInt(3)
			firstOT := decimal.Min(otHours, three)
			segments = append(segments, Segment{
				Description: "Ordinary hours (overtime - first 3 hours)",
				Hours:       firstOT.Round(2),
				Rate:        otFirst,
				Cost:        award.RoundHalfUp(firstOT.Mul(otFirst), 2),
				PenaltyKey:  award.KeyOrdinary,
			})
			if otHours.GreaterThan(three) {
				afterOT := otHours.Sub(three)
				segments = append(segments, Segment{
					Description: "Ordinary hours (overtime - beyond 3 hours)",
					Hours:       afterOT.Round(2),
					Rate:        otAfter,
					Cost:        award.RoundHalfUp(afterOT.Mul(otAfter), 2),
					PenaltyKey:  award.KeyOrdinary,
				})
			}
		}
	}

	gross := decimal.Zero
	for _, s := range segments {
		gross = gross.Add(s.Cost)
	}

	return &ShiftResult{
		ShiftDate: in.Date,
		DayType:   dayType,
		PaidHours: paidHours.Round(2),
		GrossPay:  award.RoundHalfUp(gross, 2),
		Segments:  segments,
		Warnings:  warnings,
	}, nil
}
