/*
rates.go - RateTable and built-in default constants

PURPOSE:
  Holds every tunable number the engines need: base weekly rate, penalty
  multipliers, overtime multipliers, the daily ordinary-hours threshold,
  minimum engagement, and the early/late clock boundaries.

DEFAULTS:
  Default() returns the MA000004 retail-award constants used when no
  externally resolved rates are available (database unreachable, award not
  found). In normal operation rates come from the store and flow through
  engine.ComputeFromRates instead.

IMMUTABILITY:
  A RateTable is constructed once per calculation and passed by value.
  Nothing in this package mutates one after construction, which keeps the
  engines pure and trivially testable with alternate rate sets.
*/
package award

import "github.com/shopspring/decimal"

// RateTable carries the full rule set for one award/classification.
type RateTable struct {
	AwardCode    string
	RatesVersion string

	BaseWeeklyRate    decimal.Decimal
	StandardWeekHours decimal.Decimal

	// Penalty multipliers applied to the ordinary hourly rate, by key.
	PenaltyMultipliers map[PenaltyKey]decimal.Decimal

	// Overtime multipliers applied on top of weekday time-of-day rates.
	OvertimeFirst3Multiplier decimal.Decimal
	OvertimeBeyondMultiplier decimal.Decimal

	// Daily ordinary hours before overtime starts accruing.
	OrdinaryHoursPerDay int

	// Casual minimum engagement floor, in hours.
	MinimumEngagementHours decimal.Decimal

	// Clock-hour boundaries for the weekday early/late penalty window.
	EarlyBoundaryHour int
	LateBoundaryHour  int
}

// Default returns the built-in MA000004 fallback rate table.
func Default() RateTable {
	return RateTable{
		AwardCode:         "MA000004",
		RatesVersion:      "2024-07-01",
		BaseWeeklyRate:    decimal.RequireFromString("1008.90"),
		StandardWeekHours: decimal.NewFromInt(38),
		PenaltyMultipliers: map[PenaltyKey]decimal.Decimal{
			KeyOrdinary:         decimal.RequireFromString("1.00"),
			KeyWeekdayEarlyLate: decimal.RequireFromString("1.10"),
			KeyFridayLate:       decimal.RequireFromString("1.15"),
			KeySaturdayOrdinary: decimal.RequireFromString("1.25"),
			KeySunday:           decimal.RequireFromString("1.50"),
			KeyPublicHoliday:    decimal.RequireFromString("2.25"),
		},
		OvertimeFirst3Multiplier: decimal.RequireFromString("1.50"),
		OvertimeBeyondMultiplier: decimal.RequireFromString("2.00"),
		OrdinaryHoursPerDay:      9,
		MinimumEngagementHours:   decimal.NewFromInt(3),
		EarlyBoundaryHour:        7,
		LateBoundaryHour:         18,
	}
}

// Multiplier returns the penalty multiplier for a key, defaulting to 1.0 for
// anything outside the closed set.
func (t RateTable) Multiplier(key PenaltyKey) decimal.Decimal {
	if m, ok := t.PenaltyMultipliers[key]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// OvertimeMultiplier returns the escalation factor for a tier.
func (t RateTable) OvertimeMultiplier(tier OvertimeTier) decimal.Decimal {
	switch tier {
	case OvertimeFirst3:
		return t.OvertimeFirst3Multiplier
	case OvertimeBeyond:
		return t.OvertimeBeyondMultiplier
	}
	return decimal.NewFromInt(1)
}
