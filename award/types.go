/*
Package award defines the wage-rule policy model for the MA000004 General
Retail Industry Award: penalty-rate classification, overtime tiers, and the
rate table the calculation engines price against.

PURPOSE:
  Everything here is pure data and pure functions. The engines (package
  engine) walk a shift timeline and ask this package two questions:
  - which penalty key applies to a given moment?
  - what does an hour under that key cost?

KEY CONCEPTS IN THIS FILE (types.go):
  - PenaltyKey: classification tag for a unit of worked time (sunday,
    friday_late, ...). The set is closed by construction of the classifier.
  - OvertimeTier: escalation applied once a day's ordinary hours are
    exhausted. Tier 1 covers the first 3 overtime hours, tier 2 the rest.
  - DayType: shift-level day classification used for display and for the
    coarse rate-table engine. Distinct from the finer per-moment PenaltyKey.

DESIGN PRINCIPLES:
  1. Precision: all money uses decimal.Decimal, never float64
  2. Immutability: RateTable values are built fresh and passed in, never
     held as ambient globals
  3. Type safety: PenaltyKey/DayType are distinct string types so a day
     type can't be priced as a penalty key by accident

SEE ALSO:
  - rates.go: RateTable and the built-in default constants
  - classify.go: moment and day-type classification
  - rounding.go: half-up cent rounding
*/
package award

// =============================================================================
// PENALTY KEYS
// =============================================================================

// PenaltyKey identifies which flat or time-of-day rate applies to a unit of
// worked time. Keys double as merge keys for output segments.
type PenaltyKey string

const (
	KeyOrdinary          PenaltyKey = "ordinary"
	KeyWeekdayEarlyLate  PenaltyKey = "weekday_early_late"
	KeyFridayLate        PenaltyKey = "friday_late"
	KeySaturdayOrdinary  PenaltyKey = "saturday_ordinary"
	KeySunday            PenaltyKey = "sunday"
	KeyPublicHoliday     PenaltyKey = "publicholiday"
	KeyMinimumEngagement PenaltyKey = "minimum_engagement_padding"
)

// FlatDay reports whether the key carries a flat day rate that is never
// subject to weekday overtime escalation.
func (k PenaltyKey) FlatDay() bool {
	switch k {
	case KeySaturdayOrdinary, KeySunday, KeyPublicHoliday:
		return true
	}
	return false
}

// =============================================================================
// OVERTIME TIERS
// =============================================================================

// OvertimeTier tags how far past the daily ordinary-hours threshold a unit
// of work falls.
type OvertimeTier int

const (
	OvertimeNone   OvertimeTier = iota
	OvertimeFirst3              // first 3 hours past the threshold
	OvertimeBeyond              // everything after that
)

// =============================================================================
// DAY TYPES
// =============================================================================

// DayType is the shift-level classification derived from the shift date and
// the public-holiday flag.
type DayType string

const (
	DayWeekday       DayType = "weekday"
	DaySaturday      DayType = "saturday"
	DaySunday        DayType = "sunday"
	DayPublicHoliday DayType = "public_holiday"
)

// =============================================================================
// SEGMENT DESCRIPTIONS
// =============================================================================

var descriptions = map[PenaltyKey]string{
	KeyOrdinary:         "Ordinary hours",
	KeyWeekdayEarlyLate: "Weekday early/late",
	KeyFridayLate:       "Friday after 6pm",
	KeySaturdayOrdinary: "Saturday - ordinary hours",
	KeySunday:           "Sunday - ordinary hours",
	KeyPublicHoliday:    "Public holiday",
}

// Describe returns the human-readable label for a priced segment.
func Describe(key PenaltyKey, tier OvertimeTier) string {
	desc, ok := descriptions[key]
	if !ok {
		desc = string(key)
	}
	switch tier {
	case OvertimeFirst3:
		desc += " (overtime - first 3 hours)"
	case OvertimeBeyond:
		desc += " (overtime - beyond 3 hours)"
	}
	return desc
}

// PaddingDescription labels a minimum-engagement padding segment by the
// penalty key in force at the start of the shift.
func PaddingDescription(startKey PenaltyKey) string {
	switch startKey {
	case KeySunday:
		return "Minimum engagement padding (Sunday rate)"
	case KeySaturdayOrdinary:
		return "Minimum engagement padding (Saturday rate)"
	case KeyPublicHoliday:
		return "Minimum engagement padding (Public holiday rate)"
	}
	return "Minimum engagement padding (Weekday rate)"
}
