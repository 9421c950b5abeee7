/*
classify.go - Moment and day-type classification

Classification priority for a worked moment:
  public holiday > Sunday > Saturday > weekday time-of-day window.

Weekday windows use the RateTable clock boundaries: before the early
boundary is early/late, at or after the late boundary is Friday-late on a
Friday and early/late otherwise, and everything between is plain ordinary.

A shift crossing midnight is classified per moment, so the two calendar
days of one shift can legitimately land on different keys.
*/
package award

import "time"

// MomentKey classifies a single worked moment into its base penalty key.
// Overtime is layered on separately by the engine.
func MomentKey(t RateTable, moment time.Time, isPublicHoliday bool) PenaltyKey {
	if isPublicHoliday {
		return KeyPublicHoliday
	}
	switch moment.Weekday() {
	case time.Sunday:
		return KeySunday
	case time.Saturday:
		return KeySaturdayOrdinary
	}

	hour := float64(moment.Hour()) + float64(moment.Minute())/60.0
	if hour < float64(t.EarlyBoundaryHour) {
		return KeyWeekdayEarlyLate
	}
	if hour < float64(t.LateBoundaryHour) {
		return KeyOrdinary
	}
	if moment.Weekday() == time.Friday {
		return KeyFridayLate
	}
	return KeyWeekdayEarlyLate
}

// DayTypeFor derives the shift-level day type from the shift date and the
// caller-supplied public-holiday flag. Holidays are never inferred from a
// calendar here.
func DayTypeFor(date time.Time, isPublicHoliday bool) DayType {
	if isPublicHoliday {
		return DayPublicHoliday
	}
	switch date.Weekday() {
	case time.Sunday:
		return DaySunday
	case time.Saturday:
		return DaySaturday
	}
	return DayWeekday
}
