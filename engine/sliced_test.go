package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/engine"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func shift(d time.Time, start string, hours float64) engine.ShiftInput {
	return engine.ShiftInput{
		Date:          d,
		StartTime:     start,
		DurationHours: hours,
	}
}

func sumCosts(res *engine.ShiftResult) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range res.Segments {
		sum = sum.Add(s.Cost)
	}
	return sum
}

// =============================================================================
// END-TO-END SCENARIOS (0% casual loading unless noted)
// =============================================================================

func TestCompute_WeekdayOrdinary(t *testing.T) {
	// GIVEN: Monday 09:00-14:00, 5 hours, no break, 0% loading
	// WHEN: Pricing the shift
	// THEN: One ordinary segment, 5h x 26.55 = 132.75

	res, err := engine.Compute(shift(date(2025, time.August, 4), "09:00", 5), award.Default())
	require.NoError(t, err)

	assert.Equal(t, "132.75", res.GrossPay.StringFixed(2))
	assert.Equal(t, "5.00", res.PaidHours.StringFixed(2))
	assert.Equal(t, award.DayWeekday, res.DayType)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, award.KeyOrdinary, res.Segments[0].PenaltyKey)
	assert.Equal(t, "26.55", res.Segments[0].Rate.StringFixed(2))
	assert.Empty(t, res.Warnings)
}

func TestCompute_SaturdayFullPrecision(t *testing.T) {
	// GIVEN: Saturday 09:00-14:00, 5 hours
	// WHEN: Pricing the shift
	// THEN: Cost comes from the unrounded rate (5 x 33.1875 = 165.94),
	//       not the rounded rate (5 x 33.19 = 165.95)

	res, err := engine.Compute(shift(date(2025, time.August, 9), "09:00", 5), award.Default())
	require.NoError(t, err)

	assert.Equal(t, "165.94", res.GrossPay.StringFixed(2))
	assert.Equal(t, award.DaySaturday, res.DayType)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, award.KeySaturdayOrdinary, res.Segments[0].PenaltyKey)
	// The displayed rate is still the rounded one.
	assert.Equal(t, "33.19", res.Segments[0].Rate.StringFixed(2))
}

func TestCompute_SaturdayWithBreak(t *testing.T) {
	// GIVEN: Saturday 09:00-14:00 with a 30-minute unpaid break
	// WHEN: Pricing the shift
	// THEN: 4.5 paid hours, 4.5 x 33.1875 = 149.34

	in := shift(date(2025, time.August, 9), "09:00", 5)
	in.BreakMinutes = 30
	res, err := engine.Compute(in, award.Default())
	require.NoError(t, err)

	assert.Equal(t, "149.34", res.GrossPay.StringFixed(2))
	assert.Equal(t, "4.50", res.PaidHours.StringFixed(2))
}

func TestCompute_ThursdayLateEvening(t *testing.T) {
	// GIVEN: Thursday 17:00-21:00
	// WHEN: Pricing the shift
	// THEN: 1h ordinary (26.55) + 3h early/late (29.21) = 114.18

	res, err := engine.Compute(shift(date(2025, time.August, 7), "17:00", 4), award.Default())
	require.NoError(t, err)

	assert.Equal(t, "114.18", res.GrossPay.StringFixed(2))
	require.Len(t, res.Segments, 2)

	assert.Equal(t, award.KeyOrdinary, res.Segments[0].PenaltyKey)
	assert.Equal(t, "1.00", res.Segments[0].Hours.StringFixed(2))
	assert.Equal(t, "26.55", res.Segments[0].Cost.StringFixed(2))

	assert.Equal(t, award.KeyWeekdayEarlyLate, res.Segments[1].PenaltyKey)
	assert.Equal(t, "3.00", res.Segments[1].Hours.StringFixed(2))
	assert.Equal(t, "29.21", res.Segments[1].Rate.StringFixed(2))
	assert.Equal(t, "87.63", res.Segments[1].Cost.StringFixed(2))
}

func TestCompute_MondayOvertime(t *testing.T) {
	// GIVEN: Monday 10:00 for 12 hours, crossing the 9h daily threshold
	// WHEN: Pricing the shift
	// THEN: 8h ordinary (212.40) + 1h early/late (29.21)
	//       + 3h early/late overtime tier 1 at 43.81 (131.43) = 373.04

	res, err := engine.Compute(shift(date(2025, time.August, 4), "10:00", 12), award.Default())
	require.NoError(t, err)

	assert.Equal(t, "373.04", res.GrossPay.StringFixed(2))
	assert.Equal(t, "12.00", res.PaidHours.StringFixed(2))
	require.Len(t, res.Segments, 3)

	assert.Equal(t, "8.00", res.Segments[0].Hours.StringFixed(2))
	assert.Equal(t, "212.40", res.Segments[0].Cost.StringFixed(2))

	assert.Equal(t, "1.00", res.Segments[1].Hours.StringFixed(2))
	assert.Equal(t, "29.21", res.Segments[1].Cost.StringFixed(2))

	// Overtime starts once the day's 9 worked hours are exhausted (19:00).
	assert.Equal(t, "3.00", res.Segments[2].Hours.StringFixed(2))
	assert.Equal(t, "43.81", res.Segments[2].Rate.StringFixed(2))
	assert.Equal(t, "131.43", res.Segments[2].Cost.StringFixed(2))
	assert.Contains(t, res.Segments[2].Description, "overtime - first 3 hours")
}

func TestCompute_SundayMinimumEngagement(t *testing.T) {
	// GIVEN: Sunday 10:00 for 2 hours, below the 3-hour casual minimum
	// WHEN: Pricing the shift
	// THEN: Padded to 3 paid hours at the Sunday rate, gross 119.49, warning present

	res, err := engine.Compute(shift(date(2025, time.August, 10), "10:00", 2), award.Default())
	require.NoError(t, err)

	assert.Equal(t, "119.49", res.GrossPay.StringFixed(2))
	assert.Equal(t, "3.00", res.PaidHours.StringFixed(2))
	assert.Equal(t, award.DaySunday, res.DayType)

	require.Len(t, res.Segments, 2)
	assert.Equal(t, award.KeySunday, res.Segments[0].PenaltyKey)
	assert.Equal(t, "79.66", res.Segments[0].Cost.StringFixed(2))
	assert.Equal(t, award.KeyMinimumEngagement, res.Segments[1].PenaltyKey)
	assert.Equal(t, "39.83", res.Segments[1].Rate.StringFixed(2))
	assert.Equal(t, "39.83", res.Segments[1].Cost.StringFixed(2))

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Minimum casual engagement of 3 hours")
	assert.Contains(t, res.Warnings[0], "actual hours: 2.00")
}

func TestCompute_CasualLoading(t *testing.T) {
	// GIVEN: The weekday ordinary shift at 25% casual loading
	// WHEN: Pricing the shift
	// THEN: Rate lifts to 33.19 (26.5500 x 1.25 = 33.1875, half-up)

	in := shift(date(2025, time.August, 4), "09:00", 5)
	in.CasualLoadingPercent = 25
	res, err := engine.Compute(in, award.Default())
	require.NoError(t, err)

	assert.Equal(t, "165.95", res.GrossPay.StringFixed(2))
	require.Len(t, res.Segments, 1)
	assert.Equal(t, "33.19", res.Segments[0].Rate.StringFixed(2))
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestCompute_ZeroDuration(t *testing.T) {
	// GIVEN: A zero-length shift
	// WHEN: Pricing it
	// THEN: Minimum engagement alone pads it to 3 paid hours

	res, err := engine.Compute(shift(date(2025, time.August, 4), "09:00", 0), award.Default())
	require.NoError(t, err)

	assert.Equal(t, "3.00", res.PaidHours.StringFixed(2))
	assert.Equal(t, "79.65", res.GrossPay.StringFixed(2))
	require.Len(t, res.Segments, 1)
	assert.Equal(t, award.KeyMinimumEngagement, res.Segments[0].PenaltyKey)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "actual hours: 0.00")
}

func TestCompute_BreakLongerThanShift(t *testing.T) {
	// GIVEN: A 1-hour shift with a 2-hour break
	// WHEN: Pricing it
	// THEN: Raw paid hours clamp to zero and the minimum engagement applies

	in := shift(date(2025, time.August, 4), "09:00", 1)
	in.BreakMinutes = 120
	res, err := engine.Compute(in, award.Default())
	require.NoError(t, err)

	assert.Equal(t, "3.00", res.PaidHours.StringFixed(2))
	assert.Equal(t, "79.65", res.GrossPay.StringFixed(2))
}

func TestCompute_MidnightCrossing(t *testing.T) {
	// GIVEN: Friday 21:00 for 6 hours, crossing into Saturday
	// WHEN: Pricing the shift
	// THEN: Friday-late hours until midnight, Saturday hours after;
	//       day type stays with the start date

	res, err := engine.Compute(shift(date(2025, time.August, 8), "21:00", 6), award.Default())
	require.NoError(t, err)

	assert.Equal(t, award.DayWeekday, res.DayType)
	require.Len(t, res.Segments, 2)

	assert.Equal(t, award.KeyFridayLate, res.Segments[0].PenaltyKey)
	assert.Equal(t, "3.00", res.Segments[0].Hours.StringFixed(2))
	assert.Equal(t, "30.53", res.Segments[0].Rate.StringFixed(2))

	assert.Equal(t, award.KeySaturdayOrdinary, res.Segments[1].PenaltyKey)
	assert.Equal(t, "3.00", res.Segments[1].Hours.StringFixed(2))
}

func TestCompute_HolidayOverridesWeekday(t *testing.T) {
	// GIVEN: A Monday flagged as a public holiday
	// WHEN: Pricing a 5-hour shift
	// THEN: The whole shift prices at the public holiday rate (2.25x)

	in := shift(date(2025, time.August, 4), "09:00", 5)
	in.IsPublicHoliday = true
	res, err := engine.Compute(in, award.Default())
	require.NoError(t, err)

	assert.Equal(t, award.DayPublicHoliday, res.DayType)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, award.KeyPublicHoliday, res.Segments[0].PenaltyKey)
	// 26.55 x 2.25 = 59.7375 -> 59.74; 5 x 59.74 = 298.70
	assert.Equal(t, "59.74", res.Segments[0].Rate.StringFixed(2))
	assert.Equal(t, "298.70", res.GrossPay.StringFixed(2))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestCompute_RejectsBadInput(t *testing.T) {
	table := award.Default()

	_, err := engine.Compute(shift(date(2025, time.August, 4), "09:00", -1), table)
	assert.ErrorIs(t, err, engine.ErrNegativeDuration)

	in := shift(date(2025, time.August, 4), "09:00", 5)
	in.BreakMinutes = -10
	_, err = engine.Compute(in, table)
	assert.ErrorIs(t, err, engine.ErrNegativeBreak)

	for _, bad := range []string{"", "9am", "25:00", "09:75", "09"} {
		_, err := engine.Compute(shift(date(2025, time.August, 4), bad, 5), table)
		assert.Error(t, err, "start_time %q should be rejected", bad)
	}
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestCompute_Idempotent(t *testing.T) {
	// GIVEN: Identical inputs
	// WHEN: Computing twice
	// THEN: Results are identical (pure function, no hidden state)

	in := shift(date(2025, time.August, 4), "10:00", 12)
	table := award.Default()

	a, err := engine.Compute(in, table)
	require.NoError(t, err)
	b, err := engine.Compute(in, table)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompute_GrossEqualsSegmentSum(t *testing.T) {
	// Gross pay must be exactly the rounded sum of segment costs for every
	// shift shape, never re-derived some other way.

	table := award.Default()
	inputs := []engine.ShiftInput{
		shift(date(2025, time.August, 4), "09:00", 5),
		shift(date(2025, time.August, 4), "10:00", 12),
		shift(date(2025, time.August, 7), "17:00", 4),
		shift(date(2025, time.August, 8), "21:00", 6),
		shift(date(2025, time.August, 9), "09:00", 5),
		shift(date(2025, time.August, 10), "10:00", 2),
		shift(date(2025, time.August, 4), "06:00", 13.5),
	}
	for _, in := range inputs {
		res, err := engine.Compute(in, table)
		require.NoError(t, err)

		sum := award.RoundHalfUp(sumCosts(res), 2)
		assert.True(t, res.GrossPay.Equal(sum),
			"gross %s != segment sum %s for %s %s", res.GrossPay, sum, in.Date.Format("2006-01-02"), in.StartTime)

		seen := map[string]bool{}
		for _, s := range res.Segments {
			k := string(s.PenaltyKey) + s.Description
			assert.False(t, seen[k], "duplicate segment %q", s.Description)
			seen[k] = true
		}
	}
}
