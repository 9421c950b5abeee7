package roster_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/engine"
	"github.com/warp/award-engine/roster"
)

func shiftOn(y int, m time.Month, d int, start string, hours float64) engine.ShiftInput {
	return engine.ShiftInput{
		Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		StartTime:     start,
		DurationHours: hours,
	}
}

func TestCalculateWorker_CombinedTotal(t *testing.T) {
	// GIVEN: One worker with a Wednesday 5h shift and a Saturday 5h shift,
	//        both at 0% loading
	// WHEN: Folding the worker's shifts
	// THEN: 132.75 + 165.94 = 298.69

	w := roster.Worker{
		WorkerID:   "w-1",
		WorkerName: "Alex",
		Shifts: []engine.ShiftInput{
			shiftOn(2025, time.August, 6, "09:00", 5),
			shiftOn(2025, time.August, 9, "09:00", 5),
		},
	}

	res, err := roster.CalculateWorker(w, award.Default())
	require.NoError(t, err)

	assert.Equal(t, "298.69", res.TotalCost.StringFixed(2))
	assert.Equal(t, "10.00", res.TotalHours.StringFixed(2))
	assert.Equal(t, "26.55", res.OrdinaryHourlyRate.StringFixed(2))
	require.Len(t, res.Shifts, 2)
	assert.Equal(t, "132.75", res.Shifts[0].GrossPay.StringFixed(2))
	assert.Equal(t, "165.94", res.Shifts[1].GrossPay.StringFixed(2))
}

func TestCalculateWorker_LoadingAppliesToAllShifts(t *testing.T) {
	// The worker's casual loading overrides whatever the shift inputs carry.

	w := roster.Worker{
		WorkerID:             "w-1",
		CasualLoadingPercent: 25,
		Shifts: []engine.ShiftInput{
			shiftOn(2025, time.August, 4, "09:00", 5),
		},
	}

	res, err := roster.CalculateWorker(w, award.Default())
	require.NoError(t, err)

	assert.Equal(t, "33.19", res.OrdinaryHourlyRate.StringFixed(2))
	assert.Equal(t, "165.95", res.TotalCost.StringFixed(2))
}

func TestCalculateWorker_CollectsWarnings(t *testing.T) {
	w := roster.Worker{
		WorkerID: "w-1",
		Shifts: []engine.ShiftInput{
			shiftOn(2025, time.August, 10, "10:00", 2), // padded to 3h
		},
	}

	res, err := roster.CalculateWorker(w, award.Default())
	require.NoError(t, err)

	assert.Equal(t, "3.00", res.TotalHours.StringFixed(2))
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Minimum casual engagement")
}

func TestCalculateRoster_FoldsWorkers(t *testing.T) {
	// GIVEN: Two workers with one weekday shift each
	// WHEN: Folding the roster
	// THEN: The roster total is the rounded sum of worker totals

	workers := []roster.Worker{
		{
			WorkerID: "w-1",
			Shifts:   []engine.ShiftInput{shiftOn(2025, time.August, 4, "09:00", 5)},
		},
		{
			WorkerID:             "w-2",
			CasualLoadingPercent: 25,
			Shifts:               []engine.ShiftInput{shiftOn(2025, time.August, 4, "09:00", 5)},
		},
	}

	res, err := roster.CalculateRoster("Week 32", workers, award.Default())
	require.NoError(t, err)

	assert.Equal(t, "Week 32", res.RosterName)
	// 132.75 + 165.95
	assert.Equal(t, "298.70", res.TotalCost.StringFixed(2))
	assert.Equal(t, "10.00", res.TotalHours.StringFixed(2))
	require.Len(t, res.Workers, 2)
}

func TestCalculateShiftRoster_SharedShifts(t *testing.T) {
	// GIVEN: One Saturday shift worked by two workers with different loadings
	// WHEN: Folding the shift roster
	// THEN: The shift total folds both workers and per-worker running totals
	//       accumulate across the roster

	workers := []roster.Worker{
		{WorkerID: "w-1", WorkerName: "Alex"},
		{WorkerID: "w-2", WorkerName: "Sam", CasualLoadingPercent: 25},
	}
	shifts := []roster.RosterShift{
		{
			Shift:     shiftOn(2025, time.August, 9, "09:00", 5),
			WorkerIDs: []string{"w-1", "w-2"},
		},
		{
			Shift:     shiftOn(2025, time.August, 6, "09:00", 5),
			WorkerIDs: []string{"w-1"},
		},
	}

	res, err := roster.CalculateShiftRoster("Week 32", workers, shifts, award.Default())
	require.NoError(t, err)

	require.Len(t, res.Shifts, 2)

	// Saturday: w-1 at 0% -> 165.94; w-2 at 25% -> 5 x 41.4875 -> 207.44
	sat := res.Shifts[0]
	assert.Equal(t, award.DaySaturday, sat.DayType)
	require.Len(t, sat.Workers, 2)
	assert.Equal(t, "165.94", sat.Workers[0].Result.GrossPay.StringFixed(2))
	assert.Equal(t, "207.44", sat.Workers[1].Result.GrossPay.StringFixed(2))
	assert.Equal(t, "373.38", sat.TotalCost.StringFixed(2))
	assert.Equal(t, "10.00", sat.TotalHours.StringFixed(2))

	// Wednesday: w-1 only.
	wed := res.Shifts[1]
	assert.Equal(t, award.DayWeekday, wed.DayType)
	assert.Equal(t, "132.75", wed.TotalCost.StringFixed(2))

	// Running totals keep first-appearance order.
	require.Len(t, res.WorkerTotals, 2)
	assert.Equal(t, "w-1", res.WorkerTotals[0].WorkerID)
	assert.Equal(t, "298.69", res.WorkerTotals[0].TotalCost.StringFixed(2))
	assert.Equal(t, "10.00", res.WorkerTotals[0].TotalHours.StringFixed(2))
	assert.Equal(t, "w-2", res.WorkerTotals[1].WorkerID)
	assert.Equal(t, "207.44", res.WorkerTotals[1].TotalCost.StringFixed(2))

	assert.Equal(t, "506.13", res.TotalCost.StringFixed(2))
	assert.Equal(t, "15.00", res.TotalHours.StringFixed(2))
}

func TestCalculateShiftRoster_UnknownWorkerSkipped(t *testing.T) {
	workers := []roster.Worker{{WorkerID: "w-1", WorkerName: "Alex"}}
	shifts := []roster.RosterShift{
		{
			Shift:     shiftOn(2025, time.August, 6, "09:00", 5),
			WorkerIDs: []string{"w-1", "ghost"},
		},
	}

	res, err := roster.CalculateShiftRoster("Week 32", workers, shifts, award.Default())
	require.NoError(t, err)

	require.Len(t, res.Shifts, 1)
	assert.Len(t, res.Shifts[0].Workers, 1)
	assert.Equal(t, "132.75", res.TotalCost.StringFixed(2))
}
