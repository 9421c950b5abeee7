/*
shiftroster.go - Shared-shift rosters

A shift roster lists shifts once and assigns several workers to each. The
same shift is priced per worker (casual loading differs), shift totals fold
the workers, roster totals fold the shifts, and per-worker running totals
accumulate across all shifts they appear on. Unknown worker IDs on a shift
are skipped rather than failing the roster.
*/
package roster

import (
	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/engine"
)

// RosterShift is one shared shift plus the IDs of the workers on it.
type RosterShift struct {
	Shift     engine.ShiftInput
	WorkerIDs []string
}

// ShiftWorkerResult is one worker's costing of one shared shift.
type ShiftWorkerResult struct {
	Worker             Worker
	OrdinaryHourlyRate decimal.Decimal
	Result             *engine.ShiftResult
}

// ShiftResultRow is one shared shift with all its workers costed.
type ShiftResultRow struct {
	Shift      engine.ShiftInput
	DayType    award.DayType
	Workers    []ShiftWorkerResult
	TotalCost  decimal.Decimal
	TotalHours decimal.Decimal
}

// WorkerTotal is a worker's running total across the whole roster.
type WorkerTotal struct {
	WorkerID   string
	WorkerName string
	TotalHours decimal.Decimal
	TotalCost  decimal.Decimal
}

// ShiftRosterResult is the fully costed shared-shift roster.
type ShiftRosterResult struct {
	RosterName   string
	TotalCost    decimal.Decimal
	TotalHours   decimal.Decimal
	Shifts       []ShiftResultRow
	WorkerTotals []WorkerTotal
	Warnings     []string
}

// CalculateShiftRoster prices every (shift, worker) pair and folds totals at
// the shift, worker, and roster boundaries.
func CalculateShiftRoster(name string, workers []Worker, shifts []RosterShift, t award.RateTable) (*ShiftRosterResult, error) {
	byID := make(map[string]Worker, len(workers))
	for _, w := range workers {
		byID[w.WorkerID] = w
	}

	rosterCost := decimal.Zero
	rosterHours := decimal.Zero
	warnings := []string{}
	rows := make([]ShiftResultRow, 0, len(shifts))

	totalsOrder := []string{}
	totals := make(map[string]*WorkerTotal)

	for _, rs := range shifts {
		row := ShiftResultRow{Shift: rs.Shift, DayType: award.DayWeekday}
		shiftCost := decimal.Zero
		shiftHours := decimal.Zero

		for _, id := range rs.WorkerIDs {
			w, ok := byID[id]
			if !ok {
				continue
			}
			in := rs.Shift
			in.CasualLoadingPercent = w.CasualLoadingPercent
			res, err := engine.Compute(in, t)
			if err != nil {
				return nil, err
			}
			if len(row.Workers) == 0 {
				row.DayType = res.DayType
			}
			row.Workers = append(row.Workers, ShiftWorkerResult{
				Worker:             w,
				OrdinaryHourlyRate: award.OrdinaryHourlyRate(t, decimal.NewFromFloat(w.CasualLoadingPercent)),
				Result:             res,
			})
			shiftCost = shiftCost.Add(res.GrossPay)
			shiftHours = shiftHours.Add(res.PaidHours)
			warnings = append(warnings, res.Warnings...)

			wt, ok := totals[id]
			if !ok {
				wt = &WorkerTotal{WorkerID: id, WorkerName: w.WorkerName}
				totals[id] = wt
				totalsOrder = append(totalsOrder, id)
			}
			wt.TotalHours = wt.TotalHours.Add(res.PaidHours)
			wt.TotalCost = wt.TotalCost.Add(res.GrossPay)
		}

		row.TotalCost = award.RoundHalfUp(shiftCost, 2)
		row.TotalHours = award.RoundHalfUp(shiftHours, 2)
		rows = append(rows, row)
		rosterCost = rosterCost.Add(shiftCost)
		rosterHours = rosterHours.Add(shiftHours)
	}

	workerTotals := make([]WorkerTotal, 0, len(totalsOrder))
	for _, id := range totalsOrder {
		wt := totals[id]
		workerTotals = append(workerTotals, WorkerTotal{
			WorkerID:   wt.WorkerID,
			WorkerName: wt.WorkerName,
			TotalHours: award.RoundHalfUp(wt.TotalHours, 2),
			TotalCost:  award.RoundHalfUp(wt.TotalCost, 2),
		})
	}

	return &ShiftRosterResult{
		RosterName:   name,
		TotalCost:    award.RoundHalfUp(rosterCost, 2),
		TotalHours:   award.RoundHalfUp(rosterHours, 2),
		Shifts:       rows,
		WorkerTotals: workerTotals,
		Warnings:     warnings,
	}, nil
}
