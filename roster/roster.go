/*
Package roster folds per-shift results into worker, shift, and roster
totals.

PURPOSE:
  Aggregation is deliberately dumb: only gross_pay and paid_hours are
  summed, re-rounded to cents at every aggregation boundary (worker total,
  shift total, roster total). Totals are never re-derived from segment
  data, so a roster total always equals the sum of its displayed parts and
  cents cannot drift.

SHAPES:
  CalculateWorker:      one worker, many shifts (bulk costing)
  CalculateRoster:      many workers, each with their own shifts
  CalculateShiftRoster: shared shifts, each worked by several workers,
                        plus per-worker running totals

All three price shifts with the fine-grained engine against a single rate
table; each worker's casual loading applies to all of that worker's shifts.
*/
package roster

import (
	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/engine"
)

// Worker identifies a rostered worker and the pricing knobs that apply to
// every shift they work.
type Worker struct {
	WorkerID             string
	WorkerName           string
	AwardCode            string
	EmploymentType       string
	Classification       string
	ClassificationLevel  int
	CasualLoadingPercent float64
	Shifts               []engine.ShiftInput
}

// WorkerResult is one worker's costed shifts with boundary-rounded totals.
type WorkerResult struct {
	Worker             Worker
	OrdinaryHourlyRate decimal.Decimal
	TotalCost          decimal.Decimal
	TotalHours         decimal.Decimal
	Shifts             []*engine.ShiftResult
	Warnings           []string
}

// RosterResult aggregates several workers.
type RosterResult struct {
	RosterName string
	TotalCost  decimal.Decimal
	TotalHours decimal.Decimal
	Workers    []*WorkerResult
	Warnings   []string
}

// CalculateWorker prices every shift for one worker and folds the totals.
func CalculateWorker(w Worker, t award.RateTable) (*WorkerResult, error) {
	cost := decimal.Zero
	hours := decimal.Zero
	warnings := []string{}
	results := make([]*engine.ShiftResult, 0, len(w.Shifts))

	for _, in := range w.Shifts {
		in.CasualLoadingPercent = w.CasualLoadingPercent
		res, err := engine.Compute(in, t)
		if err != nil {
			return nil, err
		}
		cost = cost.Add(res.GrossPay)
		hours = hours.Add(res.PaidHours)
		warnings = append(warnings, res.Warnings...)
		results = append(results, res)
	}

	return &WorkerResult{
		Worker:             w,
		OrdinaryHourlyRate: award.OrdinaryHourlyRate(t, decimal.NewFromFloat(w.CasualLoadingPercent)),
		TotalCost:          award.RoundHalfUp(cost, 2),
		TotalHours:         award.RoundHalfUp(hours, 2),
		Shifts:             results,
		Warnings:           warnings,
	}, nil
}

// CalculateRoster prices every worker and folds the roster totals.
func CalculateRoster(name string, workers []Worker, t award.RateTable) (*RosterResult, error) {
	cost := decimal.Zero
	hours := decimal.Zero
	warnings := []string{}
	results := make([]*WorkerResult, 0, len(workers))

	for _, w := range workers {
		wr, err := CalculateWorker(w, t)
		if err != nil {
			return nil, err
		}
		cost = cost.Add(wr.TotalCost)
		hours = hours.Add(wr.TotalHours)
		warnings = append(warnings, wr.Warnings...)
		results = append(results, wr)
	}

	return &RosterResult{
		RosterName: name,
		TotalCost:  award.RoundHalfUp(cost, 2),
		TotalHours: award.RoundHalfUp(hours, 2),
		Workers:    results,
		Warnings:   warnings,
	}, nil
}
