/*
Package engine computes gross pay for a single work shift under the award
rule set in package award.

PURPOSE:
  Two engine variants implement the same ShiftInput -> ShiftResult contract
  at different fidelity:

  Compute (sliced.go):
    Simulates the shift as 6-minute slices, classifying each worked slice
    into a penalty key and accruing per-calendar-day overtime. Used when no
    externally resolved rates exist - prices everything from the award
    multiplier table.

  ComputeFromRates (tabular.go):
    Coarse variant used when per-day-type and per-overtime-tier hourly
    rates were already resolved from the rate store. Partitions the shift
    into at most three segments without slice-level simulation.

DESIGN PRINCIPLES:
  1. Purity: no I/O, no shared state; identical inputs give byte-identical
     results, safe to call concurrently without coordination
  2. Precision: decimal.Decimal end to end, half-up rounding at output
     boundaries only
  3. Fail-fast validation: malformed start time or negative duration
     rejects the input outright - no partial results

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftInput: one contiguous work interval plus pricing knobs
  - Segment: a priced, labeled run of hours (merged by penalty key)
  - ShiftResult: ordered segments, totals, and advisory warnings

SEE ALSO:
  - award/: classification, rate table, rounding
  - roster/: folds of many ShiftResults into worker/roster totals
*/
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/award"
)

// =============================================================================
// INPUT
// =============================================================================

// ShiftInput describes one contiguous shift. Break time is unpaid and is
// consumed from the start of the shift, not distributed across it.
type ShiftInput struct {
	Date                 time.Time // calendar date the shift starts on
	StartTime            string    // "HH:MM", 24-hour clock
	DurationHours        float64
	BreakMinutes         float64
	IsPublicHoliday      bool
	CasualLoadingPercent float64
}

// Validation errors. The engines reject bad input rather than producing a
// partial result.
var (
	ErrNegativeDuration = errors.New("duration_hours must not be negative")
	ErrNegativeBreak    = errors.New("break_minutes must not be negative")
)

// parseStartTime parses "HH:MM" on a 24-hour clock.
func parseStartTime(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid start_time %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start_time %q: %w", s, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start_time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid start_time %q: out of range", s)
	}
	return hour, minute, nil
}

func (in ShiftInput) validate() (time.Time, error) {
	if in.DurationHours < 0 {
		return time.Time{}, ErrNegativeDuration
	}
	if in.BreakMinutes < 0 {
		return time.Time{}, ErrNegativeBreak
	}
	h, m, err := parseStartTime(in.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	d := in.Date
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, time.UTC), nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// Segment is a priced, labeled run of paid hours. Hours, rate, and cost are
// rounded to cents; a segment never carries negative hours or cost.
type Segment struct {
	Description string
	Hours       decimal.Decimal
	Rate        decimal.Decimal
	Cost        decimal.Decimal
	PenaltyKey  award.PenaltyKey
}

// ShiftResult is the fully priced shift. Segments are ordered by first
// appearance of their penalty key during the walk; each key appears once.
type ShiftResult struct {
	ShiftDate time.Time
	DayType   award.DayType
	PaidHours decimal.Decimal
	GrossPay  decimal.Decimal
	Segments  []Segment
	Warnings  []string
}
