/*
sliced.go - Fine-grained shift costing

ALGORITHM:
  1. Derive the loaded ordinary hourly rate (half-up to cents), then a
     full-precision and a cent-rounded rate per penalty key. Both copies
     matter: Saturday segments are costed from the full-precision rate,
     everything else from the rounded one.
  2. Walk the shift in 6-minute slices. An unpaid-break budget absorbs
     slices from the front of the shift; whatever it doesn't absorb is
     worked time.
  3. Classify each worked slice by its own moment (date + clock), layer an
     overtime tier on weekday time-of-day keys once that calendar day's
     worked hours reach the threshold, and accumulate hours into ordered
     buckets keyed by (penalty key, tier).
  4. Pad to the casual minimum engagement if needed, priced at the key in
     force at the shift's start moment.
  5. Merge each bucket into one segment and sum costs into gross pay.

OVERTIME:
  Accrues per calendar day, measured BEFORE the current slice, so a shift
  crossing midnight restarts its ordinary-hours count on the new day.
  Flat day keys (Saturday/Sunday/public holiday) never escalate.

SATURDAY COSTING:
  Saturday buckets multiply hours by the unrounded rate before rounding the
  product, preserving sub-cent accuracy across the multiplied hours
  (5h x 33.1875 = 165.94, not 5h x 33.19 = 165.95). All other keys cost
  from the cent-rounded rate. Do not extend this to Sunday or public
  holiday keys.
*/
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/award"
)

// sliceSeconds is the simulation step: 6 minutes (0.1 hour). A policy
// constant, not an input.
const sliceSeconds = 360

var secondsPerHour = decimal.NewFromInt(3600)

// bucket identifies one output segment while hours accumulate.
type bucket struct {
	Key  award.PenaltyKey
	Tier award.OvertimeTier
}

// Compute prices a shift by 6-minute slice simulation against the award
// multiplier table. It is deterministic and side-effect free.
func Compute(in ShiftInput, t award.RateTable) (*ShiftResult, error) {
	start, err := in.validate()
	if err != nil {
		return nil, err
	}

	loading := decimal.NewFromFloat(in.CasualLoadingPercent)
	ordinary := award.OrdinaryHourlyRate(t, loading)

	// Full-precision penalty rates for flat-day costing; rounded copies for
	// everything else, padding included.
	fullRates := make(map[award.PenaltyKey]decimal.Decimal, len(t.PenaltyMultipliers))
	roundedRates := make(map[award.PenaltyKey]decimal.Decimal, len(t.PenaltyMultipliers))
	for key, mult := range t.PenaltyMultipliers {
		fullRates[key] = ordinary.Mul(mult)
		roundedRates[key] = award.RoundHalfUp(fullRates[key], 2)
	}

	totalSec := int(math.Round(in.DurationHours * 3600))
	breakSec := int(math.Round(in.BreakMinutes * 60))
	paidSecRaw := totalSec - breakSec
	if paidSecRaw < 0 {
		paidSecRaw = 0
	}
	paidHoursRaw := decimal.NewFromInt(int64(paidSecRaw)).Div(secondsPerHour)

	thresholdSec := t.OrdinaryHoursPerDay * 3600

	var order []bucket
	hoursByBucket := make(map[bucket]decimal.Decimal)
	dailyWorkedSec := make(map[string]int)
	breakRemaining := breakSec

	for elapsed := 0; elapsed < totalSec; elapsed += sliceSeconds {
		step := sliceSeconds
		if rest := totalSec - elapsed; rest < step {
			step = rest
		}
		moment := start.Add(time.Duration(elapsed) * time.Second)

		// Break budget absorbs whole slices from the front of the shift.
		if breakRemaining > 0 {
			if step < breakRemaining {
				breakRemaining -= step
			} else {
				breakRemaining = 0
			}
			continue
		}

		day := moment.Format("2006-01-02")
		workedBeforeSec := dailyWorkedSec[day]
		key := award.MomentKey(t, moment, in.IsPublicHoliday)

		tier := award.OvertimeNone
		wd := moment.Weekday()
		if wd >= time.Monday && wd <= time.Friday && !key.FlatDay() {
			if workedBeforeSec >= thresholdSec {
				if workedBeforeSec-thresholdSec < 3*3600 {
					tier = award.OvertimeFirst3
				} else {
					tier = award.OvertimeBeyond
				}
			}
		}

		b := bucket{Key: key, Tier: tier}
		if _, seen := hoursByBucket[b]; !seen {
			order = append(order, b)
		}
		hoursByBucket[b] = hoursByBucket[b].Add(decimal.NewFromInt(int64(step)).Div(secondsPerHour))
		dailyWorkedSec[day] += step
	}

	paidHours := paidHoursRaw
	warnings := []string{}
	startKey := award.MomentKey(t, start, in.IsPublicHoliday)

	// Casual minimum engagement: pad paid hours up to the floor, priced at
	// the shift's start-moment key.
	if paidHoursRaw.LessThan(t.MinimumEngagementHours) {
		paidHours = t.MinimumEngagementHours
		padding := t.MinimumEngagementHours.Sub(paidHoursRaw)
		warnings = append(warnings, fmt.Sprintf(
			"Minimum casual engagement of %s hours applied (actual hours: %s)",
			t.MinimumEngagementHours.String(), paidHoursRaw.StringFixed(2)))

		b := bucket{Key: award.KeyMinimumEngagement, Tier: award.OvertimeNone}
		if _, seen := hoursByBucket[b]; !seen {
			order = append(order, b)
		}
		hoursByBucket[b] = hoursByBucket[b].Add(padding)
	}

	segments := make([]Segment, 0, len(order))
	for _, b := range order {
		hours := hoursByBucket[b]

		var desc string
		var rateFull decimal.Decimal
		switch {
		case b.Key == award.KeyMinimumEngagement:
			desc = award.PaddingDescription(startKey)
			rateFull = rateOr(roundedRates, startKey, ordinary)
		case b.Key.FlatDay():
			desc = award.Describe(b.Key, b.Tier)
			rateFull = rateOr(fullRates, b.Key, ordinary)
		default:
			desc = award.Describe(b.Key, b.Tier)
			rateFull = ordinary.Mul(t.Multiplier(b.Key)).Mul(t.OvertimeMultiplier(b.Tier))
		}
		rateRounded := award.RoundHalfUp(rateFull, 2)

		var cost decimal.Decimal
		if b.Key == award.KeySaturdayOrdinary {
			cost = award.RoundHalfUp(hours.Mul(rateFull), 2)
		} else {
			cost = award.RoundHalfUp(hours.Mul(rateRounded), 2)
		}

		segments = append(segments, Segment{
			Description: desc,
			Hours:       hours.Round(2),
			Rate:        rateRounded,
			Cost:        cost,
			PenaltyKey:  b.Key,
		})
	}

	gross := decimal.Zero
	for _, s := range segments {
		gross = gross.Add(s.Cost)
	}

	return &ShiftResult{
		ShiftDate: in.Date,
		DayType:   award.DayTypeFor(in.Date, in.IsPublicHoliday),
		PaidHours: paidHours.Round(2),
		GrossPay:  award.RoundHalfUp(gross, 2),
		Segments:  segments,
		Warnings:  warnings,
	}, nil
}

// rateOr looks up a rate by key, falling back to the ordinary rate for
// anything outside the closed key set.
func rateOr(rates map[award.PenaltyKey]decimal.Decimal, key award.PenaltyKey, ordinary decimal.Decimal) decimal.Decimal {
	if r, ok := rates[key]; ok {
		return r
	}
	return ordinary
}
