/*
rounding.go - Exact-cent rounding

The award uses half-up rounding: multiply by 10^places, add 0.5, floor,
divide back. Midpoints always round toward the higher magnitude, so 49.785
rounds to 49.79 where banker's rounding would give 49.78. Every published
rate and cost in the system goes through RoundHalfUp.
*/
package award

import "github.com/shopspring/decimal"

var half = decimal.RequireFromString("0.5")

// RoundHalfUp rounds d to the given number of decimal places with midpoints
// rounding up.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	exp := decimal.New(1, places) // 10^places
	return d.Mul(exp).Add(half).Floor().Div(exp)
}

// OrdinaryHourlyRate derives the loaded ordinary hourly rate from a base
// weekly rate: (weekly / standard hours) * (1 + loading/100), rounded to
// cents half-up.
func OrdinaryHourlyRate(t RateTable, casualLoadingPercent decimal.Decimal) decimal.Decimal {
	loading := decimal.NewFromInt(1).Add(casualLoadingPercent.Div(decimal.NewFromInt(100)))
	return RoundHalfUp(t.BaseWeeklyRate.Div(t.StandardWeekHours).Mul(loading), 2)
}
