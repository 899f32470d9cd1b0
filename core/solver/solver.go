// Package solver is the forward and inverse financial calculation
// engine. Given a rate, a rate table and borrower inputs it computes
// the eligible gross loan (bounded by LTV cap, stressed-rent
// affordability and explicit size caps, or back-solved from a target
// net loan), then derives fee, rolled interest, deferred interest, net
// loan, total interest and monthly direct debit.
//
// All monetary amounts are computed in floating point with no rounding;
// rounding to whole currency units happens only at display time. The
// solver is pure and deterministic: identical inputs against an
// unchanged table produce bit-identical output.
package solver

import (
	"math"
	"strconv"
)

const (
	// softEpsilon tolerates float drift when flagging loans at the
	// min/max size boundaries
	softEpsilon = 1e-6

	// ltvEpsilon guards forward-mode LTV cap checks
	ltvEpsilon = 1e-9

	// minStressAdj floors the deferred-adjusted stress rate so the
	// affordability division can never blow up
	minStressAdj = 1e-6
)

// feePercent converts a fee column label ("6") to its decimal (0.06)
func feePercent(feeColumn string) float64 {
	n, err := strconv.ParseFloat(feeColumn, 64)
	if err != nil {
		return 0
	}
	return n / 100
}

// roundPct converts a ratio to a whole display percentage
func roundPct(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// minOf returns the smallest of its arguments. Unbounded constraints
// are passed as +Inf so they never win.
func minOf(values ...float64) float64 {
	m := math.Inf(1)
	for _, v := range values {
		if v < m {
			m = v
		}
	}
	return m
}
