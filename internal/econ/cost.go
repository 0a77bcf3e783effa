// Package econ holds the cost and number-formatting math shared by every
// shop surface: geometric bulk pricing, affordability search, and the
// suffixed display formats.
package econ

import "math"

// BulkCost returns the total price of buying n units in a row, starting
// from base and multiplying by mult per unit. mult of exactly 1 degrades
// to flat pricing.
func BulkCost(base, mult float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if mult == 1 {
		return base * float64(n)
	}
	return base * (1 - math.Pow(mult, float64(n))) / (1 - mult)
}

// MaxAffordable returns the largest purchase quantity whose BulkCost fits
// in budget. The geometric branch searches 1..100; runaway cost curves
// make anything beyond that unreachable in practice.
func MaxAffordable(base, mult, budget float64) int {
	if budget < base {
		return 0
	}
	if mult == 1 {
		return int(math.Floor(budget / base))
	}
	low, high, best := 1, 100, 0
	for low <= high {
		mid := (low + high) / 2
		if BulkCost(base, mult, mid) <= budget {
			best = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return best
}

// Sanitize maps NaN and infinities to fallback. Resource pools go through
// this after every arithmetic step that involves loaded data.
func Sanitize(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
