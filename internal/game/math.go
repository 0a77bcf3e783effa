package game

import (
	"math"
	"math/rand"
	"strconv"
)

func floorf(v float64) float64  { return math.Floor(v) }
func ceilf(v float64) float64   { return math.Ceil(v) }
func powf(b, e float64) float64 { return math.Pow(b, e) }

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// formatNum renders a float the shortest way that round-trips, with
// whole values printed without a decimal point.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// newUpgradesSeed draws a fresh seed for the upgrade deck stream.
func newUpgradesSeed() float64 {
	return math.Floor(rand.Float64() * 1000000)
}
