package econ

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var suffixes = [...]string{"", "K", "M", "B", "T"}

// FormatAmount renders a resource amount or price. Values under one keep
// three decimals, values under a thousand keep two, and everything above
// collapses to one decimal with a K/M/B/T suffix.
func FormatAmount(v float64) string {
	if v < 1 {
		return trimZeros(fmt.Sprintf("%.3f", v))
	}
	if v < 1000 {
		if v == math.Floor(v) {
			return fmt.Sprintf("%d", int64(v))
		}
		return trimZeros(fmt.Sprintf("%.2f", v))
	}
	place := 0
	for v >= 1000 && place < len(suffixes)-1 {
		v /= 1000
		place++
	}
	return fmt.Sprintf("%.1f%s", v, suffixes[place])
}

// FormatQuantity renders a whole-unit count. Fractional progress is
// floored away before formatting.
func FormatQuantity(v float64) string {
	rounded := math.Floor(v)
	if rounded < 1000 {
		return fmt.Sprintf("%d", int64(rounded))
	}
	place := 0
	for rounded >= 1000 && place < len(suffixes)-1 {
		rounded /= 1000
		place++
	}
	return fmt.Sprintf("%.1f%s", rounded, suffixes[place])
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// FormatPlayTime renders an elapsed session duration as "1h 2m 5s",
// dropping the hour part when zero.
func FormatPlayTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	totalMinutes := totalSeconds / 60
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// FormatOfflineTime labels an away-progress report, hours and minutes
// only.
func FormatOfflineTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int64(d / time.Minute)
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatArrival renders a travel estimate given remaining distance and
// speed in distance units per hour. The tiering widens with the horizon:
// years/months/days, then days/hours/minutes, then hours/minutes/seconds.
func FormatArrival(distance, speedPerHour float64) string {
	if speedPerHour <= 0 {
		return "never"
	}
	hoursLeft := distance / speedPerHour
	years := hoursLeft / (24 * 365)
	days := hoursLeft / 24

	switch {
	case years >= 1:
		y := math.Floor(years)
		remDays := math.Floor((years - y) * 365)
		months := math.Floor(remDays / 30)
		d := int64(remDays) % 30
		if months > 0 {
			return fmt.Sprintf("%d years, %d months, %d days", int64(y), int64(months), d)
		}
		return fmt.Sprintf("%d years, %d days", int64(y), d)
	case days >= 1:
		d := math.Floor(days)
		remHours := hoursLeft - d*24
		h := math.Floor(remHours)
		m := math.Floor((remHours - h) * 60)
		return fmt.Sprintf("%d days, %d hours, %d minutes", int64(d), int64(h), int64(m))
	default:
		h := math.Floor(hoursLeft)
		frac := (hoursLeft - h) * 60
		m := math.Floor(frac)
		s := math.Floor((frac - m) * 60)
		return fmt.Sprintf("%d hours, %d minutes, %d seconds", int64(h), int64(m), int64(s))
	}
}
