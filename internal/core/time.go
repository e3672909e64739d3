// Package core holds the domain model of the time ledger: entries, the
// persisted document shape, validation and the minute/hour conversions every
// aggregation is built on.
package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in entries ("DD/MM/YYYY").
const DateLayout = "02/01/2006"

// TimeToMinutes converts an "HH:MM" string to total minutes of the day.
// The parse is deliberately permissive: it requires two numeric parts split
// on ":" but does not range-check the hour or minute, matching the historic
// data this ledger still has to accept.
func TimeToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, Invalidf("formato de hora inválido, use HH:MM: %q", hhmm)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, Invalidf("formato de hora inválido, use HH:MM: %q", hhmm)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, Invalidf("formato de hora inválido, use HH:MM: %q", hhmm)
	}
	return h*60 + m, nil
}

// ParseDate validates a "DD/MM/YYYY" string as a real calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Invalidf("data inválida, use DD/MM/AAAA: %q", s)
	}
	return t, nil
}

// HoursFromMinutes converts minutes to hours rounded to 2 decimal places.
func HoursFromMinutes(minutes int) float64 {
	return math.Round(float64(minutes)/60.0*100) / 100
}

// MinutesFromHours reconstructs minutes from a legacy hours value.
func MinutesFromHours(hours float64) int {
	return int(math.Round(hours * 60))
}
