// Package engine turns a roast's temperature history into a heating-rate
// estimate, a finish-time prediction and an oven adjustment recommendation.
//
// Every function in this package is pure: callers pass the full snapshot,
// including the current time, and get fresh results back.
package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"roast_advisor/internal/models"
)

// ParseTimestamp parses an RFC 3339 timestamp and normalizes it to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatTimestamp renders t as an RFC 3339 UTC string.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// MinutesBetween returns to - from in minutes (negative when to is earlier).
func MinutesBetween(from, to time.Time) float64 {
	return to.Sub(from).Minutes()
}

// HoursBetween returns to - from in hours.
func HoursBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

// AddMinutes shifts t by a fractional number of minutes.
func AddMinutes(t time.Time, minutes float64) time.Time {
	return t.Add(time.Duration(minutes * float64(time.Minute)))
}

// ElapsedMinutes is the span between the first and last reading.
func ElapsedMinutes(readings []models.Reading) float64 {
	if len(readings) < 2 {
		return 0
	}
	return MinutesBetween(readings[0].Timestamp, readings[len(readings)-1].Timestamp)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
