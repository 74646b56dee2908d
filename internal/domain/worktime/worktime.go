package worktime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Validation messages surfaced to forms.
const (
	MsgCheckOutBeforeCheckIn = "Check-out time cannot be before check-in time"
	MsgHoursExceedDay        = "Working hours cannot exceed 24 hours"
	MsgStartAfterEnd         = "Start date cannot be after end date"
	MsgStartInPast           = "Start date cannot be in the past"
)

const minutesPerDay = 24 * 60

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var clockLayouts = []string{"15:04:05", "15:04", "3:04 PM", "3:04PM"}

// NormalizeTime converts heterogeneous time-of-day representations into
// canonical "HH:MM". Colon-delimited strings of two or more segments are
// padded; anything else is tried against known clock layouts. Unparseable
// input yields "".
func NormalizeTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, ":")
	if len(parts) >= 2 {
		hour, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		minute, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errH == nil && errM == nil && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
	}

	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return fmt.Sprintf("%02d:%02d", parsed.Hour(), parsed.Minute())
		}
	}
	return ""
}

// toMinutes parses a canonicalizable clock string into minutes since
// midnight. ok is false for unparseable input.
func toMinutes(raw string) (int, bool) {
	normalized := NormalizeTime(raw)
	if normalized == "" {
		return 0, false
	}
	hour, _ := strconv.Atoi(normalized[:2])
	minute, _ := strconv.Atoi(normalized[3:])
	return hour*60 + minute, true
}

// ElapsedHours computes the hours between check-in and check-out, rounded to
// two decimal places. A check-out numerically earlier than check-in is
// treated as next-day (overnight shift). Missing or unparseable input yields
// zero.
func ElapsedHours(checkIn, checkOut string) float64 {
	in, okIn := toMinutes(checkIn)
	out, okOut := toMinutes(checkOut)
	if !okIn || !okOut {
		return 0
	}

	diff := out - in
	if diff < 0 {
		diff += minutesPerDay
	}
	return math.Round(float64(diff)/60*100) / 100
}

// ValidateTimeRange checks a check-in/check-out pair with the same overnight
// wrap as ElapsedHours. Empty or unparseable inputs produce no error; forms
// must never crash on a keystroke.
func ValidateTimeRange(checkIn, checkOut string) string {
	in, okIn := toMinutes(checkIn)
	out, okOut := toMinutes(checkOut)
	if !okIn || !okOut {
		return ""
	}

	diff := out - in
	if diff < 0 {
		diff += minutesPerDay
	}
	if diff < 0 {
		return MsgCheckOutBeforeCheckIn
	}
	if diff > minutesPerDay {
		return MsgHoursExceedDay
	}
	return ""
}

// AddMinutes shifts a clock time by delta minutes, wrapping at the 24-hour
// boundary. Negative deltas are allowed. Unparseable input yields "".
func AddMinutes(clock string, delta int) string {
	total, ok := toMinutes(clock)
	if !ok {
		return ""
	}
	wrapped := ((total+delta)%minutesPerDay + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", wrapped/60, wrapped%60)
}

// ParseDate parses a wire-format date, returning the zero time when
// unparseable.
func ParseDate(raw string) time.Time {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// InclusiveDays counts the days in a date range with both boundary dates
// included, so a single-day range counts as one. Unparseable input yields
// zero.
func InclusiveDays(startDate, endDate string) int {
	start := ParseDate(startDate)
	end := ParseDate(endDate)
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// ValidateDateRange checks a leave date range. The past check compares
// against the caller's notion of today, date precision only; the caller's
// clock is trusted here and must be re-validated server side.
func ValidateDateRange(startDate, endDate string, today time.Time) string {
	start := ParseDate(startDate)
	end := ParseDate(endDate)
	if start.IsZero() || end.IsZero() {
		return ""
	}

	if start.After(end) {
		return MsgStartAfterEnd
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(todayDate) {
		return MsgStartInPast
	}
	return ""
}

// FormatDDMMYYYY renders a date as dd/mm/yyyy for display. Zero time yields
// "".
func FormatDDMMYYYY(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}
