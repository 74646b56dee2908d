package worktime

import (
	"testing"
	"time"
)

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"09:00", "09:00"},
		{"9:5", "09:05"},
		{"09:00:00", "09:00"},
		{"22:30:15", "22:30"},
		{" 8:45 ", "08:45"},
		{"3:04 PM", "15:04"},
		{"", ""},
		{"midnight", ""},
		{"25:00", ""},
		{"12:75", ""},
	}

	for _, tc := range cases {
		if got := NormalizeTime(tc.raw); got != tc.want {
			t.Fatalf("NormalizeTime(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestElapsedHoursSameDay(t *testing.T) {
	if got := ElapsedHours("09:00", "17:30"); got != 8.5 {
		t.Fatalf("expected 8.5 hours, got %v", got)
	}
	if got := ElapsedHours("09:00", "09:00"); got != 0 {
		t.Fatalf("expected 0 hours, got %v", got)
	}
}

func TestElapsedHoursOvernight(t *testing.T) {
	if got := ElapsedHours("22:00", "06:00"); got != 8.0 {
		t.Fatalf("expected 8 hours across midnight, got %v", got)
	}
	if got := ElapsedHours("23:45", "00:15"); got != 0.5 {
		t.Fatalf("expected 0.5 hours across midnight, got %v", got)
	}
}

func TestElapsedHoursRounding(t *testing.T) {
	if got := ElapsedHours("09:00", "09:20"); got != 0.33 {
		t.Fatalf("expected 0.33, got %v", got)
	}
}

func TestElapsedHoursUnparseable(t *testing.T) {
	if got := ElapsedHours("", "17:00"); got != 0 {
		t.Fatalf("expected 0 for missing check-in, got %v", got)
	}
	if got := ElapsedHours("nine", "17:00"); got != 0 {
		t.Fatalf("expected 0 for unparseable check-in, got %v", got)
	}
}

func TestElapsedHoursIdempotentUnderReparse(t *testing.T) {
	pairs := [][2]string{{"09:00", "17:30"}, {"22:00", "06:00"}, {"9:5", "18:0"}}
	for _, pair := range pairs {
		first := ElapsedHours(pair[0], pair[1])
		again := ElapsedHours(NormalizeTime(pair[0]), NormalizeTime(pair[1]))
		if first != again {
			t.Fatalf("elapsed not stable under normalization for %v: %v vs %v", pair, first, again)
		}
	}
}

func TestValidateTimeRange(t *testing.T) {
	if msg := ValidateTimeRange("09:00", "17:30"); msg != "" {
		t.Fatalf("expected valid range, got %q", msg)
	}
	if msg := ValidateTimeRange("22:00", "06:00"); msg != "" {
		t.Fatalf("overnight shift should be accepted, got %q", msg)
	}
	if msg := ValidateTimeRange("", "17:00"); msg != "" {
		t.Fatalf("incomplete pair should not error, got %q", msg)
	}
}

func TestAddMinutes(t *testing.T) {
	cases := []struct {
		clock string
		delta int
		want  string
	}{
		{"09:00", 510, "17:30"},
		{"23:30", 45, "00:15"},
		{"00:15", -45, "23:30"},
		{"09:00", 0, "09:00"},
		{"junk", 30, ""},
	}

	for _, tc := range cases {
		if got := AddMinutes(tc.clock, tc.delta); got != tc.want {
			t.Fatalf("AddMinutes(%q, %d) = %q, want %q", tc.clock, tc.delta, got, tc.want)
		}
	}
}

func TestAddMinutesRoundTrip(t *testing.T) {
	for _, raw := range []string{"09:00", "9:5", "23:59", "00:00"} {
		normalized := NormalizeTime(raw)
		if AddMinutes(normalized, 0) != normalized {
			t.Fatalf("AddMinutes(%q, 0) changed the value", normalized)
		}
	}
}

func TestInclusiveDays(t *testing.T) {
	if got := InclusiveDays("2025-08-10", "2025-08-10"); got != 1 {
		t.Fatalf("single-day leave should count as 1, got %d", got)
	}
	if got := InclusiveDays("2025-08-10", "2025-08-12"); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
	if got := InclusiveDays("not-a-date", "2025-08-12"); got != 0 {
		t.Fatalf("unparseable date should yield 0, got %d", got)
	}
}

func TestValidateDateRange(t *testing.T) {
	today := time.Date(2025, 8, 11, 10, 30, 0, 0, time.UTC)

	if msg := ValidateDateRange("2025-08-12", "2025-08-10", today); msg != MsgStartAfterEnd {
		t.Fatalf("expected start-after-end rejection, got %q", msg)
	}
	if msg := ValidateDateRange("2025-08-10", "2025-08-12", today); msg != MsgStartInPast {
		t.Fatalf("expected past rejection, got %q", msg)
	}
	if msg := ValidateDateRange("2025-08-11", "2025-08-12", today); msg != "" {
		t.Fatalf("same-day start should be allowed, got %q", msg)
	}
	if msg := ValidateDateRange("", "2025-08-12", today); msg != "" {
		t.Fatalf("unparseable input should not error, got %q", msg)
	}
}

func TestFormatDDMMYYYY(t *testing.T) {
	d := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatDDMMYYYY(d); got != "05/08/2025" {
		t.Fatalf("got %q", got)
	}
	if got := FormatDDMMYYYY(time.Time{}); got != "" {
		t.Fatalf("zero time should format empty, got %q", got)
	}
}
