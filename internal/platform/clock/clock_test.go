package clock_test

import (
	"testing"
	"time"

	"fathom/internal/platform/clock"
)

func TestCalendarDateUsesConfiguredZone(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cal := clock.NewCalendar(loc)
	// 17:30 UTC is already the next day in Singapore (UTC+8).
	instant := time.Date(2026, 3, 1, 17, 30, 0, 0, time.UTC)
	if got := cal.Date(instant); got != "2026-03-02" {
		t.Fatalf("expected 2026-03-02, got %s", got)
	}
	if got := cal.DayOfMonth(instant); got != 2 {
		t.Fatalf("expected day 2, got %d", got)
	}
}

func TestDaysBetweenAndAddDays(t *testing.T) {
	t.Parallel()
	cases := []struct {
		from, to string
		want     int
	}{
		{"2026-03-01", "2026-03-01", 0},
		{"2026-03-01", "2026-03-02", 1},
		{"2026-02-27", "2026-03-02", 3},
		{"2026-03-28", "2026-03-30", 2},
		{"2026-03-05", "2026-03-01", -4},
	}
	for _, tc := range cases {
		got, err := clock.DaysBetween(tc.from, tc.to)
		if err != nil {
			t.Fatalf("days between %s..%s: %v", tc.from, tc.to, err)
		}
		if got != tc.want {
			t.Fatalf("days between %s..%s: expected %d, got %d", tc.from, tc.to, tc.want, got)
		}
	}
	if _, err := clock.DaysBetween("bogus", "2026-01-01"); err == nil {
		t.Fatalf("invalid date must fail")
	}
	end, err := clock.AddDays("2026-12-25", 30)
	if err != nil {
		t.Fatalf("add days: %v", err)
	}
	if end != "2027-01-24" {
		t.Fatalf("expected 2027-01-24, got %s", end)
	}
}
