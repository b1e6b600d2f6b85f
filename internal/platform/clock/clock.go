package clock

import (
	"fmt"
	"time"
)

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// DateLayout is the civil-date format used for streak and question bookkeeping.
const DateLayout = "2006-01-02"

// Calendar maps instants to civil dates in one fixed timezone.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c Calendar) Date(t time.Time) string {
	return t.In(c.Location()).Format(DateLayout)
}

func (c Calendar) DayOfMonth(t time.Time) int {
	return t.In(c.Location()).Day()
}

// DaysBetween returns the whole civil days from one date to another.
// Both dates are parsed as UTC midnights so DST transitions cannot skew the count.
func DaysBetween(from, to string) (int, error) {
	a, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", from, err)
	}
	b, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", to, err)
	}
	return int(b.Sub(a).Hours() / 24), nil
}

func AddDays(date string, days int) (string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}
	return d.AddDate(0, 0, days).Format(DateLayout), nil
}
