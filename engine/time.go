package engine

import (
	"strings"
	"time"
)

// =============================================================================
// DATE - Calendar day (lease boundaries, due dates, "today")
// =============================================================================

// Date is a calendar day. The time component is always UTC midnight, so two
// Dates built from the same year/month/day compare equal.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today is the current calendar day. Computations never call it: "today" is
// always an argument so results can be pinned in tests.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, &PreconditionError{Field: "date", Value: s, Err: ErrMalformedDate}
	}
	return DateOf(t), nil
}

func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(o Date) bool        { return d.t.Before(o.t) }
func (d Date) After(o Date) bool         { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool         { return d.t.Equal(o.t) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.After(o) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.Before(o) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// AddMonths moves n calendar months, clamping to the last day of the target
// month: Jan 31 + 1 month = Feb 28 (or 29).
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.t.Year(), d.t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := EndOfMonth(first.Year(), first.Month())
	day := d.t.Day()
	if day > last.Day() {
		day = last.Day()
	}
	return NewDate(first.Year(), first.Month(), day)
}

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Time() time.Time   { return d.t }
func (d Date) String() string    { return d.t.Format(dateLayout) }

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DaysBetween returns to - from in whole days (negative if to is earlier).
// Unix seconds do not saturate the way time.Duration does past ~292 years.
func DaysBetween(from, to Date) int { return int((to.t.Unix() - from.t.Unix()) / secondsPerDay) }

const secondsPerDay = 24 * 60 * 60

func EndOfMonth(year int, month time.Month) Date {
	return DateOf(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}
