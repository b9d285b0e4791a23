package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates. Stored snapshots
// use this exact form, matching the payloads written by earlier
// versions of the dashboard.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component.
// The zero value represents "no date".
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate creates a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	// Normalize out-of-range components (e.g. Feb 30) the same way
	// time.Date does.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseDate parses a date in the YYYY-MM-DD wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// String returns the date in the YYYY-MM-DD wire format.
func (d Date) String() string {
	return d.utc().Format(DateLayout)
}

// Format renders the date with a time package layout string.
func (d Date) Format(layout string) string {
	return d.utc().Format(layout)
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to other.
// Positive when other is after d, negative when before.
func (d Date) DaysUntil(other Date) int {
	return int(other.utc().Sub(d.utc()).Hours() / 24)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.utc().After(other.utc())
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d == other
}

// utc anchors the date at UTC midnight so day arithmetic is exact
// regardless of DST transitions in the local zone.
func (d Date) utc() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string, or null for
// the zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string. null and "" decode to
// the zero date. Full timestamps are tolerated for payloads written
// by hand or by older builds; only the date part is kept.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err == nil {
		*d = parsed
		return nil
	}
	t, rfcErr := time.Parse(time.RFC3339, s)
	if rfcErr != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}
