package domain

import (
	"fmt"
	"time"
)

// dateLayout is the canonical wire format for civil dates.
const dateLayout = "2006-01-02"

// Date is a local civil day in YYYY-MM-DD form with no time-of-day component.
type Date string

// ParseDate validates s as a YYYY-MM-DD civil date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// Today returns the current civil date in the given location.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return Date(time.Now().In(loc).Format(dateLayout))
}

// String returns the YYYY-MM-DD representation.
func (d Date) String() string {
	return string(d)
}

// IsValid reports whether the date parses as YYYY-MM-DD.
func (d Date) IsValid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// AddDays returns the date shifted by n calendar days (n may be negative).
// Invalid dates are returned unchanged.
func (d Date) AddDays(n int) Date {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(dateLayout))
}

// Before reports whether d sorts before other. The lexicographic order of the
// canonical format coincides with chronological order.
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}
