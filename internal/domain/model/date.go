package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without a time-of-day component. The remote API
// serves dates either as "2006-01-02" or as full RFC 3339 timestamps
// depending on the endpoint; both forms decode into a Date.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON accepts "2006-01-02", RFC 3339, or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date: cannot parse %q", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON emits the "2006-01-02" form.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// String returns the "2006-01-02" form, or "-" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("2006-01-02")
}

// MonthName returns the English month name ("January"), or "" for the zero date.
func (d Date) MonthName() string {
	if d.IsZero() {
		return ""
	}
	return d.Month().String()
}

// SameCalendarDay reports whether two instants fall on the same calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// EqualMonthName compares two month names case-insensitively, the way the
// remote API stores the timesheet "month" column (free-text from email).
func EqualMonthName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
