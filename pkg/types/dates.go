// Package types contains the temporal value types shared by the booking wizard.
package types

import (
	"errors"
	"time"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var (
	// ErrInvalidTimePeriod возвращается при некорректной строке периода времени
	ErrInvalidTimePeriod = errors.New("types: invalid time period")

	// ErrInvalidDatePeriod возвращается при некорректной строке периода дат
	ErrInvalidDatePeriod = errors.New("types: invalid date period")
)

// ParseDate parses "2006-01-02" in UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate formats a date as "2006-01-02"; the zero time gives ""
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// DateOnly drops the time of day, keeping the location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
