package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingWizard/pkg/orderedmap"
)

// DatePeriod is an inclusive range of calendar dates
type DatePeriod struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewDatePeriod creates a period; the time of day of both ends is dropped.
func NewDatePeriod(start, end time.Time) DatePeriod {
	return DatePeriod{StartDate: DateOnly(start), EndDate: DateOnly(end)}
}

// ParseDatePeriod parses "2006-01-02 - 2006-01-02"
func ParseDatePeriod(s string) (DatePeriod, error) {
	parts := strings.Split(s, periodSeparator)
	if len(parts) != 2 {
		return DatePeriod{}, fmt.Errorf("%w: %q", ErrInvalidDatePeriod, s)
	}

	start, err := ParseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return DatePeriod{}, fmt.Errorf("%w: %q: %v", ErrInvalidDatePeriod, s, err)
	}

	end, err := ParseDate(strings.TrimSpace(parts[1]))
	if err != nil {
		return DatePeriod{}, fmt.Errorf("%w: %q: %v", ErrInvalidDatePeriod, s, err)
	}

	return DatePeriod{StartDate: start, EndDate: end}, nil
}

// CalcDays returns the number of days in the period, both ends included
func (p DatePeriod) CalcDays() int {
	if p.EndDate.Before(p.StartDate) {
		return 0
	}
	return daysBetween(p.StartDate, p.EndDate) + 1
}

// InPeriod reports whether date falls inside the period
func (p DatePeriod) InPeriod(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// SplitToDates maps every date of the period ("2006-01-02") to its time.Time
func (p DatePeriod) SplitToDates() *orderedmap.Map[string, time.Time] {
	dates := orderedmap.New[string, time.Time]()
	for d := p.StartDate; !d.After(p.EndDate); d = d.AddDate(0, 0, 1) {
		dates.Push(FormatDate(d), d)
	}
	return dates
}

// String returns "2006-01-02 - 2006-01-02"
func (p DatePeriod) String() string {
	return FormatDate(p.StartDate) + periodSeparator + FormatDate(p.EndDate)
}

// daysBetween counts calendar days; DST shifts make plain Sub()/24h unreliable.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
