package types

import (
	"fmt"
	"strings"
	"time"
)

// RenderMode selects how a TimePeriod is printed
type RenderMode int

const (
	// RenderInternal canonical "15:04 - 15:04" form used on the wire
	RenderInternal RenderMode = iota
	// RenderPublic uses the configured time layout
	RenderPublic
	// RenderShort like RenderPublic, but collapses identical start/end into one time
	RenderShort
)

const periodSeparator = " - "

// TimePeriod is a time interval. StartTime <= EndTime is the usual state, but
// DiffPeriod may invert it; check IsEmpty after clipping.
type TimePeriod struct {
	StartTime time.Time
	EndTime   time.Time
}

// NewTimePeriod creates a period from two timestamps
func NewTimePeriod(start, end time.Time) TimePeriod {
	return TimePeriod{StartTime: start, EndTime: end}
}

// ParseTimePeriod parses "HH:MM - HH:MM". Both ends land on the zero date;
// use SetDate to rebase them.
func ParseTimePeriod(s string) (TimePeriod, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return TimePeriod{}, fmt.Errorf("%w: %q", ErrInvalidTimePeriod, s)
	}

	start, err := time.Parse(TimeFormat, strings.TrimSpace(parts[0]))
	if err != nil {
		return TimePeriod{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimePeriod, s, err)
	}

	end, err := time.Parse(TimeFormat, strings.TrimSpace(parts[1]))
	if err != nil {
		return TimePeriod{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimePeriod, s, err)
	}

	return TimePeriod{StartTime: start, EndTime: end}, nil
}

// MustParseTimePeriod is ParseTimePeriod for constant inputs; it panics on error.
func MustParseTimePeriod(s string) TimePeriod {
	p, err := ParseTimePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns an independent copy
func (p TimePeriod) Clone() TimePeriod {
	return TimePeriod{StartTime: p.StartTime, EndTime: p.EndTime}
}

// Equal reports whether both ends are the same instants
func (p TimePeriod) Equal(other TimePeriod) bool {
	return p.StartTime.Equal(other.StartTime) && p.EndTime.Equal(other.EndTime)
}

// IsEmpty is true for degenerate and inverted periods
func (p TimePeriod) IsEmpty() bool {
	return !p.StartTime.Before(p.EndTime)
}

// DurationMinutes returns the period length in minutes
func (p TimePeriod) DurationMinutes() int {
	return int(p.EndTime.Sub(p.StartTime) / time.Minute)
}

// IntersectsWith reports a real overlap; touching edges do not intersect.
func (p TimePeriod) IntersectsWith(other TimePeriod) bool {
	return p.StartTime.Before(other.EndTime) && p.EndTime.After(other.StartTime)
}

// IsSubperiodOf reports whether p lies inside other (edges inclusive)
func (p TimePeriod) IsSubperiodOf(other TimePeriod) bool {
	return !p.StartTime.Before(other.StartTime) && !p.EndTime.After(other.EndTime)
}

// MergePeriod extends p to the union of both bounds
func (p *TimePeriod) MergePeriod(other TimePeriod) {
	if other.StartTime.Before(p.StartTime) {
		p.StartTime = other.StartTime
	}
	if other.EndTime.After(p.EndTime) {
		p.EndTime = other.EndTime
	}
}

// DiffPeriod clips p so it no longer overlaps other. When other covers the
// beginning of p the start moves forward, otherwise the end moves back.
// If other strictly contains p the result is inverted.
func (p *TimePeriod) DiffPeriod(other TimePeriod) {
	if !p.IntersectsWith(other) {
		return
	}

	if !other.StartTime.After(p.StartTime) {
		p.StartTime = other.EndTime
	} else {
		p.EndTime = other.StartTime
	}
}

// SplitByPeriod subtracts other from p and returns what remains (0-2 periods).
// p itself is not modified.
func (p TimePeriod) SplitByPeriod(other TimePeriod) []TimePeriod {
	if !p.IntersectsWith(other) {
		return []TimePeriod{p.Clone()}
	}

	fragments := make([]TimePeriod, 0, 2)
	if other.StartTime.After(p.StartTime) {
		fragments = append(fragments, NewTimePeriod(p.StartTime, other.StartTime))
	}
	if other.EndTime.Before(p.EndTime) {
		fragments = append(fragments, NewTimePeriod(other.EndTime, p.EndTime))
	}

	return fragments
}

// SetDate rebases both ends onto date, keeping the time of day.
func (p *TimePeriod) SetDate(date time.Time) {
	p.StartTime = atDate(date, p.StartTime)
	p.EndTime = atDate(date, p.EndTime)
}

// Format renders the period. layout is a Go time layout and is ignored
// for RenderInternal.
func (p TimePeriod) Format(mode RenderMode, layout string) string {
	switch mode {
	case RenderPublic:
		return p.StartTime.Format(layout) + periodSeparator + p.EndTime.Format(layout)
	case RenderShort:
		if p.StartTime.Equal(p.EndTime) {
			return p.StartTime.Format(layout)
		}
		return p.StartTime.Format(layout) + periodSeparator + p.EndTime.Format(layout)
	default:
		return p.StartTime.Format(TimeFormat) + periodSeparator + p.EndTime.Format(TimeFormat)
	}
}

// String returns the internal "HH:MM - HH:MM" form
func (p TimePeriod) String() string {
	return p.Format(RenderInternal, "")
}

func atDate(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}
