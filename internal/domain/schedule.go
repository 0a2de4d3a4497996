package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// WorkingHours is a recurring working period at a location
type WorkingHours struct {
	LocationID int64
	Period     types.TimePeriod
}

// CustomWorkday is an extra working period on a specific date
type CustomWorkday struct {
	Date       time.Time
	LocationID int64
	Period     types.TimePeriod
}

// Schedule describes when an employee works
type Schedule struct {
	ID             int64
	EmployeeID     int64
	WorkingHours   map[time.Weekday][]WorkingHours
	DaysOff        []types.DatePeriod
	CustomWorkdays []CustomWorkday
}

// IsDayOff returns true if date falls into one of the days-off periods
func (s *Schedule) IsDayOff(date time.Time) bool {
	for _, off := range s.DaysOff {
		if off.InPeriod(date) {
			return true
		}
	}
	return false
}

// WorkingPeriods returns the working periods on date at locationID, rebased
// onto that date, sorted and with overlaps merged. locationID == 0 matches
// every location.
func (s *Schedule) WorkingPeriods(date time.Time, locationID int64) []types.TimePeriod {
	if s.IsDayOff(date) {
		return nil
	}

	periods := make([]types.TimePeriod, 0)
	for _, wh := range s.WorkingHours[date.Weekday()] {
		if locationID != 0 && wh.LocationID != locationID {
			continue
		}
		p := wh.Period.Clone()
		p.SetDate(date)
		periods = append(periods, p)
	}

	for _, custom := range s.CustomWorkdays {
		if !types.IsSameDay(custom.Date, date) {
			continue
		}
		if locationID != 0 && custom.LocationID != locationID {
			continue
		}
		p := custom.Period.Clone()
		p.SetDate(date)
		periods = append(periods, p)
	}

	return MergePeriods(periods)
}

// MergePeriods sorts periods and joins overlapping or touching ones.
// Empty periods are dropped.
func MergePeriods(periods []types.TimePeriod) []types.TimePeriod {
	valid := make([]types.TimePeriod, 0, len(periods))
	for _, p := range periods {
		if !p.IsEmpty() {
			valid = append(valid, p.Clone())
		}
	}
	if len(valid) == 0 {
		return valid
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].StartTime.Before(valid[j].StartTime)
	})

	merged := []types.TimePeriod{valid[0]}
	for _, p := range valid[1:] {
		last := &merged[len(merged)-1]
		if !p.StartTime.After(last.EndTime) {
			last.MergePeriod(p)
			continue
		}
		merged = append(merged, p)
	}

	return merged
}
