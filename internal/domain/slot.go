package domain

import "sort"

// SlotResource is an employee/location pair that can serve a time slot
type SlotResource struct {
	EmployeeID int64
	LocationID int64
}

// TimeSlots maps "2006-01-02" -> "HH:MM - HH:MM" -> resources able to serve it
type TimeSlots map[string]map[string][]SlotResource

// Dates returns the dates that have at least one slot, sorted
func (ts TimeSlots) Dates() []string {
	dates := make([]string, 0, len(ts))
	for date, slots := range ts {
		if len(slots) > 0 {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

// Periods returns the slot periods of date, sorted
func (ts TimeSlots) Periods(date string) []string {
	slots := ts[date]
	periods := make([]string, 0, len(slots))
	for period, resources := range slots {
		if len(resources) > 0 {
			periods = append(periods, period)
		}
	}
	sort.Strings(periods)
	return periods
}

// Resources returns who can serve the slot
func (ts TimeSlots) Resources(date, period string) []SlotResource {
	if slots, ok := ts[date]; ok {
		return slots[period]
	}
	return nil
}

// HasSlot returns true if the slot exists and can be served
func (ts TimeSlots) HasSlot(date, period string) bool {
	return len(ts.Resources(date, period)) > 0
}

// IsEmpty returns true if no date has a slot
func (ts TimeSlots) IsEmpty() bool {
	return len(ts.Dates()) == 0
}
