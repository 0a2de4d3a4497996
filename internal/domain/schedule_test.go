package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

func TestSchedule_WorkingPeriods(t *testing.T) {
	// 2030-02-04, понедельник
	monday := time.Date(2030, time.February, 4, 0, 0, 0, 0, time.UTC)

	s := &Schedule{
		WorkingHours: map[time.Weekday][]WorkingHours{
			time.Monday: {
				{LocationID: 1, Period: types.MustParseTimePeriod("09:00 - 13:00")},
				{LocationID: 1, Period: types.MustParseTimePeriod("12:00 - 15:00")},
				{LocationID: 2, Period: types.MustParseTimePeriod("16:00 - 18:00")},
			},
		},
		CustomWorkdays: []CustomWorkday{
			{Date: monday, LocationID: 1, Period: types.MustParseTimePeriod("19:00 - 20:00")},
		},
		DaysOff: []types.DatePeriod{
			types.NewDatePeriod(monday.AddDate(0, 0, 7), monday.AddDate(0, 0, 8)),
		},
	}

	periods := s.WorkingPeriods(monday, 1)
	require.Len(t, periods, 2)
	assert.Equal(t, "09:00 - 15:00", periods[0].String())
	assert.Equal(t, "19:00 - 20:00", periods[1].String())
	assert.Equal(t, monday.Day(), periods[0].StartTime.Day())

	all := s.WorkingPeriods(monday, 0)
	assert.Len(t, all, 3)

	assert.True(t, s.IsDayOff(monday.AddDate(0, 0, 7)))
	assert.Empty(t, s.WorkingPeriods(monday.AddDate(0, 0, 7), 1))

	assert.Empty(t, s.WorkingPeriods(monday.AddDate(0, 0, 1), 1), "no hours on tuesday")
}
