package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimePeriod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: "08:00 - 18:00", want: "08:00 - 18:00"},
		{name: "no spaces", input: "9:30-10:15", want: "09:30 - 10:15"},
		{name: "missing separator", input: "08:00", wantErr: true},
		{name: "garbage", input: "aa:bb - 10:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseTimePeriod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimePeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestTimePeriod_SplitByPeriod(t *testing.T) {
	day := MustParseTimePeriod("08:00 - 18:00")

	parts := day.SplitByPeriod(MustParseTimePeriod("10:00 - 12:00"))
	require.Len(t, parts, 2)
	assert.Equal(t, "08:00 - 10:00", parts[0].String())
	assert.Equal(t, "12:00 - 18:00", parts[1].String())

	// исходный период не меняется
	assert.Equal(t, "08:00 - 18:00", day.String())

	parts = day.SplitByPeriod(MustParseTimePeriod("07:00 - 09:00"))
	require.Len(t, parts, 1)
	assert.Equal(t, "09:00 - 18:00", parts[0].String())

	parts = day.SplitByPeriod(MustParseTimePeriod("06:00 - 20:00"))
	assert.Empty(t, parts)

	parts = day.SplitByPeriod(MustParseTimePeriod("18:00 - 19:00"))
	require.Len(t, parts, 1)
	assert.Equal(t, "08:00 - 18:00", parts[0].String())
}

func TestTimePeriod_IntersectsAndSubperiod(t *testing.T) {
	p := MustParseTimePeriod("10:00 - 11:00")

	assert.True(t, p.IntersectsWith(MustParseTimePeriod("10:30 - 12:00")))
	assert.False(t, p.IntersectsWith(MustParseTimePeriod("11:00 - 12:00")), "touching edges")
	assert.False(t, p.IntersectsWith(MustParseTimePeriod("09:00 - 10:00")), "touching edges")

	assert.True(t, p.IsSubperiodOf(MustParseTimePeriod("10:00 - 11:00")))
	assert.True(t, p.IsSubperiodOf(MustParseTimePeriod("09:00 - 12:00")))
	assert.False(t, p.IsSubperiodOf(MustParseTimePeriod("10:30 - 12:00")))
}

func TestTimePeriod_MergeAndDiff(t *testing.T) {
	p := MustParseTimePeriod("10:00 - 11:00")
	p.MergePeriod(MustParseTimePeriod("09:00 - 10:30"))
	assert.Equal(t, "09:00 - 11:00", p.String())

	p = MustParseTimePeriod("10:00 - 12:00")
	p.DiffPeriod(MustParseTimePeriod("09:00 - 10:30"))
	assert.Equal(t, "10:30 - 12:00", p.String())

	p = MustParseTimePeriod("10:00 - 12:00")
	p.DiffPeriod(MustParseTimePeriod("11:00 - 13:00"))
	assert.Equal(t, "10:00 - 11:00", p.String())

	// полностью перекрывающий период выворачивает результат
	p = MustParseTimePeriod("10:00 - 11:00")
	p.DiffPeriod(MustParseTimePeriod("09:00 - 12:00"))
	assert.True(t, p.IsEmpty())
}

func TestTimePeriod_SetDateAndFormat(t *testing.T) {
	p := MustParseTimePeriod("10:00 - 11:30")
	date := time.Date(2030, time.February, 1, 15, 0, 0, 0, time.UTC)

	p.SetDate(date)
	assert.Equal(t, time.Date(2030, time.February, 1, 10, 0, 0, 0, time.UTC), p.StartTime)
	assert.Equal(t, time.Date(2030, time.February, 1, 11, 30, 0, 0, time.UTC), p.EndTime)
	assert.Equal(t, 90, p.DurationMinutes())

	assert.Equal(t, "10:00 am - 11:30 am", p.Format(RenderPublic, "3:04 pm"))
	assert.Equal(t, "10:00 - 11:30", p.Format(RenderInternal, "ignored"))

	point := NewTimePeriod(p.StartTime, p.StartTime)
	assert.Equal(t, "10:00", point.Format(RenderShort, TimeFormat))
	assert.True(t, point.IsEmpty())
}
