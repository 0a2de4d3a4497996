package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatePeriod(t *testing.T) {
	p, err := ParseDatePeriod("2030-01-30 - 2030-02-02")
	require.NoError(t, err)

	assert.Equal(t, 4, p.CalcDays())
	assert.Equal(t, "2030-01-30 - 2030-02-02", p.String())

	assert.True(t, p.InPeriod(time.Date(2030, time.January, 30, 23, 59, 0, 0, time.UTC)))
	assert.True(t, p.InPeriod(time.Date(2030, time.February, 2, 8, 0, 0, 0, time.UTC)))
	assert.False(t, p.InPeriod(time.Date(2030, time.February, 3, 0, 0, 0, 0, time.UTC)))

	dates := p.SplitToDates()
	assert.Equal(t, []string{"2030-01-30", "2030-01-31", "2030-02-01", "2030-02-02"}, dates.Keys())
}

func TestNewDatePeriod_DropsTimeOfDay(t *testing.T) {
	p := NewDatePeriod(
		time.Date(2030, time.March, 1, 13, 45, 0, 0, time.UTC),
		time.Date(2030, time.March, 1, 8, 0, 0, 0, time.UTC),
	)

	assert.Equal(t, 1, p.CalcDays())
	assert.Equal(t, 0, p.StartDate.Hour())
}

func TestParseDatePeriod_Invalid(t *testing.T) {
	_, err := ParseDatePeriod("2030-01-30")
	assert.ErrorIs(t, err, ErrInvalidDatePeriod)

	_, err = ParseDatePeriod("2030-01-30 - tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDatePeriod)
}
