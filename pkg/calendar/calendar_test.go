package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGridOffsets(t *testing.T) {
	// August 2026 starts on a Saturday: six leading pads, 31 days.
	grid := MonthGrid(2026, time.August, time.UTC)
	require.Len(t, grid, 6+31)

	for i := 0; i < 6; i++ {
		assert.Nil(t, grid[i].Date)
	}
	require.NotNil(t, grid[6].Date)
	assert.Equal(t, 1, grid[6].Date.Day())
	assert.Equal(t, time.Saturday, grid[6].Date.Weekday())
	assert.Equal(t, 31, grid[len(grid)-1].Date.Day())
}

func TestMonthGridNoOffset(t *testing.T) {
	// February 2026 starts on a Sunday.
	grid := MonthGrid(2026, time.February, time.UTC)
	require.Len(t, grid, 28)
	require.NotNil(t, grid[0].Date)
	assert.Equal(t, time.Sunday, grid[0].Date.Weekday())
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 8, 29, 0, 1, 0, 0, time.UTC)
	c := time.Date(2026, 8, 30, 0, 1, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}

func TestLocalDateStaysOnLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 23:30 local is already the next day in UTC.
	late := time.Date(2026, 8, 29, 23, 30, 0, 0, loc)

	assert.Equal(t, "2026-08-29", LocalDate(late))
	assert.Equal(t, "2026-08-30", LocalDate(late.UTC()))
}
