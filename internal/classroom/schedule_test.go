package classroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestWeekDates(t *testing.T) {
	anchor := day(2025, time.January, 15) // Wednesday
	week := Week(anchor, anchor)

	require.Len(t, week, 5)
	wantDays := []int{13, 14, 15, 16, 17}
	for i, d := range week {
		assert.Equal(t, wantDays[i], d.Date.Day(), d.Name)
		assert.Len(t, d.Classes, 3)
		assert.Equal(t, d.Name == "Wednesday", d.IsToday, d.Name)
	}

	assert.Equal(t, "Monday", week[0].Name)
	assert.Equal(t, "Quantum Mechanics", week[0].Classes[0].Topic)
	assert.Equal(t, "9:00 AM - 10:30 AM", week[0].Classes[0].Time)
	assert.Equal(t, "Room 301", week[0].Classes[2].Room)
	assert.Equal(t, "Lab Session", week[4].Classes[2].Topic)
}

func TestWeekFromSundayAnchor(t *testing.T) {
	anchor := day(2025, time.January, 19) // Sunday
	week := Week(anchor, anchor)
	assert.Equal(t, 20, week[0].Date.Day())
	for _, d := range week {
		assert.False(t, d.IsToday)
	}
}

func TestRange(t *testing.T) {
	r := Range(day(2025, time.January, 15))
	assert.Equal(t, 13, r.Start.Day())
	assert.Equal(t, 17, r.End.Day())
	assert.Equal(t, "Jan 13 - Jan 17", r.Label)
}

func TestNavigate(t *testing.T) {
	anchor := day(2025, time.January, 15)
	assert.Equal(t, day(2025, time.January, 22), Navigate(anchor, 1))
	assert.Equal(t, day(2025, time.January, 8), Navigate(anchor, -1))
	assert.Equal(t, anchor, Navigate(anchor, 0))
	assert.Equal(t, anchor, Navigate(Navigate(anchor, 1), -1))
}

func TestIsToday(t *testing.T) {
	d := day(2025, time.March, 3)
	assert.True(t, IsToday(d, d.Add(8*time.Hour)))
	assert.False(t, IsToday(d, d.Add(24*time.Hour)))
}
