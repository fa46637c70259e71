package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftTemplate_OnDate(t *testing.T) {
	tmpl := ShiftTemplate{
		Name:      "Weekend Morning",
		StartTime: time.Date(2000, 1, 1, 9, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2000, 1, 1, 13, 0, 0, 0, time.UTC),
	}

	day := time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC)
	start, end := tmpl.OnDate(day)

	assert.Equal(t, time.Date(2025, 12, 6, 9, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 6, 13, 0, 0, 0, time.UTC), end)
}

func TestShiftTemplate_OnDate_IgnoresSourceDate(t *testing.T) {
	// Only the time-of-day component of the window matters.
	tmpl := ShiftTemplate{
		Name:      "Evening",
		StartTime: time.Date(1999, 7, 20, 17, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2031, 2, 3, 21, 0, 0, 0, time.UTC),
	}

	day := time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)
	start, end := tmpl.OnDate(day)

	assert.Equal(t, 17, start.Hour())
	assert.Equal(t, 21, end.Hour())
	assert.Equal(t, day.Day(), start.Day())
	assert.Equal(t, day.Day(), end.Day())
}

func TestShiftTemplate_Validate(t *testing.T) {
	valid := ShiftTemplate{
		Name:            "Morning",
		StartTime:       time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2000, 1, 1, 13, 0, 0, 0, time.UTC),
		RequiredScouts:  3,
		RequiredParents: 2,
	}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.Error(t, noName.Validate())

	backwards := valid
	backwards.StartTime, backwards.EndTime = backwards.EndTime, backwards.StartTime
	assert.Error(t, backwards.Validate())

	negative := valid
	negative.RequiredScouts = -1
	assert.Error(t, negative.Validate())
}

func TestHoursBetween(t *testing.T) {
	checkIn := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)

	assert.InDelta(t, 4.0, HoursBetween(checkIn, checkIn.Add(4*time.Hour)), 0.001)
	assert.InDelta(t, 0.5, HoursBetween(checkIn, checkIn.Add(30*time.Minute)), 0.001)
	assert.Zero(t, HoursBetween(checkIn, checkIn))

	// A clock correction can put check-out before check-in; hours clamp at zero.
	assert.Zero(t, HoursBetween(checkIn, checkIn.Add(-time.Hour)))
}

func TestShift_HasCapacityFor(t *testing.T) {
	shift := Shift{RequiredScouts: 2, CurrentScouts: 1, RequiredParents: 1, CurrentParents: 1}

	assert.True(t, shift.HasCapacityFor(TypeScout))
	assert.False(t, shift.HasCapacityFor(TypeParent))

	require.True(t, shift.NeedsScouts())
	require.False(t, shift.NeedsParents())
}
