package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

func TestCorrectAttendance_AdjustsTimesAndRecomputesHours(t *testing.T) {
	store := newFakeStore()
	store.addUser(committeeUser("admin"))
	checkIn := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 12, 6, 13, 0, 0, 0, time.UTC)
	store.addAttendance(model.AttendanceRecord{
		ID: "att-1", AssignmentID: "asg-1", ShiftID: "shift-1",
		UserID: "alice", CheckInTime: &checkIn, CheckOutTime: &checkOut,
		CheckInMethod: model.CheckInQRCode, Status: model.AttendanceCheckedOut,
	})

	// The volunteer actually left an hour earlier.
	corrected := time.Date(2025, 12, 6, 12, 0, 0, 0, time.UTC)
	err := CorrectAttendance(context.Background(), store, zap.NewNop(), CorrectAttendanceRequest{
		AttendanceRecordID: "att-1",
		RequestingUserID:   "admin",
		CheckOutTime:       &corrected,
		OverrideReason:     "left early, forgot to check out",
	})
	require.NoError(t, err)

	record := store.attendance["att-1"]
	require.NotNil(t, record.HoursWorked)
	assert.InDelta(t, 3.0, *record.HoursWorked, 0.001)
	assert.Equal(t, model.CheckInAdminOverride, record.CheckInMethod)
	assert.Contains(t, record.Notes, "Admin override by")
	assert.Contains(t, record.Notes, "left early, forgot to check out")
}

func TestCorrectAttendance_ExplicitHoursWin(t *testing.T) {
	store := newFakeStore()
	store.addUser(committeeUser("admin"))
	checkIn := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 12, 6, 13, 0, 0, 0, time.UTC)
	store.addAttendance(model.AttendanceRecord{
		ID: "att-1", AssignmentID: "asg-1", ShiftID: "shift-1",
		UserID: "alice", CheckInTime: &checkIn, CheckOutTime: &checkOut,
		Status: model.AttendanceCheckedOut,
	})

	hours := 2.0
	err := CorrectAttendance(context.Background(), store, zap.NewNop(), CorrectAttendanceRequest{
		AttendanceRecordID: "att-1",
		RequestingUserID:   "admin",
		HoursWorked:        &hours,
		OverrideReason:     "long lunch break",
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, *store.attendance["att-1"].HoursWorked)
}

func TestCorrectAttendance_RequiresReason(t *testing.T) {
	store := newFakeStore()
	store.addUser(committeeUser("admin"))

	err := CorrectAttendance(context.Background(), store, zap.NewNop(), CorrectAttendanceRequest{
		AttendanceRecordID: "att-1",
		RequestingUserID:   "admin",
	})
	var domainErr *model.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.KindValidation, domainErr.Kind)
}

func TestCorrectAttendance_RejectsCheckOutBeforeCheckIn(t *testing.T) {
	store := newFakeStore()
	store.addUser(committeeUser("admin"))
	checkIn := time.Date(2025, 12, 6, 9, 0, 0, 0, time.UTC)
	store.addAttendance(model.AttendanceRecord{
		ID: "att-1", AssignmentID: "asg-1", ShiftID: "shift-1",
		UserID: "alice", CheckInTime: &checkIn, Status: model.AttendanceCheckedIn,
	})

	bad := checkIn.Add(-time.Hour)
	err := CorrectAttendance(context.Background(), store, zap.NewNop(), CorrectAttendanceRequest{
		AttendanceRecordID: "att-1",
		RequestingUserID:   "admin",
		CheckOutTime:       &bad,
		OverrideReason:     "typo",
	})
	var domainErr *model.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.KindValidation, domainErr.Kind)
	assert.Nil(t, store.attendance["att-1"].CheckOutTime, "record must be untouched")
}

func TestCorrectAttendance_RejectsNegativeHours(t *testing.T) {
	store := newFakeStore()
	store.addUser(committeeUser("admin"))
	existing := 4.0
	store.addAttendance(model.AttendanceRecord{
		ID: "att-1", AssignmentID: "asg-1", ShiftID: "shift-1",
		UserID: "alice", HoursWorked: &existing, Status: model.AttendanceCheckedOut,
	})

	bad := -1.5
	err := CorrectAttendance(context.Background(), store, zap.NewNop(), CorrectAttendanceRequest{
		AttendanceRecordID: "att-1",
		RequestingUserID:   "admin",
		HoursWorked:        &bad,
		OverrideReason:     "fat-fingered the sign",
	})
	var domainErr *model.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.KindValidation, domainErr.Kind)
	assert.Equal(t, 4.0, *store.attendance["att-1"].HoursWorked, "record must be untouched")
}

func TestCorrectAttendance_RequiresLeadership(t *testing.T) {
	store := newFakeStore()
	store.addUser(activeUser("scout"))
	store.addAttendance(model.AttendanceRecord{
		ID: "att-1", AssignmentID: "asg-1", ShiftID: "shift-1", UserID: "alice",
	})

	err := CorrectAttendance(context.Background(), store, zap.NewNop(), CorrectAttendanceRequest{
		AttendanceRecordID: "att-1",
		RequestingUserID:   "scout",
		OverrideReason:     "trying my luck",
	})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestCorrectAttendance_SetsStatus(t *testing.T) {
	store := newFakeStore()
	store.addUser(committeeUser("admin"))
	store.addAttendance(model.AttendanceRecord{
		ID: "att-1", AssignmentID: "asg-1", ShiftID: "shift-1",
		UserID: "alice", Status: model.AttendanceNoShow,
	})

	excused := model.AttendanceExcused
	err := CorrectAttendance(context.Background(), store, zap.NewNop(), CorrectAttendanceRequest{
		AttendanceRecordID: "att-1",
		RequestingUserID:   "admin",
		Status:             &excused,
		OverrideReason:     "family emergency, excused",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceExcused, store.attendance["att-1"].Status)
}
