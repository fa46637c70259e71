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

func confirmedAssignment(id, shiftID, userID string) model.Assignment {
	return model.Assignment{
		ID: id, ShiftID: shiftID, UserID: userID,
		Type: model.TypeScout, Status: model.AssignmentConfirmed,
	}
}

func TestCheckIn_CreatesRecord(t *testing.T) {
	store := newFakeStore()
	store.addAssignment(confirmedAssignment("asg-1", "shift-1", "alice"))

	result, err := CheckIn(context.Background(), store, zap.NewNop(), CheckInRequest{
		AssignmentID: "asg-1",
		Method:       model.CheckInQRCode,
		Location:     &model.GeoLocation{Latitude: 37.77, Longitude: -122.42},
	})
	require.NoError(t, err)

	record := store.attendance[result.AttendanceRecordID]
	require.NotNil(t, record)
	assert.Equal(t, "asg-1", record.AssignmentID)
	assert.Equal(t, "shift-1", record.ShiftID)
	assert.Equal(t, "alice", record.UserID)
	require.NotNil(t, record.CheckInTime)
	assert.Nil(t, record.CheckOutTime)
	assert.Equal(t, model.CheckInQRCode, record.CheckInMethod)
	require.NotNil(t, record.CheckInLocation)
	assert.Equal(t, model.AttendanceCheckedIn, record.Status)
	assert.True(t, record.IsCheckedIn())
}

func TestCheckIn_DefaultsToManualMethod(t *testing.T) {
	store := newFakeStore()
	store.addAssignment(confirmedAssignment("asg-1", "shift-1", "alice"))

	result, err := CheckIn(context.Background(), store, zap.NewNop(), CheckInRequest{AssignmentID: "asg-1"})
	require.NoError(t, err)
	assert.Equal(t, model.CheckInManual, store.attendance[result.AttendanceRecordID].CheckInMethod)
}

func TestCheckIn_ReusesPendingRecord(t *testing.T) {
	store := newFakeStore()
	store.addAssignment(confirmedAssignment("asg-1", "shift-1", "alice"))
	store.addAttendance(model.AttendanceRecord{
		ID: "att-1", AssignmentID: "asg-1", ShiftID: "shift-1",
		UserID: "alice", Status: model.AttendancePending,
	})

	result, err := CheckIn(context.Background(), store, zap.NewNop(), CheckInRequest{AssignmentID: "asg-1"})
	require.NoError(t, err)
	assert.Equal(t, "att-1", result.AttendanceRecordID)
	assert.Len(t, store.attendance, 1)
	assert.NotNil(t, store.attendance["att-1"].CheckInTime)
}

func TestCheckIn_RejectsDoubleCheckIn(t *testing.T) {
	store := newFakeStore()
	store.addAssignment(confirmedAssignment("asg-1", "shift-1", "alice"))
	earlier := time.Now().Add(-time.Hour)
	store.addAttendance(model.AttendanceRecord{
		ID: "att-1", AssignmentID: "asg-1", ShiftID: "shift-1",
		UserID: "alice", CheckInTime: &earlier, Status: model.AttendanceCheckedIn,
	})

	_, err := CheckIn(context.Background(), store, zap.NewNop(), CheckInRequest{AssignmentID: "asg-1"})
	assert.ErrorIs(t, err, model.ErrAlreadyCheckedIn)
}

func TestCheckIn_RejectsInactiveAssignment(t *testing.T) {
	store := newFakeStore()
	cancelled := confirmedAssignment("asg-1", "shift-1", "alice")
	cancelled.Status = model.AssignmentCancelled
	store.addAssignment(cancelled)

	_, err := CheckIn(context.Background(), store, zap.NewNop(), CheckInRequest{AssignmentID: "asg-1"})
	assert.ErrorIs(t, err, model.ErrAssignmentNotActive)
}

func TestCheckIn_UnknownAssignment(t *testing.T) {
	store := newFakeStore()

	_, err := CheckIn(context.Background(), store, zap.NewNop(), CheckInRequest{AssignmentID: "missing"})
	assert.ErrorIs(t, err, model.ErrAssignmentNotFound)
}
