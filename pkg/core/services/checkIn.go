package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// AttendanceActionStore is the storage subset shared by the attendance
// lifecycle operations.
type AttendanceActionStore interface {
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	GetAttendanceByAssignment(ctx context.Context, assignmentID string) (*model.AttendanceRecord, error)
	CreateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error
	UpdateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error
}

// CheckInRequest records a volunteer's arrival for their assignment.
type CheckInRequest struct {
	AssignmentID string
	Method       model.CheckInMethod
	Location     *model.GeoLocation
}

// CheckInResult reports the opened attendance record.
type CheckInResult struct {
	AttendanceRecordID string
	CheckInTime        time.Time
}

// CheckIn opens (or reuses a still-pending) attendance record for an active
// assignment and stamps the check-in time. A record that was already checked
// in or out rejects with ErrAlreadyCheckedIn.
func CheckIn(ctx context.Context, store AttendanceActionStore, logger *zap.Logger, req CheckInRequest) (*CheckInResult, error) {
	if req.AssignmentID == "" {
		return nil, model.Invalid("assignment id must not be empty")
	}
	if req.Method == "" {
		req.Method = model.CheckInManual
	}

	assignment, err := store.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment %s: %w", req.AssignmentID, err)
	}
	if !assignment.IsActive() {
		return nil, model.ErrAssignmentNotActive
	}

	now := time.Now().UTC()

	existing, err := store.GetAttendanceByAssignment(ctx, req.AssignmentID)
	switch {
	case err == nil:
		if existing.CheckInTime != nil {
			return nil, model.ErrAlreadyCheckedIn
		}
		// A pending record (e.g. created by an earlier no-show reversal)
		// is reused rather than duplicated.
		existing.CheckInTime = &now
		existing.CheckInMethod = req.Method
		existing.CheckInLocation = req.Location
		existing.Status = model.AttendanceCheckedIn
		if err := store.UpdateAttendanceRecord(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update attendance record %s: %w", existing.ID, err)
		}
		logger.Info("Volunteer checked in",
			zap.String("assignment_id", req.AssignmentID),
			zap.String("attendance_record_id", existing.ID),
			zap.String("method", string(req.Method)))
		return &CheckInResult{AttendanceRecordID: existing.ID, CheckInTime: now}, nil

	case errors.Is(err, model.ErrAttendanceNotFound):
		record := &model.AttendanceRecord{
			ID:              uuid.New().String(),
			AssignmentID:    assignment.ID,
			ShiftID:         assignment.ShiftID,
			UserID:          assignment.UserID,
			CheckInTime:     &now,
			CheckInMethod:   req.Method,
			CheckInLocation: req.Location,
			Status:          model.AttendanceCheckedIn,
		}
		if err := store.CreateAttendanceRecord(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create attendance record: %w", err)
		}
		logger.Info("Volunteer checked in",
			zap.String("assignment_id", req.AssignmentID),
			zap.String("attendance_record_id", record.ID),
			zap.String("method", string(req.Method)))
		return &CheckInResult{AttendanceRecordID: record.ID, CheckInTime: now}, nil

	default:
		return nil, fmt.Errorf("failed to fetch attendance for assignment %s: %w", req.AssignmentID, err)
	}
}
