package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// CheckOutResult reports the closed attendance record.
type CheckOutResult struct {
	AttendanceRecordID string
	CheckOutTime       time.Time
	HoursWorked        float64
}

// CheckOut closes an open attendance record: stamps the check-out time,
// derives hours worked (never negative) and moves the record to checked out.
func CheckOut(ctx context.Context, store AttendanceActionStore, logger *zap.Logger, assignmentID, notes string) (*CheckOutResult, error) {
	if assignmentID == "" {
		return nil, model.Invalid("assignment id must not be empty")
	}

	record, err := store.GetAttendanceByAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, model.ErrAttendanceNotFound) {
			return nil, model.ErrNotCheckedIn
		}
		return nil, fmt.Errorf("failed to fetch attendance for assignment %s: %w", assignmentID, err)
	}
	if record.CheckInTime == nil {
		return nil, model.ErrNotCheckedIn
	}
	if record.CheckOutTime != nil {
		return nil, model.ErrAlreadyCheckedOut
	}

	now := time.Now().UTC()
	hours := model.HoursBetween(*record.CheckInTime, now)

	record.CheckOutTime = &now
	record.HoursWorked = &hours
	record.Status = model.AttendanceCheckedOut
	if notes != "" {
		record.Notes = appendNote(record.Notes, notes)
	}

	if err := store.UpdateAttendanceRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update attendance record %s: %w", record.ID, err)
	}

	logger.Info("Volunteer checked out",
		zap.String("assignment_id", assignmentID),
		zap.String("attendance_record_id", record.ID),
		zap.Float64("hours_worked", hours))

	return &CheckOutResult{
		AttendanceRecordID: record.ID,
		CheckOutTime:       now,
		HoursWorked:        hours,
	}, nil
}

// appendNote joins audit notes with a separator, skipping empty parts.
func appendNote(existing string, parts ...string) string {
	joined := existing
	for _, p := range parts {
		if p == "" {
			continue
		}
		if joined == "" {
			joined = p
		} else {
			joined = joined + " | " + p
		}
	}
	return joined
}
