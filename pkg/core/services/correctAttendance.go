package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// CorrectAttendanceStore is the storage subset needed for admin corrections.
type CorrectAttendanceStore interface {
	GetAttendanceRecord(ctx context.Context, id string) (*model.AttendanceRecord, error)
	UpdateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// CorrectAttendanceRequest overwrites parts of an attendance record.
// Nil fields are left unchanged. OverrideReason is mandatory and kept in the
// record's notes for audit.
type CorrectAttendanceRequest struct {
	AttendanceRecordID string
	RequestingUserID   string
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	Status             *model.AttendanceStatus
	HoursWorked        *float64
	OverrideReason     string
	Notes              string
}

// CorrectAttendance applies an audited admin correction to an attendance
// record. Committee only. The corrected record may never end up with a
// check-out earlier than its check-in; hours are recomputed when both
// timestamps land set and no explicit value was given.
func CorrectAttendance(ctx context.Context, store CorrectAttendanceStore, logger *zap.Logger, req CorrectAttendanceRequest) error {
	if req.AttendanceRecordID == "" {
		return model.Invalid("attendance record id must not be empty")
	}
	if req.OverrideReason == "" {
		return model.Invalid("override reason is required for attendance corrections")
	}
	if req.HoursWorked != nil && *req.HoursWorked < 0 {
		return model.Invalid("hours worked must not be negative")
	}

	admin, err := store.GetUser(ctx, req.RequestingUserID)
	if err != nil {
		return fmt.Errorf("failed to fetch requesting user %s: %w", req.RequestingUserID, err)
	}
	if !admin.Role.IsLeadership() {
		return model.ErrUnauthorized
	}

	record, err := store.GetAttendanceRecord(ctx, req.AttendanceRecordID)
	if err != nil {
		return fmt.Errorf("failed to fetch attendance record %s: %w", req.AttendanceRecordID, err)
	}

	checkIn := record.CheckInTime
	if req.CheckInTime != nil {
		checkIn = req.CheckInTime
	}
	checkOut := record.CheckOutTime
	if req.CheckOutTime != nil {
		checkOut = req.CheckOutTime
	}
	if checkIn != nil && checkOut != nil && checkOut.Before(*checkIn) {
		return model.Invalid("check-out time must not be before check-in time")
	}

	record.CheckInTime = checkIn
	record.CheckOutTime = checkOut
	if req.Status != nil {
		record.Status = *req.Status
	}
	switch {
	case req.HoursWorked != nil:
		record.HoursWorked = req.HoursWorked
	case checkIn != nil && checkOut != nil:
		hours := model.HoursBetween(*checkIn, *checkOut)
		record.HoursWorked = &hours
	}
	record.CheckInMethod = model.CheckInAdminOverride
	record.Notes = appendNote(record.Notes,
		fmt.Sprintf("Admin override by %s: %s", admin.FullName(), req.OverrideReason),
		req.Notes)

	if err := store.UpdateAttendanceRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to update attendance record %s: %w", record.ID, err)
	}

	logger.Info("Attendance record corrected",
		zap.String("attendance_record_id", record.ID),
		zap.String("corrected_by", req.RequestingUserID),
		zap.String("reason", req.OverrideReason))
	return nil
}
