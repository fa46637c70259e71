package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// ShiftAttendanceStore is the storage subset needed to summarize a shift's
// attendance.
type ShiftAttendanceStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetAttendanceForShift(ctx context.Context, shiftID string) ([]model.AttendanceRecord, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// AttendanceEntry is one volunteer's attendance on a shift.
type AttendanceEntry struct {
	UserID       string
	UserName     string
	Status       model.AttendanceStatus
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	HoursWorked  *float64
}

// ShiftAttendanceSummary is the attendance read model for one shift.
type ShiftAttendanceSummary struct {
	ShiftID    string
	Entries    []AttendanceEntry
	TotalHours float64
}

// GetShiftAttendance returns every attendance record of a shift enriched with
// the volunteer's name, plus the total hours worked across them. A record
// whose user cannot be resolved is dropped from the view rather than failing
// the whole call.
func GetShiftAttendance(ctx context.Context, store ShiftAttendanceStore, logger *zap.Logger, shiftID string) (*ShiftAttendanceSummary, error) {
	if shiftID == "" {
		return nil, model.Invalid("shift id must not be empty")
	}

	if _, err := store.GetShift(ctx, shiftID); err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", shiftID, err)
	}

	records, err := store.GetAttendanceForShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance for shift %s: %w", shiftID, err)
	}

	summary := &ShiftAttendanceSummary{ShiftID: shiftID}
	for i := range records {
		r := &records[i]
		user, err := store.GetUser(ctx, r.UserID)
		if err != nil {
			logger.Warn("Skipping attendance record with unresolvable user",
				zap.String("attendance_record_id", r.ID),
				zap.String("user_id", r.UserID),
				zap.Error(err))
			continue
		}
		summary.Entries = append(summary.Entries, AttendanceEntry{
			UserID:       r.UserID,
			UserName:     user.FullName(),
			Status:       r.Status,
			CheckInTime:  r.CheckInTime,
			CheckOutTime: r.CheckOutTime,
			HoursWorked:  r.HoursWorked,
		})
		if r.HoursWorked != nil {
			summary.TotalHours += *r.HoursWorked
		}
	}
	return summary, nil
}
