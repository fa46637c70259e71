package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// NoShowStore is the storage subset needed to mark a no-show.
type NoShowStore interface {
	AttendanceActionStore
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// MarkNoShow records that a volunteer never turned up for their assignment.
// Committee only. A volunteer who has checked in cannot be marked a no-show,
// and marking one never writes check-in or check-out timestamps.
func MarkNoShow(ctx context.Context, store NoShowStore, logger *zap.Logger, assignmentID, requestingUserID, notes string) error {
	if assignmentID == "" {
		return model.Invalid("assignment id must not be empty")
	}

	admin, err := store.GetUser(ctx, requestingUserID)
	if err != nil {
		return fmt.Errorf("failed to fetch requesting user %s: %w", requestingUserID, err)
	}
	if !admin.Role.IsLeadership() {
		return model.ErrUnauthorized
	}

	assignment, err := store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment %s: %w", assignmentID, err)
	}

	audit := appendNote("", fmt.Sprintf("Marked as no-show by %s", admin.FullName()), notes)

	existing, err := store.GetAttendanceByAssignment(ctx, assignmentID)
	switch {
	case err == nil:
		if existing.CheckInTime != nil {
			return model.ErrAlreadyCheckedIn
		}
		existing.Status = model.AttendanceNoShow
		existing.HoursWorked = nil
		existing.Notes = appendNote(existing.Notes, audit)
		if err := store.UpdateAttendanceRecord(ctx, existing); err != nil {
			return fmt.Errorf("failed to update attendance record %s: %w", existing.ID, err)
		}

	case errors.Is(err, model.ErrAttendanceNotFound):
		record := &model.AttendanceRecord{
			ID:            uuid.New().String(),
			AssignmentID:  assignment.ID,
			ShiftID:       assignment.ShiftID,
			UserID:        assignment.UserID,
			CheckInMethod: model.CheckInAdminOverride,
			Status:        model.AttendanceNoShow,
			Notes:         audit,
		}
		if err := store.CreateAttendanceRecord(ctx, record); err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}

	default:
		return fmt.Errorf("failed to fetch attendance for assignment %s: %w", assignmentID, err)
	}

	logger.Info("Volunteer marked as no-show",
		zap.String("assignment_id", assignmentID),
		zap.String("marked_by", requestingUserID))
	return nil
}
