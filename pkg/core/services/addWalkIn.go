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

// WalkInStore is the storage subset needed to add a walk-in volunteer.
type WalkInStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetAssignmentsForShift(ctx context.Context, shiftID string) ([]model.Assignment, error)
	GetAttendanceByAssignment(ctx context.Context, assignmentID string) (*model.AttendanceRecord, error)
	CreateWalkInAssignment(ctx context.Context, assignment *model.Assignment, record *model.AttendanceRecord) error
}

// WalkInRequest adds a volunteer who showed up without a signup to an
// in-progress shift.
type WalkInRequest struct {
	ShiftID          string
	UserID           string
	RequestingUserID string
	Type             model.AssignmentType
	Notes            string
}

// WalkInResult reports the created assignment and its opened attendance record.
type WalkInResult struct {
	AssignmentID       string
	AttendanceRecordID string
	CheckInTime        time.Time
}

// AddWalkIn creates a confirmed assignment for a volunteer on a shift that
// has already started and checks them in immediately. Capacity and the
// future-date rule do not apply to walk-ins, but a volunteer still cannot
// hold two active assignments on the same shift. The requester must hold a
// leadership role or be checked in on the same shift.
func AddWalkIn(ctx context.Context, store WalkInStore, logger *zap.Logger, req WalkInRequest) (*WalkInResult, error) {
	if req.ShiftID == "" || req.UserID == "" || req.RequestingUserID == "" {
		return nil, model.Invalid("shift id, user id and requesting user id must not be empty")
	}
	if !req.Type.Valid() {
		return nil, model.Invalid("unknown assignment type %q", req.Type)
	}

	shift, err := store.GetShift(ctx, req.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", req.ShiftID, err)
	}
	now := time.Now()
	if shift.StartTime.After(now) {
		return nil, model.ErrShiftNotStarted
	}

	requester, err := store.GetUser(ctx, req.RequestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requesting user %s: %w", req.RequestingUserID, err)
	}

	shiftAssignments, err := store.GetAssignmentsForShift(ctx, req.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for shift %s: %w", req.ShiftID, err)
	}

	if !requester.Role.IsLeadership() {
		ok, err := isCheckedInOnShift(ctx, store, shiftAssignments, req.RequestingUserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.ErrUnauthorized
		}
	}

	walkIn, err := store.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch walk-in user %s: %w", req.UserID, err)
	}

	for i := range shiftAssignments {
		if shiftAssignments[i].UserID == req.UserID && shiftAssignments[i].IsActive() {
			return nil, model.ErrAlreadyAssigned
		}
	}

	checkIn := now.UTC()
	assignment := &model.Assignment{
		ID:         uuid.New().String(),
		ShiftID:    req.ShiftID,
		UserID:     req.UserID,
		Type:       req.Type,
		Status:     model.AssignmentConfirmed,
		Notes:      req.Notes,
		AssignedAt: checkIn,
		AssignedBy: req.RequestingUserID,
	}
	record := &model.AttendanceRecord{
		ID:            uuid.New().String(),
		AssignmentID:  assignment.ID,
		ShiftID:       req.ShiftID,
		UserID:        req.UserID,
		CheckInTime:   &checkIn,
		CheckInMethod: model.CheckInManual,
		Status:        model.AttendanceCheckedIn,
		Notes:         fmt.Sprintf("Walk-in volunteer added by %s", requester.FullName()),
	}

	if err := store.CreateWalkInAssignment(ctx, assignment, record); err != nil {
		return nil, err
	}

	logger.Info("Walk-in volunteer added",
		zap.String("shift_id", req.ShiftID),
		zap.String("user_id", req.UserID),
		zap.String("added_by", req.RequestingUserID),
		zap.String("walk_in_name", walkIn.FullName()),
		zap.String("assignment_id", assignment.ID))

	return &WalkInResult{
		AssignmentID:       assignment.ID,
		AttendanceRecordID: record.ID,
		CheckInTime:        checkIn,
	}, nil
}

// isCheckedInOnShift reports whether the user holds an active assignment on
// the shift with an open check-in.
func isCheckedInOnShift(ctx context.Context, store WalkInStore, shiftAssignments []model.Assignment, userID string) (bool, error) {
	for i := range shiftAssignments {
		a := &shiftAssignments[i]
		if a.UserID != userID || !a.IsActive() {
			continue
		}
		record, err := store.GetAttendanceByAssignment(ctx, a.ID)
		if err != nil {
			if errors.Is(err, model.ErrAttendanceNotFound) {
				continue
			}
			return false, fmt.Errorf("failed to fetch attendance for assignment %s: %w", a.ID, err)
		}
		if record.IsCheckedIn() {
			return true, nil
		}
	}
	return false, nil
}
