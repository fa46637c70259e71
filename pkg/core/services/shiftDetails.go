package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
	"github.com/troop900/treelot/pkg/core/staffing"
)

// ShiftDetailsStore is the storage subset needed to build a shift detail view.
type ShiftDetailsStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetAssignmentsForShift(ctx context.Context, shiftID string) ([]model.Assignment, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// AssignmentInfo is an active assignment enriched with the volunteer's name.
type AssignmentInfo struct {
	AssignmentID string
	UserID       string
	UserName     string
	Type         model.AssignmentType
	Status       model.AssignmentStatus
}

// ShiftDetails is the read model for a single shift.
type ShiftDetails struct {
	Shift          model.Shift
	Assignments    []AssignmentInfo
	StaffingStatus staffing.Status
	ScoutLevel     staffing.Level
	ParentLevel    staffing.Level
}

// GetShiftDetails returns a shift with its active assignments and derived
// staffing classifications. Name lookups are independent and optional: an
// assignment whose user cannot be resolved is dropped from the view rather
// than failing the whole call.
func GetShiftDetails(ctx context.Context, store ShiftDetailsStore, logger *zap.Logger, shiftID string) (*ShiftDetails, error) {
	if shiftID == "" {
		return nil, model.Invalid("shift id must not be empty")
	}

	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", shiftID, err)
	}

	assignments, err := store.GetAssignmentsForShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for shift %s: %w", shiftID, err)
	}

	var infos []AssignmentInfo
	for i := range assignments {
		a := &assignments[i]
		if !a.IsActive() {
			continue
		}
		user, err := store.GetUser(ctx, a.UserID)
		if err != nil {
			logger.Warn("Skipping assignment with unresolvable user",
				zap.String("assignment_id", a.ID),
				zap.String("user_id", a.UserID),
				zap.Error(err))
			continue
		}
		infos = append(infos, AssignmentInfo{
			AssignmentID: a.ID,
			UserID:       a.UserID,
			UserName:     user.FullName(),
			Type:         a.Type,
			Status:       a.Status,
		})
	}

	return &ShiftDetails{
		Shift:          *shift,
		Assignments:    infos,
		StaffingStatus: staffing.ShiftStatus(shift.CurrentScouts, shift.RequiredScouts, shift.CurrentParents, shift.RequiredParents),
		ScoutLevel:     staffing.BucketLevel(shift.CurrentScouts, shift.RequiredScouts),
		ParentLevel:    staffing.BucketLevel(shift.CurrentParents, shift.RequiredParents),
	}, nil
}
