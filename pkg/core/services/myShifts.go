package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// MyShiftsStore is the storage subset needed to list a volunteer's shifts.
type MyShiftsStore interface {
	GetAssignmentsForUser(ctx context.Context, userID string) ([]model.Assignment, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
}

// VolunteerShift is an active assignment joined with its shift.
type VolunteerShift struct {
	AssignmentID string
	Type         model.AssignmentType
	Status       model.AssignmentStatus
	Shift        model.Shift
}

// GetVolunteerShifts returns the volunteer's active assignments with their
// shifts, soonest first. Assignments on cancelled shifts and assignments
// whose shift cannot be resolved are dropped from the listing rather than
// failing the whole call.
func GetVolunteerShifts(ctx context.Context, store MyShiftsStore, logger *zap.Logger, userID string) ([]VolunteerShift, error) {
	if userID == "" {
		return nil, model.Invalid("user id must not be empty")
	}

	assignments, err := store.GetAssignmentsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for user %s: %w", userID, err)
	}

	var out []VolunteerShift
	for i := range assignments {
		a := &assignments[i]
		if !a.IsActive() {
			continue
		}
		shift, err := store.GetShift(ctx, a.ShiftID)
		if err != nil {
			logger.Warn("Skipping assignment with unresolvable shift",
				zap.String("assignment_id", a.ID),
				zap.String("shift_id", a.ShiftID),
				zap.Error(err))
			continue
		}
		if shift.Status == model.ShiftCancelled {
			continue
		}
		out = append(out, VolunteerShift{
			AssignmentID: a.ID,
			Type:         a.Type,
			Status:       a.Status,
			Shift:        *shift,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Shift.StartTime.Before(out[j].Shift.StartTime)
	})
	return out, nil
}
