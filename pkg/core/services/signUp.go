package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// SignUpStore is the storage subset needed to sign a volunteer up for a shift.
type SignUpStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetAssignmentsForShift(ctx context.Context, shiftID string) ([]model.Assignment, error)
	CreateAssignmentClaimingSlot(ctx context.Context, assignment *model.Assignment) error
}

// SignUpRequest describes a volunteer claiming a slot on a shift.
type SignUpRequest struct {
	ShiftID string
	UserID  string
	Type    model.AssignmentType
	Notes   string
}

// SignUpResult reports the created assignment.
type SignUpResult struct {
	AssignmentID string
	ShiftID      string
	Type         model.AssignmentType
}

// SignUp claims one slot of the requested type on a published future shift.
// The preconditions here are advisory reads that give callers precise errors;
// the capacity check that actually matters is re-run inside the store's
// claiming primitive, so a race for the last slot lets exactly one caller
// through and fails the other with ErrShiftFull.
func SignUp(ctx context.Context, store SignUpStore, logger *zap.Logger, req SignUpRequest) (*SignUpResult, error) {
	if req.ShiftID == "" || req.UserID == "" {
		return nil, model.Invalid("shift id and user id must not be empty")
	}
	if !req.Type.Valid() {
		return nil, model.Invalid("unknown assignment type %q", req.Type)
	}

	shift, err := store.GetShift(ctx, req.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", req.ShiftID, err)
	}

	if !shift.Status.CanAcceptSignups() {
		return nil, model.ErrShiftNotPublished
	}
	if !shift.Date.After(time.Now()) {
		return nil, model.ErrShiftInPast
	}

	user, err := store.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", req.UserID, err)
	}
	if !user.CanSignUpForShifts() {
		return nil, model.ErrUserAccountInactive
	}

	existing, err := store.GetAssignmentsForShift(ctx, req.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for shift %s: %w", req.ShiftID, err)
	}
	for i := range existing {
		if existing[i].UserID == req.UserID && existing[i].IsActive() {
			return nil, model.ErrAlreadyAssigned
		}
	}

	if !shift.HasCapacityFor(req.Type) {
		return nil, model.ErrShiftFull
	}

	assignment := &model.Assignment{
		ID:         uuid.New().String(),
		ShiftID:    req.ShiftID,
		UserID:     req.UserID,
		Type:       req.Type,
		Status:     model.AssignmentPending,
		Notes:      req.Notes,
		AssignedAt: time.Now().UTC(),
	}

	// Single serializable unit: assignment insert + conditional counter
	// increment. ErrShiftFull from here means we lost the race.
	if err := store.CreateAssignmentClaimingSlot(ctx, assignment); err != nil {
		return nil, err
	}

	logger.Info("Volunteer signed up for shift",
		zap.String("shift_id", req.ShiftID),
		zap.String("user_id", req.UserID),
		zap.String("type", string(req.Type)),
		zap.String("assignment_id", assignment.ID))

	return &SignUpResult{
		AssignmentID: assignment.ID,
		ShiftID:      req.ShiftID,
		Type:         req.Type,
	}, nil
}
