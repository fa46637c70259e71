package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// CancelAssignmentStore is the storage subset needed to cancel an assignment.
type CancelAssignmentStore interface {
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	CancelAssignmentReleasingSlot(ctx context.Context, assignmentID, reason string) error
}

// CancelAssignment releases a volunteer's slot on a shift that has not
// started yet. The cancelled-status write and the counter decrement happen
// in one store transaction.
func CancelAssignment(ctx context.Context, store CancelAssignmentStore, logger *zap.Logger, assignmentID, reason string) error {
	if assignmentID == "" {
		return model.Invalid("assignment id must not be empty")
	}

	assignment, err := store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment %s: %w", assignmentID, err)
	}
	if !assignment.IsActive() {
		return model.ErrAssignmentNotActive
	}

	shift, err := store.GetShift(ctx, assignment.ShiftID)
	if err != nil {
		return fmt.Errorf("failed to fetch shift %s: %w", assignment.ShiftID, err)
	}
	if !shift.StartTime.After(time.Now()) {
		return model.ErrCannotCancel
	}

	if err := store.CancelAssignmentReleasingSlot(ctx, assignmentID, reason); err != nil {
		return err
	}

	logger.Info("Assignment cancelled",
		zap.String("assignment_id", assignmentID),
		zap.String("shift_id", assignment.ShiftID),
		zap.String("user_id", assignment.UserID),
		zap.String("reason", reason))
	return nil
}
