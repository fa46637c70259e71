package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// ShiftLifecycleStore is the storage subset for single-shift status changes.
type ShiftLifecycleStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	UpdateShiftStatus(ctx context.Context, id string, status model.ShiftStatus) error
}

// CancelShift moves a draft or published shift to cancelled. Cancelled is
// terminal; the shift record stays in the store.
func CancelShift(ctx context.Context, store ShiftLifecycleStore, logger *zap.Logger, shiftID string) error {
	return transitionShift(ctx, store, logger, shiftID, model.ShiftCancelled)
}

// CompleteShift moves a published shift to completed. Intended to be driven
// by a time-based caller once the shift's end time has passed.
func CompleteShift(ctx context.Context, store ShiftLifecycleStore, logger *zap.Logger, shiftID string) error {
	return transitionShift(ctx, store, logger, shiftID, model.ShiftCompleted)
}

func transitionShift(ctx context.Context, store ShiftLifecycleStore, logger *zap.Logger, shiftID string, target model.ShiftStatus) error {
	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("failed to fetch shift %s: %w", shiftID, err)
	}

	if !shift.Status.CanTransitionTo(target) {
		logger.Debug("Rejected shift status transition",
			zap.String("shift_id", shiftID),
			zap.String("from", string(shift.Status)),
			zap.String("to", string(target)))
		return model.ErrInvalidShiftTransition
	}

	if err := store.UpdateShiftStatus(ctx, shiftID, target); err != nil {
		return fmt.Errorf("failed to update shift %s status: %w", shiftID, err)
	}

	logger.Info("Shift status changed",
		zap.String("shift_id", shiftID),
		zap.String("from", string(shift.Status)),
		zap.String("to", string(target)))
	return nil
}
