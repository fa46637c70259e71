package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// CreateStore is the storage subset for the direct creation paths.
type CreateStore interface {
	CreateSeason(ctx context.Context, season *model.Season) error
	CreateTemplate(ctx context.Context, template *model.ShiftTemplate) error
	CreateShift(ctx context.Context, shift *model.Shift) error
}

// CreateSeason creates a draft season for a date range.
func CreateSeason(ctx context.Context, store CreateStore, logger *zap.Logger, season model.Season) (*model.Season, error) {
	if err := season.Validate(); err != nil {
		return nil, err
	}
	season.ID = uuid.New().String()
	season.Status = model.SeasonDraft
	season.CreatedAt = time.Now().UTC()
	season.UpdatedAt = season.CreatedAt
	if season.Year == 0 {
		season.Year = season.StartDate.Year()
	}

	if err := store.CreateSeason(ctx, &season); err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}

	logger.Info("Season created",
		zap.String("season_id", season.ID),
		zap.String("name", season.Name))
	return &season, nil
}

// CreateTemplate creates an active shift template.
func CreateTemplate(ctx context.Context, store CreateStore, logger *zap.Logger, template model.ShiftTemplate) (*model.ShiftTemplate, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}
	template.ID = uuid.New().String()
	template.IsActive = true
	template.CreatedAt = time.Now().UTC()
	template.UpdatedAt = template.CreatedAt

	if err := store.CreateTemplate(ctx, &template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	logger.Info("Shift template created",
		zap.String("template_id", template.ID),
		zap.String("name", template.Name))
	return &template, nil
}

// CreateShift creates a single draft shift outside of bulk generation, e.g.
// for a one-off event the templates don't cover.
func CreateShift(ctx context.Context, store CreateStore, logger *zap.Logger, shift model.Shift) (*model.Shift, error) {
	if err := shift.Validate(); err != nil {
		return nil, err
	}
	shift.ID = uuid.New().String()
	shift.Status = model.ShiftDraft
	shift.CurrentScouts = 0
	shift.CurrentParents = 0
	shift.CreatedAt = time.Now().UTC()

	if err := store.CreateShift(ctx, &shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	logger.Info("Shift created",
		zap.String("shift_id", shift.ID),
		zap.Time("date", shift.Date))
	return &shift, nil
}
