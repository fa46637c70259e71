package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// TemplateListStore is the storage subset needed to list shift templates.
type TemplateListStore interface {
	ListTemplates(ctx context.Context) ([]model.ShiftTemplate, error)
}

// ListActiveTemplates returns the active shift templates sorted by name, for
// picking template ids when building a schedule.
func ListActiveTemplates(ctx context.Context, store TemplateListStore, logger *zap.Logger) ([]model.ShiftTemplate, error) {
	templates, err := store.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	var active []model.ShiftTemplate
	for _, t := range templates {
		if t.IsActive {
			active = append(active, t)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })

	logger.Debug("Listed shift templates", zap.Int("active_count", len(active)))
	return active, nil
}
