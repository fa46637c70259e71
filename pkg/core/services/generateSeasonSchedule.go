package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// GenerateScheduleStore is the storage subset needed to bulk-generate a season.
type GenerateScheduleStore interface {
	GetSeason(ctx context.Context, id string) (*model.Season, error)
	GetTemplate(ctx context.Context, id string) (*model.ShiftTemplate, error)
	CreateShifts(ctx context.Context, shifts []model.Shift) error
}

// SpecialEvent overrides the regular templates on a single date: that day gets
// exactly one shift built from the named template with the event's own label.
type SpecialEvent struct {
	Date       time.Time
	TemplateID string
	Label      string
	Notes      string
}

// GenerateScheduleRequest describes a bulk generation run.
type GenerateScheduleRequest struct {
	SeasonID        string
	StartDate       time.Time
	EndDate         time.Time // inclusive
	DefaultLocation string
	TemplateIDs     []string
	// Recurrence optionally restricts a template to the dates produced by an
	// RRULE string (e.g. weekend-only templates). Templates without an entry
	// apply every day.
	Recurrence    map[string]string
	SpecialEvents []SpecialEvent
	ExcludedDates []time.Time
}

// GenerateScheduleResult summarizes what a generation run created.
type GenerateScheduleResult struct {
	SeasonID            string
	ShiftsCreated       int
	TotalVolunteerSlots int
	DatesWithShifts     int
	SpecialEventCount   int
}

// GenerateSeasonSchedule stamps the supplied templates onto every day of the
// season's date range and writes the resulting shifts as drafts in one bulk
// insert. Excluded dates are skipped entirely; a special-event date gets a
// single shift from its override template instead of the regular set.
//
// Generation appends: re-running with the same parameters creates duplicate
// shifts. Deduplication is the caller's responsibility.
func GenerateSeasonSchedule(ctx context.Context, store GenerateScheduleStore, logger *zap.Logger, req GenerateScheduleRequest) (*GenerateScheduleResult, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, model.Invalid("end date must be after start date")
	}

	logger.Debug("Generating season schedule",
		zap.String("season_id", req.SeasonID),
		zap.Time("start", req.StartDate),
		zap.Time("end", req.EndDate),
		zap.Int("template_count", len(req.TemplateIDs)))

	if _, err := store.GetSeason(ctx, req.SeasonID); err != nil {
		return nil, fmt.Errorf("failed to fetch season %s: %w", req.SeasonID, err)
	}

	templates, err := resolveActiveTemplates(ctx, store, logger, req.TemplateIDs)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, model.Invalid("at least one active template must be provided")
	}

	allowedDates, err := resolveRecurrence(req, templates)
	if err != nil {
		return nil, err
	}

	specialEvents := make(map[string]SpecialEvent, len(req.SpecialEvents))
	for _, ev := range req.SpecialEvents {
		specialEvents[dayKey(ev.Date)] = ev
	}
	excluded := make(map[string]bool, len(req.ExcludedDates))
	for _, d := range req.ExcludedDates {
		excluded[dayKey(d)] = true
	}

	var shifts []model.Shift
	specialEventCount := 0
	dates := make(map[string]bool)

	for day := startOfDay(req.StartDate); !day.After(startOfDay(req.EndDate)); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)
		if excluded[key] {
			continue
		}

		if ev, ok := specialEvents[key]; ok {
			tmpl := findTemplate(templates, ev.TemplateID)
			if tmpl == nil {
				logger.Warn("Special event references an unresolved template, skipping date",
					zap.String("date", key), zap.String("template_id", ev.TemplateID))
				continue
			}
			// Special-event shifts take the event's label and the run's
			// default location rather than the template's own.
			shifts = append(shifts, buildShift(tmpl, day, req.SeasonID, ev.Label, ev.Notes, req.DefaultLocation))
			specialEventCount++
			dates[key] = true
			continue
		}

		for i := range templates {
			tmpl := &templates[i]
			if allowed, ok := allowedDates[tmpl.ID]; ok && !allowed[key] {
				continue
			}
			shifts = append(shifts, buildShift(tmpl, day, req.SeasonID, tmpl.Label, tmpl.Notes, tmpl.Location))
			dates[key] = true
		}
	}

	if len(shifts) > 0 {
		if err := store.CreateShifts(ctx, shifts); err != nil {
			return nil, fmt.Errorf("failed to create shifts: %w", err)
		}
	}

	totalSlots := 0
	for i := range shifts {
		totalSlots += shifts[i].RequiredScouts + shifts[i].RequiredParents
	}

	logger.Info("Season schedule generated",
		zap.String("season_id", req.SeasonID),
		zap.Int("shifts_created", len(shifts)),
		zap.Int("total_volunteer_slots", totalSlots),
		zap.Int("dates_with_shifts", len(dates)),
		zap.Int("special_events", specialEventCount))

	return &GenerateScheduleResult{
		SeasonID:            req.SeasonID,
		ShiftsCreated:       len(shifts),
		TotalVolunteerSlots: totalSlots,
		DatesWithShifts:     len(dates),
		SpecialEventCount:   specialEventCount,
	}, nil
}

// resolveActiveTemplates looks up each supplied template id and keeps the
// active ones. Unknown ids and inactive templates are skipped, not fatal.
func resolveActiveTemplates(ctx context.Context, store GenerateScheduleStore, logger *zap.Logger, ids []string) ([]model.ShiftTemplate, error) {
	var templates []model.ShiftTemplate
	for _, id := range ids {
		tmpl, err := store.GetTemplate(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrTemplateNotFound) {
				logger.Warn("Skipping unknown template", zap.String("template_id", id))
				continue
			}
			return nil, fmt.Errorf("failed to fetch template %s: %w", id, err)
		}
		if !tmpl.IsActive {
			logger.Warn("Skipping inactive template", zap.String("template_id", id))
			continue
		}
		templates = append(templates, *tmpl)
	}
	return templates, nil
}

// resolveRecurrence expands each template's RRULE (when one is configured)
// into the set of dates it applies to within the request range.
func resolveRecurrence(req GenerateScheduleRequest, templates []model.ShiftTemplate) (map[string]map[string]bool, error) {
	allowed := make(map[string]map[string]bool)
	for i := range templates {
		ruleStr, ok := req.Recurrence[templates[i].ID]
		if !ok || ruleStr == "" {
			continue
		}
		rule, err := rrule.StrToRRule(ruleStr)
		if err != nil {
			return nil, model.Invalid("invalid recurrence rule for template %s: %v", templates[i].ID, err)
		}
		rule.DTStart(startOfDay(req.StartDate))

		days := make(map[string]bool)
		for _, occ := range rule.Between(startOfDay(req.StartDate), startOfDay(req.EndDate).Add(24*time.Hour-time.Nanosecond), true) {
			days[dayKey(occ)] = true
		}
		allowed[templates[i].ID] = days
	}
	return allowed, nil
}

func findTemplate(templates []model.ShiftTemplate, id string) *model.ShiftTemplate {
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i]
		}
	}
	return nil
}

func buildShift(tmpl *model.ShiftTemplate, day time.Time, seasonID, label, notes, location string) model.Shift {
	start, end := tmpl.OnDate(day)
	return model.Shift{
		ID:              uuid.New().String(),
		Date:            day,
		StartTime:       start,
		EndTime:         end,
		RequiredScouts:  tmpl.RequiredScouts,
		RequiredParents: tmpl.RequiredParents,
		Location:        location,
		Label:           label,
		Notes:           notes,
		Status:          model.ShiftDraft,
		SeasonID:        seasonID,
		TemplateID:      tmpl.ID,
		CreatedAt:       time.Now().UTC(),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
