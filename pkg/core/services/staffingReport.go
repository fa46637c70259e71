package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
	"github.com/troop900/treelot/pkg/core/staffing"
)

// StaffingReportStore is the storage subset needed to build a staffing report.
type StaffingReportStore interface {
	GetShiftsForDateRange(ctx context.Context, start, end time.Time) ([]model.Shift, error)
}

// ShiftStaffing classifies one shift's staffing for alerting.
type ShiftStaffing struct {
	ShiftID     string
	Date        time.Time
	Label       string
	Status      staffing.Status
	ScoutLevel  staffing.Level
	ParentLevel staffing.Level
	// WorstLevel is the more urgent of the two bucket levels; the report is
	// sorted by it so critical shifts surface first.
	WorstLevel staffing.Level
}

// StaffingReport classifies every published shift in the date range and
// orders the result by urgency (critical first, then by date). It is a
// read-only view over the capacity counters; callers feed it to alerting.
func StaffingReport(ctx context.Context, store StaffingReportStore, logger *zap.Logger, start, end time.Time) ([]ShiftStaffing, error) {
	if !end.After(start) {
		return nil, model.Invalid("end date must be after start date")
	}

	shifts, err := store.GetShiftsForDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	var report []ShiftStaffing
	for i := range shifts {
		s := &shifts[i]
		if s.Status != model.ShiftPublished {
			continue
		}
		scoutLevel := staffing.BucketLevel(s.CurrentScouts, s.RequiredScouts)
		parentLevel := staffing.BucketLevel(s.CurrentParents, s.RequiredParents)
		worst := scoutLevel
		if parentLevel.Priority() < worst.Priority() {
			worst = parentLevel
		}
		report = append(report, ShiftStaffing{
			ShiftID:     s.ID,
			Date:        s.Date,
			Label:       s.Label,
			Status:      staffing.ShiftStatus(s.CurrentScouts, s.RequiredScouts, s.CurrentParents, s.RequiredParents),
			ScoutLevel:  scoutLevel,
			ParentLevel: parentLevel,
			WorstLevel:  worst,
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		if report[i].WorstLevel.Priority() != report[j].WorstLevel.Priority() {
			return report[i].WorstLevel.Priority() < report[j].WorstLevel.Priority()
		}
		return report[i].Date.Before(report[j].Date)
	})

	logger.Debug("Staffing report built",
		zap.Int("shift_count", len(report)),
		zap.Time("start", start),
		zap.Time("end", end))

	return report, nil
}
