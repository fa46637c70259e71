package model

import "time"

// ShiftTemplate is a reusable time-of-day window, location and capacity that
// the schedule generator stamps onto calendar dates.
type ShiftTemplate struct {
	ID              string
	Name            string
	StartTime       time.Time // only the time-of-day component is meaningful
	EndTime         time.Time
	RequiredScouts  int
	RequiredParents int
	Location        string
	Label           string
	Notes           string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the structural invariants of a template.
func (t *ShiftTemplate) Validate() error {
	if t.Name == "" {
		return Invalid("template name must not be empty")
	}
	if !timeOfDay(t.EndTime).After(timeOfDay(t.StartTime)) {
		return Invalid("template end time must be after start time")
	}
	if t.RequiredScouts < 0 || t.RequiredParents < 0 {
		return Invalid("template volunteer counts must not be negative")
	}
	return nil
}

// OnDate maps the template's time-of-day window onto the given calendar date.
func (t *ShiftTemplate) OnDate(date time.Time) (start, end time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start = day.Add(sinceMidnight(t.StartTime))
	end = day.Add(sinceMidnight(t.EndTime))
	return start, end
}

func timeOfDay(t time.Time) time.Time {
	return time.Date(0, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}
