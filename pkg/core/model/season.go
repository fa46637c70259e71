package model

import "time"

// Season is a named date range grouping generated shifts.
type Season struct {
	ID          string
	Name        string
	Year        int
	StartDate   time.Time
	EndDate     time.Time
	Status      SeasonStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the structural invariants of a season.
func (s *Season) Validate() error {
	if s.Name == "" {
		return Invalid("season name must not be empty")
	}
	if !s.EndDate.After(s.StartDate) {
		return Invalid("season end date must be after start date")
	}
	return nil
}

// IsActive reports whether the season is currently running.
func (s *Season) IsActive() bool {
	return s.Status == SeasonActive
}
