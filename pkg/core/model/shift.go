package model

import "time"

// Shift is a scheduled volunteer work slot with per-type capacity.
// Current counts are a denormalized cache of active assignment counts and are
// mutated only through the store's atomic capacity primitives.
type Shift struct {
	ID              string
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	RequiredScouts  int
	RequiredParents int
	CurrentScouts   int
	CurrentParents  int
	Location        string
	Label           string
	Notes           string
	Status          ShiftStatus
	SeasonID        string
	TemplateID      string
	CreatedAt       time.Time
}

// Validate checks the structural invariants of a shift.
func (s *Shift) Validate() error {
	if !s.EndTime.After(s.StartTime) {
		return Invalid("shift end time must be after start time")
	}
	if s.RequiredScouts < 0 || s.RequiredParents < 0 {
		return Invalid("required volunteer counts must not be negative")
	}
	return nil
}

// NeedsScouts reports whether the scout bucket still has open slots.
func (s *Shift) NeedsScouts() bool {
	return s.CurrentScouts < s.RequiredScouts
}

// NeedsParents reports whether the parent bucket still has open slots.
func (s *Shift) NeedsParents() bool {
	return s.CurrentParents < s.RequiredParents
}

// HasCapacityFor reports whether the bucket for the given type has an open slot.
func (s *Shift) HasCapacityFor(t AssignmentType) bool {
	if t == TypeScout {
		return s.NeedsScouts()
	}
	return s.NeedsParents()
}

// Duration is the scheduled length of the shift.
func (s *Shift) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
