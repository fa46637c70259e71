package model

import "time"

// Assignment is a volunteer's claim on one slot-type of a shift.
// At most one active assignment may exist per (shift, volunteer) pair.
type Assignment struct {
	ID         string
	ShiftID    string
	UserID     string
	Type       AssignmentType
	Status     AssignmentStatus
	Notes      string
	AssignedAt time.Time
	AssignedBy string
}

// IsActive reports whether the assignment still holds a slot on its shift.
func (a *Assignment) IsActive() bool {
	return a.Status.IsActive()
}
