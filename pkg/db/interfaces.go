// Package db defines the storage ports the scheduling engine depends on.
// The engine never reads-then-writes a capacity counter itself: the signup
// primitives below are the only way counters change, and an implementation
// must execute each as a single serializable unit scoped to the shift
// (see pkg/postgres for the conditional-update implementation).
package db

import (
	"context"
	"time"

	"github.com/troop900/treelot/pkg/core/model"
)

// Database is the full set of storage operations. pkg/postgres implements it;
// services depend on narrow per-use-case subsets.
type Database interface {
	ShiftStore
	AssignmentStore
	AttendanceStore
	TemplateStore
	SeasonStore
	UserStore
}

// ShiftStore persists shifts. Current-count columns are never written through
// these methods; only the AssignmentStore primitives touch them.
type ShiftStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetShiftsForSeason(ctx context.Context, seasonID string) ([]model.Shift, error)
	GetShiftsForDateRange(ctx context.Context, start, end time.Time) ([]model.Shift, error)
	CreateShift(ctx context.Context, shift *model.Shift) error
	CreateShifts(ctx context.Context, shifts []model.Shift) error
	UpdateShiftStatus(ctx context.Context, id string, status model.ShiftStatus) error
}

// AssignmentStore persists assignments and owns the shift capacity counters.
type AssignmentStore interface {
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	GetAssignmentsForShift(ctx context.Context, shiftID string) ([]model.Assignment, error)
	GetAssignmentsForUser(ctx context.Context, userID string) ([]model.Assignment, error)

	// CreateAssignmentClaimingSlot inserts the assignment and increments the
	// shift's counter for its type in one transaction. The increment is
	// conditional on current < required: when a concurrent caller took the
	// last slot this returns model.ErrShiftFull and nothing is written.
	// A second active assignment for the same (shift, user) pair returns
	// model.ErrAlreadyAssigned.
	CreateAssignmentClaimingSlot(ctx context.Context, assignment *model.Assignment) error

	// CreateWalkInAssignment inserts a confirmed assignment, increments the
	// shift counter without the capacity cap, and opens the given attendance
	// record, all in one transaction. Exclusivity is still enforced.
	CreateWalkInAssignment(ctx context.Context, assignment *model.Assignment, record *model.AttendanceRecord) error

	// CancelAssignmentReleasingSlot marks the assignment cancelled and
	// decrements the shift counter for its type in one transaction. Returns
	// model.ErrAssignmentNotActive when the assignment is not active.
	CancelAssignmentReleasingSlot(ctx context.Context, assignmentID, reason string) error
}

// AttendanceStore persists attendance records.
type AttendanceStore interface {
	GetAttendanceRecord(ctx context.Context, id string) (*model.AttendanceRecord, error)
	// GetAttendanceByAssignment returns model.ErrAttendanceNotFound when no
	// record exists for the assignment yet.
	GetAttendanceByAssignment(ctx context.Context, assignmentID string) (*model.AttendanceRecord, error)
	GetAttendanceForShift(ctx context.Context, shiftID string) ([]model.AttendanceRecord, error)
	CreateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error
	UpdateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error
}

// TemplateStore persists shift templates.
type TemplateStore interface {
	GetTemplate(ctx context.Context, id string) (*model.ShiftTemplate, error)
	ListTemplates(ctx context.Context) ([]model.ShiftTemplate, error)
	CreateTemplate(ctx context.Context, template *model.ShiftTemplate) error
}

// SeasonStore persists seasons.
type SeasonStore interface {
	GetSeason(ctx context.Context, id string) (*model.Season, error)
	CreateSeason(ctx context.Context, season *model.Season) error

	// PublishDraftShiftsForSeason moves every draft shift of the season to
	// published and activates the season when it is not active yet, all in
	// one transaction: a failure leaves no shift published and the season
	// untouched. Returns how many shifts were published and whether the
	// season status changed. With no draft shifts nothing is written and
	// model.ErrNoDraftShifts is returned.
	PublishDraftShiftsForSeason(ctx context.Context, seasonID string) (published int, activated bool, err error)
}

// UserStore reads volunteer identities. Account management lives elsewhere.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}
