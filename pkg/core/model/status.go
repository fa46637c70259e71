package model

// ShiftStatus is the lifecycle state of a shift.
type ShiftStatus string

const (
	ShiftDraft     ShiftStatus = "draft"
	ShiftPublished ShiftStatus = "published"
	ShiftCancelled ShiftStatus = "cancelled"
	ShiftCompleted ShiftStatus = "completed"
)

// CanAcceptSignups reports whether volunteers may sign up for a shift in this state.
func (s ShiftStatus) CanAcceptSignups() bool {
	return s == ShiftPublished
}

// IsEditable reports whether a shift in this state may still be modified.
// Cancelled and completed shifts are frozen.
func (s ShiftStatus) IsEditable() bool {
	return s == ShiftDraft || s == ShiftPublished
}

// CanTransitionTo reports whether the lifecycle permits moving to the target state.
// Cancelled and completed are terminal.
func (s ShiftStatus) CanTransitionTo(target ShiftStatus) bool {
	switch s {
	case ShiftDraft:
		return target == ShiftPublished || target == ShiftCancelled
	case ShiftPublished:
		return target == ShiftCompleted || target == ShiftCancelled
	default:
		return false
	}
}

// AssignmentStatus is the state of a volunteer's claim on a shift slot.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentCancelled AssignmentStatus = "cancelled"
	AssignmentCompleted AssignmentStatus = "completed"
)

// IsActive reports whether the assignment still holds a slot on its shift.
func (s AssignmentStatus) IsActive() bool {
	return s == AssignmentPending || s == AssignmentConfirmed
}

// AttendanceStatus tracks a volunteer's presence for an assignment.
type AttendanceStatus string

const (
	AttendancePending    AttendanceStatus = "pending"
	AttendanceCheckedIn  AttendanceStatus = "checked_in"
	AttendanceCheckedOut AttendanceStatus = "checked_out"
	AttendanceNoShow     AttendanceStatus = "no_show"
	AttendanceExcused    AttendanceStatus = "excused"
)

// IsComplete reports whether no further attendance transitions are expected.
func (s AttendanceStatus) IsComplete() bool {
	return s == AttendanceCheckedOut || s == AttendanceNoShow || s == AttendanceExcused
}

// CheckInMethod records how a check-in was performed.
type CheckInMethod string

const (
	CheckInQRCode        CheckInMethod = "qr_code"
	CheckInManual        CheckInMethod = "manual"
	CheckInAdminOverride CheckInMethod = "admin_override"
)

// AssignmentType distinguishes the two volunteer capacity buckets on a shift.
type AssignmentType string

const (
	TypeScout  AssignmentType = "scout"
	TypeParent AssignmentType = "parent"
)

// Valid reports whether the value is one of the known assignment types.
func (t AssignmentType) Valid() bool {
	return t == TypeScout || t == TypeParent
}

// AccountStatus is the state of a volunteer's user account.
type AccountStatus string

const (
	AccountPending     AccountStatus = "pending"
	AccountActive      AccountStatus = "active"
	AccountInactive    AccountStatus = "inactive"
	AccountDeactivated AccountStatus = "deactivated"
)

// CanSignUpForShifts reports whether an account in this state may claim shift slots.
func (s AccountStatus) CanSignUpForShifts() bool {
	return s == AccountActive
}

// SeasonStatus is the lifecycle state of a fundraising season.
type SeasonStatus string

const (
	SeasonDraft     SeasonStatus = "draft"
	SeasonActive    SeasonStatus = "active"
	SeasonCompleted SeasonStatus = "completed"
	SeasonArchived  SeasonStatus = "archived"
)
