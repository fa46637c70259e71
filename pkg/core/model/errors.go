package model

import "fmt"

// ErrorKind classifies domain errors so callers can decide how to react.
type ErrorKind int

const (
	// KindValidation marks malformed input. Never retried; the caller must fix the request.
	KindValidation ErrorKind = iota
	// KindConflict marks a violated business-rule precondition. Surfaced verbatim, not auto-retried.
	KindConflict
	// KindNotFound marks an unknown entity id.
	KindNotFound
	// KindUnauthorized marks a role-gated operation attempted without permission.
	KindUnauthorized
	// KindTransient marks a store or network failure. Retry policy belongs to the caller.
	KindTransient
)

// Error is a domain error with a stable code for transport layers to map on.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any error carrying the same code, so sentinel comparisons via
// errors.Is survive wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func conflict(code, msg string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}

func notFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

var (
	ErrShiftNotFound      = notFound("shift_not_found", "shift not found")
	ErrAssignmentNotFound = notFound("assignment_not_found", "assignment not found")
	ErrAttendanceNotFound = notFound("attendance_record_not_found", "attendance record not found")
	ErrTemplateNotFound   = notFound("template_not_found", "template not found")
	ErrSeasonNotFound     = notFound("season_not_found", "season not found")
	ErrUserNotFound       = notFound("user_not_found", "user not found")

	ErrShiftFull              = conflict("shift_full", "this shift is already full")
	ErrShiftNotPublished      = conflict("shift_not_published", "this shift is not available for signup")
	ErrShiftInPast            = conflict("shift_in_past", "this shift is in the past")
	ErrShiftNotStarted        = conflict("shift_not_started", "this shift has not started yet")
	ErrUserAccountInactive    = conflict("user_account_inactive", "this account is not permitted to sign up")
	ErrAlreadyAssigned        = conflict("already_assigned_to_shift", "volunteer is already signed up for this shift")
	ErrAssignmentNotActive    = conflict("assignment_not_active", "this assignment is not active")
	ErrCannotCancel           = conflict("cannot_cancel_assignment", "this assignment can no longer be cancelled")
	ErrAlreadyCheckedIn       = conflict("already_checked_in", "volunteer is already checked in")
	ErrAlreadyCheckedOut      = conflict("already_checked_out", "volunteer has already checked out")
	ErrNotCheckedIn           = conflict("not_checked_in", "volunteer must check in before checking out")
	ErrNoDraftShifts          = conflict("no_draft_shifts", "season has no draft shifts to publish")
	ErrInvalidShiftTransition = conflict("invalid_shift_transition", "shift status transition not permitted")

	ErrUnauthorized = &Error{Kind: KindUnauthorized, Code: "unauthorized", Message: "not permitted to perform this action"}
)

// Invalid builds a validation error with a formatted message.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: "invalid_input", Message: fmt.Sprintf(format, args...)}
}
