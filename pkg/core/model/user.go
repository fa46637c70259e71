package model

// UserRole gates administrative operations such as attendance corrections.
type UserRole string

const (
	RoleScout     UserRole = "scout"
	RoleParent    UserRole = "parent"
	RoleCommittee UserRole = "committee"
	RoleAdmin     UserRole = "admin"
)

// IsLeadership reports whether the role may perform committee-level actions.
func (r UserRole) IsLeadership() bool {
	return r == RoleCommittee || r == RoleAdmin
}

// User is the slice of a volunteer identity the scheduling engine needs:
// whether the account may sign up and whether it holds a leadership role.
// Identity issuance and authentication live outside this engine.
type User struct {
	ID            string
	FirstName     string
	LastName      string
	AccountStatus AccountStatus
	Role          UserRole
}

// FullName joins the user's first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CanSignUpForShifts reports whether the account may claim shift slots.
func (u *User) CanSignUpForShifts() bool {
	return u.AccountStatus.CanSignUpForShifts()
}
