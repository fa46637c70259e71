package model

import "time"

// GeoLocation is an optional coordinate captured at check-in.
type GeoLocation struct {
	Latitude  float64
	Longitude float64
}

// AttendanceRecord tracks check-in/check-out for a single assignment.
// Zero or one record exists per assignment.
type AttendanceRecord struct {
	ID              string
	AssignmentID    string
	ShiftID         string
	UserID          string
	CheckInTime     *time.Time
	CheckOutTime    *time.Time
	CheckInMethod   CheckInMethod
	CheckInLocation *GeoLocation
	HoursWorked     *float64
	Status          AttendanceStatus
	Notes           string
}

// IsCheckedIn reports whether the volunteer is currently on shift.
func (r *AttendanceRecord) IsCheckedIn() bool {
	return r.CheckInTime != nil && r.CheckOutTime == nil
}

// IsComplete reports whether both timestamps have been recorded.
func (r *AttendanceRecord) IsComplete() bool {
	return r.CheckInTime != nil && r.CheckOutTime != nil
}

// HoursBetween converts a check-in/check-out span to hours, clamped at zero.
func HoursBetween(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}
