package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/troop900/treelot/pkg/core/model"
)

const attendanceColumns = `id, assignment_id, shift_id, user_id,
	check_in_time, check_out_time, check_in_method,
	check_in_latitude, check_in_longitude, hours_worked, status, notes`

func scanAttendance(row pgx.Row) (*model.AttendanceRecord, error) {
	var r model.AttendanceRecord
	var method, status string
	var lat, lng *float64
	if err := row.Scan(&r.ID, &r.AssignmentID, &r.ShiftID, &r.UserID,
		&r.CheckInTime, &r.CheckOutTime, &method,
		&lat, &lng, &r.HoursWorked, &status, &r.Notes); err != nil {
		return nil, err
	}
	r.CheckInMethod = model.CheckInMethod(method)
	r.Status = model.AttendanceStatus(status)
	if lat != nil && lng != nil {
		r.CheckInLocation = &model.GeoLocation{Latitude: *lat, Longitude: *lng}
	}
	return &r, nil
}

// GetAttendanceRecord retrieves a single attendance record by id
func (d *DB) GetAttendanceRecord(ctx context.Context, id string) (*model.AttendanceRecord, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance_record WHERE id = $1`, id)
	record, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to query attendance record: %w", err)
	}
	return record, nil
}

// GetAttendanceByAssignment retrieves the attendance record opened for an
// assignment, or ErrAttendanceNotFound when none exists yet
func (d *DB) GetAttendanceByAssignment(ctx context.Context, assignmentID string) (*model.AttendanceRecord, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance_record WHERE assignment_id = $1`, assignmentID)
	record, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to query attendance record: %w", err)
	}
	return record, nil
}

// GetAttendanceForShift retrieves all attendance records on a shift
func (d *DB) GetAttendanceForShift(ctx context.Context, shiftID string) ([]model.AttendanceRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+attendanceColumns+` FROM attendance_record WHERE shift_id = $1
	`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		r, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance records: %w", err)
	}
	return records, nil
}

func attendanceArgs(r *model.AttendanceRecord) []any {
	var lat, lng *float64
	if r.CheckInLocation != nil {
		lat = &r.CheckInLocation.Latitude
		lng = &r.CheckInLocation.Longitude
	}
	return []any{r.ID, r.AssignmentID, r.ShiftID, r.UserID,
		r.CheckInTime, r.CheckOutTime, string(r.CheckInMethod),
		lat, lng, r.HoursWorked, string(r.Status), r.Notes}
}

func insertAttendanceRecord(ctx context.Context, tx pgx.Tx, r *model.AttendanceRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO attendance_record (id, assignment_id, shift_id, user_id,
			check_in_time, check_out_time, check_in_method,
			check_in_latitude, check_in_longitude, hours_worked, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, attendanceArgs(r)...)
	if err != nil {
		return fmt.Errorf("failed to insert attendance record: %w", err)
	}
	return nil
}

// CreateAttendanceRecord inserts an attendance record
func (d *DB) CreateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error {
	return d.inTx(ctx, func(tx pgx.Tx) error {
		return insertAttendanceRecord(ctx, tx, record)
	})
}

// UpdateAttendanceRecord overwrites the mutable fields of an attendance record
func (d *DB) UpdateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error {
	var lat, lng *float64
	if record.CheckInLocation != nil {
		lat = &record.CheckInLocation.Latitude
		lng = &record.CheckInLocation.Longitude
	}
	tag, err := d.pool.Exec(ctx, `
		UPDATE attendance_record
		SET check_in_time = $2, check_out_time = $3, check_in_method = $4,
		    check_in_latitude = $5, check_in_longitude = $6,
		    hours_worked = $7, status = $8, notes = $9
		WHERE id = $1
	`, record.ID, record.CheckInTime, record.CheckOutTime, string(record.CheckInMethod),
		lat, lng, record.HoursWorked, string(record.Status), record.Notes)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAttendanceNotFound
	}
	return nil
}
