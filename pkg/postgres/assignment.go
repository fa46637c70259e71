package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/troop900/treelot/pkg/core/model"
)

const assignmentColumns = `id, shift_id, user_id, type, status, notes, assigned_at, assigned_by`

func scanAssignment(row pgx.Row) (*model.Assignment, error) {
	var a model.Assignment
	var typ, status string
	if err := row.Scan(&a.ID, &a.ShiftID, &a.UserID, &typ, &status, &a.Notes, &a.AssignedAt, &a.AssignedBy); err != nil {
		return nil, err
	}
	a.Type = model.AssignmentType(typ)
	a.Status = model.AssignmentStatus(status)
	return &a, nil
}

// GetAssignment retrieves a single assignment by id
func (d *DB) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignment WHERE id = $1`, id)
	assignment, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}
	return assignment, nil
}

// GetAssignmentsForShift retrieves all assignments on a shift
func (d *DB) GetAssignmentsForShift(ctx context.Context, shiftID string) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+` FROM assignment WHERE shift_id = $1 ORDER BY assigned_at
	`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// GetAssignmentsForUser retrieves all assignments held by a user
func (d *DB) GetAssignmentsForUser(ctx context.Context, userID string) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+` FROM assignment WHERE user_id = $1 ORDER BY assigned_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func collectAssignments(rows pgx.Rows) ([]model.Assignment, error) {
	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}

const insertAssignmentSQL = `
	INSERT INTO assignment (id, shift_id, user_id, type, status, notes, assigned_at, assigned_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func insertAssignment(ctx context.Context, tx pgx.Tx, a *model.Assignment) error {
	_, err := tx.Exec(ctx, insertAssignmentSQL,
		a.ID, a.ShiftID, a.UserID, string(a.Type), string(a.Status), a.Notes, a.AssignedAt, a.AssignedBy)
	if err != nil {
		// 23505 is the partial unique index on active (shift, user) pairs.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrAlreadyAssigned
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

func counterColumns(t model.AssignmentType) (current, required string) {
	if t == model.TypeScout {
		return "current_scouts", "required_scouts"
	}
	return "current_parents", "required_parents"
}

// CreateAssignmentClaimingSlot inserts the assignment and takes one slot of
// the shift's counter for its type. The increment only applies while
// current < required, so when a concurrent signup has taken the last slot the
// update matches no row and the whole transaction rolls back with ErrShiftFull.
func (d *DB) CreateAssignmentClaimingSlot(ctx context.Context, assignment *model.Assignment) error {
	current, required := counterColumns(assignment.Type)
	return d.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`
			UPDATE shift SET %[1]s = %[1]s + 1
			WHERE id = $1 AND %[1]s < %[2]s
		`, current, required), assignment.ShiftID)
		if err != nil {
			return fmt.Errorf("failed to claim shift slot: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrShiftFull
		}
		return insertAssignment(ctx, tx, assignment)
	})
}

// CreateWalkInAssignment inserts a confirmed assignment together with its
// opened attendance record. The counter increment is uncapped: walk-ins may
// push a shift past its requirement. Exclusivity still applies through the
// partial unique index.
func (d *DB) CreateWalkInAssignment(ctx context.Context, assignment *model.Assignment, record *model.AttendanceRecord) error {
	current, _ := counterColumns(assignment.Type)
	return d.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`
			UPDATE shift SET %[1]s = %[1]s + 1 WHERE id = $1
		`, current), assignment.ShiftID)
		if err != nil {
			return fmt.Errorf("failed to increment shift counter: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrShiftNotFound
		}
		if err := insertAssignment(ctx, tx, assignment); err != nil {
			return err
		}
		return insertAttendanceRecord(ctx, tx, record)
	})
}

// CancelAssignmentReleasingSlot marks the assignment cancelled and gives the
// slot back. The status check and the write happen in one statement so a
// double cancel can never decrement twice.
func (d *DB) CancelAssignmentReleasingSlot(ctx context.Context, assignmentID, reason string) error {
	return d.inTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE assignment
			SET status = 'cancelled',
			    notes = CASE WHEN $2 = '' THEN notes ELSE $2 END
			WHERE id = $1 AND status IN ('pending', 'confirmed')
			RETURNING shift_id, type
		`, assignmentID, reason)

		var shiftID, typ string
		if err := row.Scan(&shiftID, &typ); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return cancelFailureReason(ctx, tx, assignmentID)
			}
			return fmt.Errorf("failed to cancel assignment: %w", err)
		}

		current, _ := counterColumns(model.AssignmentType(typ))
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			UPDATE shift SET %[1]s = GREATEST(%[1]s - 1, 0) WHERE id = $1
		`, current), shiftID)
		if err != nil {
			return fmt.Errorf("failed to release shift slot: %w", err)
		}
		return nil
	})
}

// cancelFailureReason distinguishes a missing assignment from an inactive one.
func cancelFailureReason(ctx context.Context, tx pgx.Tx, assignmentID string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM assignment WHERE id = $1`, assignmentID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrAssignmentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query assignment: %w", err)
	}
	return model.ErrAssignmentNotActive
}
