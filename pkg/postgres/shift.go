package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/troop900/treelot/pkg/core/model"
)

const shiftColumns = `id, shift_date, start_time, end_time,
	required_scouts, required_parents, current_scouts, current_parents,
	location, label, notes, status, season_id, template_id, created_at`

func scanShift(row pgx.Row) (*model.Shift, error) {
	var s model.Shift
	var status string
	var templateID *string
	if err := row.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime,
		&s.RequiredScouts, &s.RequiredParents, &s.CurrentScouts, &s.CurrentParents,
		&s.Location, &s.Label, &s.Notes, &status, &s.SeasonID, &templateID, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Status = model.ShiftStatus(status)
	if templateID != nil {
		s.TemplateID = *templateID
	}
	return &s, nil
}

// GetShift retrieves a single shift by id
func (d *DB) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shift WHERE id = $1`, id)
	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to query shift: %w", err)
	}
	return shift, nil
}

// GetShiftsForSeason retrieves all shifts belonging to a season
func (d *DB) GetShiftsForSeason(ctx context.Context, seasonID string) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+shiftColumns+` FROM shift WHERE season_id = $1 ORDER BY shift_date, start_time
	`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

// GetShiftsForDateRange retrieves all shifts with a date inside [start, end]
func (d *DB) GetShiftsForDateRange(ctx context.Context, start, end time.Time) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+shiftColumns+` FROM shift
		WHERE shift_date >= $1 AND shift_date <= $2
		ORDER BY shift_date, start_time
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

func collectShifts(rows pgx.Rows) ([]model.Shift, error) {
	var shifts []model.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return shifts, nil
}

// CreateShift inserts a single shift record
func (d *DB) CreateShift(ctx context.Context, shift *model.Shift) error {
	_, err := d.pool.Exec(ctx, insertShiftSQL, shiftArgs(shift)...)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// CreateShifts inserts a batch of generated shifts in one transaction, so a
// generation run lands in full or not at all.
func (d *DB) CreateShifts(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	return d.inTx(ctx, func(tx pgx.Tx) error {
		for i := range shifts {
			if _, err := tx.Exec(ctx, insertShiftSQL, shiftArgs(&shifts[i])...); err != nil {
				return fmt.Errorf("failed to insert shift: %w", err)
			}
		}
		return nil
	})
}

const insertShiftSQL = `
	INSERT INTO shift (id, shift_date, start_time, end_time,
		required_scouts, required_parents, current_scouts, current_parents,
		location, label, notes, status, season_id, template_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

func shiftArgs(s *model.Shift) []any {
	var templateID *string
	if s.TemplateID != "" {
		templateID = &s.TemplateID
	}
	return []any{s.ID, s.Date, s.StartTime, s.EndTime,
		s.RequiredScouts, s.RequiredParents, s.CurrentScouts, s.CurrentParents,
		s.Location, s.Label, s.Notes, string(s.Status), s.SeasonID, templateID, s.CreatedAt}
}

// UpdateShiftStatus sets the status of a shift
func (d *DB) UpdateShiftStatus(ctx context.Context, id string, status model.ShiftStatus) error {
	tag, err := d.pool.Exec(ctx, `UPDATE shift SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update shift status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShiftNotFound
	}
	return nil
}
