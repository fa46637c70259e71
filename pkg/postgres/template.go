package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/troop900/treelot/pkg/core/model"
)

const templateColumns = `id, name, start_time, end_time,
	required_scouts, required_parents, location, label, notes, is_active,
	created_at, updated_at`

func scanTemplate(row pgx.Row) (*model.ShiftTemplate, error) {
	var t model.ShiftTemplate
	if err := row.Scan(&t.ID, &t.Name, &t.StartTime, &t.EndTime,
		&t.RequiredScouts, &t.RequiredParents, &t.Location, &t.Label, &t.Notes, &t.IsActive,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTemplate retrieves a single shift template by id
func (d *DB) GetTemplate(ctx context.Context, id string) (*model.ShiftTemplate, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM shift_template WHERE id = $1`, id)
	template, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to query shift template: %w", err)
	}
	return template, nil
}

// ListTemplates retrieves all shift templates
func (d *DB) ListTemplates(ctx context.Context) ([]model.ShiftTemplate, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+templateColumns+` FROM shift_template ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []model.ShiftTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift templates: %w", err)
	}
	return templates, nil
}

// CreateTemplate inserts a shift template
func (d *DB) CreateTemplate(ctx context.Context, template *model.ShiftTemplate) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift_template (id, name, start_time, end_time,
			required_scouts, required_parents, location, label, notes, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, template.ID, template.Name, template.StartTime, template.EndTime,
		template.RequiredScouts, template.RequiredParents,
		template.Location, template.Label, template.Notes, template.IsActive,
		template.CreatedAt, template.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert shift template: %w", err)
	}
	return nil
}
