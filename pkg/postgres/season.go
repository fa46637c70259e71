package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/troop900/treelot/pkg/core/model"
)

// GetSeason retrieves a single season by id
func (d *DB) GetSeason(ctx context.Context, id string) (*model.Season, error) {
	var s model.Season
	var status string
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, year, start_date, end_date, status, description, created_at, updated_at
		FROM season WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Year, &s.StartDate, &s.EndDate, &status, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to query season: %w", err)
	}
	s.Status = model.SeasonStatus(status)
	return &s, nil
}

// CreateSeason inserts a season
func (d *DB) CreateSeason(ctx context.Context, season *model.Season) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO season (id, name, year, start_date, end_date, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, season.ID, season.Name, season.Year, season.StartDate, season.EndDate,
		string(season.Status), season.Description, season.CreatedAt, season.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert season: %w", err)
	}
	return nil
}

// PublishDraftShiftsForSeason publishes every draft shift of the season and
// activates the season when needed, in one transaction. With no draft shifts
// the transaction rolls back and nothing changes, so a publish can never
// activate an empty season.
func (d *DB) PublishDraftShiftsForSeason(ctx context.Context, seasonID string) (int, bool, error) {
	published := 0
	activated := false
	err := d.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE shift SET status = 'published' WHERE season_id = $1 AND status = 'draft'
		`, seasonID)
		if err != nil {
			return fmt.Errorf("failed to publish draft shifts: %w", err)
		}
		published = int(tag.RowsAffected())
		if published == 0 {
			return model.ErrNoDraftShifts
		}

		seasonTag, err := tx.Exec(ctx, `
			UPDATE season SET status = 'active', updated_at = NOW() WHERE id = $1 AND status <> 'active'
		`, seasonID)
		if err != nil {
			return fmt.Errorf("failed to activate season: %w", err)
		}
		activated = seasonTag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return published, activated, nil
}
