package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/troop900/treelot/pkg/core/model"
)

// GetUser retrieves a single user by id
func (d *DB) GetUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	var status, role string
	err := d.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, account_status, role
		FROM app_user WHERE id = $1
	`, id).Scan(&u.ID, &u.FirstName, &u.LastName, &status, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	u.AccountStatus = model.AccountStatus(status)
	u.Role = model.UserRole(role)
	return &u, nil
}
