package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type RoleRepository interface {
	ListUserIDs(ctx context.Context, role string) ([]string, error)
}

type roleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) ListUserIDs(ctx context.Context, role string) ([]string, error) {
	const query = `SELECT user_id FROM user_roles WHERE role = $1`

	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, errors.Wrap(err, "list user roles")
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return userIDs, nil
}
