package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/vitalsync/vitalsync-api/internal/models"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (models.Profile, error)
	UpdateStatus(ctx context.Context, id string, status models.ProfileStatus) (models.Profile, error)
	ListByStatus(ctx context.Context, status models.ProfileStatus) ([]models.Profile, error)
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (models.Profile, error) {
	const query = `SELECT id, full_name, phone_number, status FROM profiles WHERE id = $1`

	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) UpdateStatus(ctx context.Context, id string, status models.ProfileStatus) (models.Profile, error) {
	const query = `
		UPDATE profiles
		SET status = $2
		WHERE id = $1
		RETURNING id, full_name, phone_number, status
	`

	return scanProfile(r.db.QueryRowContext(ctx, query, id, status))
}

func (r *profileRepository) ListByStatus(ctx context.Context, status models.ProfileStatus) ([]models.Profile, error) {
	const query = `SELECT id, full_name, phone_number, status FROM profiles WHERE status = $1 ORDER BY full_name`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, errors.Wrap(err, "list profiles")
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func scanProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Profile, error) {
	var (
		profile models.Profile
		phone   sql.NullString
	)
	if err := scanner.Scan(&profile.ID, &profile.FullName, &phone, &profile.Status); err != nil {
		return models.Profile{}, err
	}
	if phone.Valid {
		profile.PhoneNumber = phone.String
	}
	return profile, nil
}
