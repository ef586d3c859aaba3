package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

type AuditRepository interface {
	Append(ctx context.Context, userID, action string, details map[string]interface{}) error
}

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, userID, action string, details map[string]interface{}) error {
	const query = `INSERT INTO audit_log (user_id, action, details) VALUES ($1, $2, $3)`

	var detailsJSON interface{}
	if len(details) > 0 {
		bytes, err := json.Marshal(details)
		if err != nil {
			return errors.Wrap(err, "marshal audit details")
		}
		detailsJSON = bytes
	}

	if _, err := r.db.ExecContext(ctx, query, userID, action, detailsJSON); err != nil {
		return errors.Wrap(err, "insert audit entry")
	}
	return nil
}
