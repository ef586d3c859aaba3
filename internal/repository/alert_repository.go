package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/vitalsync/vitalsync-api/internal/models"
)

type AlertRepository interface {
	Create(ctx context.Context, patientID, message string, level models.Severity) (models.AlertEvent, error)
	GetByID(ctx context.Context, id string) (models.AlertEvent, error)
	ListRecent(ctx context.Context, limit int) ([]models.AlertEvent, error)
	SetResolved(ctx context.Context, id string, resolved bool) (models.AlertEvent, error)
	SetNotificationFlags(ctx context.Context, id string, emailSent, smsSent bool) error
}

type alertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) AlertRepository {
	return &alertRepository{db: db}
}

const alertColumns = "id, patient_id, message, level, resolved, notified_email, notified_sms, created_at"

func (r *alertRepository) Create(ctx context.Context, patientID, message string, level models.Severity) (models.AlertEvent, error) {
	const query = `
		INSERT INTO alerts (patient_id, message, level)
		VALUES ($1, $2, $3)
		RETURNING ` + alertColumns

	row := r.db.QueryRowContext(ctx, query, patientID, message, level)
	alert, err := scanAlert(row)
	if err != nil {
		return models.AlertEvent{}, errors.Wrap(err, "insert alert")
	}
	return alert, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id string) (models.AlertEvent, error) {
	const query = `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	return scanAlert(r.db.QueryRowContext(ctx, query, id))
}

func (r *alertRepository) ListRecent(ctx context.Context, limit int) ([]models.AlertEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	const query = `
		SELECT ` + alertColumns + `
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list alerts")
	}
	defer rows.Close()

	var alerts []models.AlertEvent
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) SetResolved(ctx context.Context, id string, resolved bool) (models.AlertEvent, error) {
	const query = `
		UPDATE alerts
		SET resolved = $2
		WHERE id = $1
		RETURNING ` + alertColumns

	return scanAlert(r.db.QueryRowContext(ctx, query, id, resolved))
}

func (r *alertRepository) SetNotificationFlags(ctx context.Context, id string, emailSent, smsSent bool) error {
	const query = `
		UPDATE alerts
		SET notified_email = $2, notified_sms = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, emailSent, smsSent)
	if err != nil {
		return errors.Wrap(err, "update alert notification flags")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanAlert(scanner interface {
	Scan(dest ...interface{}) error
}) (models.AlertEvent, error) {
	var alert models.AlertEvent
	if err := scanner.Scan(
		&alert.ID,
		&alert.PatientID,
		&alert.Message,
		&alert.Level,
		&alert.Resolved,
		&alert.NotifiedEmail,
		&alert.NotifiedSMS,
		&alert.CreatedAt,
	); err != nil {
		return models.AlertEvent{}, err
	}

	switch alert.Level {
	case models.SeverityCritical:
		alert.Type = models.AlertTypeCritical
	case models.SeverityWarning:
		alert.Type = models.AlertTypeWarning
	}
	return alert, nil
}
