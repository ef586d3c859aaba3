// Package dispatch turns one alert event into persisted state, outbound
// notifications, and an audit trail. A dispatch always runs to completion
// once the alert row is durable: individual channel failures are recorded,
// never fatal.
package dispatch

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/identity"
	"github.com/vitalsync/vitalsync-api/internal/models"
	"github.com/vitalsync/vitalsync-api/internal/notification"
	"github.com/vitalsync/vitalsync-api/internal/repository"
)

// VitalsPayload carries the triggering vitals for rendering, if the caller
// supplied them.
type VitalsPayload struct {
	HeartRate    *float64 `json:"heart_rate,omitempty"`
	SpO2         *float64 `json:"spo2,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MotionStatus string   `json:"motion_status,omitempty"`
}

type Request struct {
	PatientID string          `json:"patient_id"`
	Message   string          `json:"message"`
	Level     models.Severity `json:"level"`
	Vitals    *VitalsPayload  `json:"vitals,omitempty"`
}

type Result struct {
	AlertID   string `json:"alert_id"`
	EmailSent bool   `json:"email_sent"`
	SMSSent   bool   `json:"sms_sent"`
}

// attempt is the outcome of one channel delivery to one recipient. Attempts
// are collected as an explicit list and aggregated afterwards.
type attempt struct {
	outcome models.NotificationOutcome
}

type Service interface {
	Dispatch(ctx context.Context, req Request) (Result, error)
}

type service struct {
	alerts    repository.AlertRepository
	profiles  repository.ProfileRepository
	roles     repository.RoleRepository
	audit     repository.AuditRepository
	directory identity.Directory
	email     notification.EmailSender
	sms       notification.SMSSender
	logger    zerolog.Logger
}

func NewService(
	alerts repository.AlertRepository,
	profiles repository.ProfileRepository,
	roles repository.RoleRepository,
	audit repository.AuditRepository,
	directory identity.Directory,
	email notification.EmailSender,
	sms notification.SMSSender,
	logger zerolog.Logger,
) Service {
	return &service{
		alerts:    alerts,
		profiles:  profiles,
		roles:     roles,
		audit:     audit,
		directory: directory,
		email:     email,
		sms:       sms,
		logger:    logger.With().Str("component", "dispatch").Logger(),
	}
}

// Dispatch runs the full notification pipeline for one alert event. Not
// idempotent: dispatching the same payload twice creates two alert records
// and duplicate notifications.
func (s *service) Dispatch(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	// Durability point: nothing is sent for an alert that was never stored.
	alert, err := s.alerts.Create(ctx, req.PatientID, req.Message, req.Level)
	if err != nil {
		return Result{}, errors.Wrap(err, "persist alert")
	}

	patientName, phoneNumber := s.resolvePatient(ctx, req.PatientID)

	emailAttempts := s.sendEmails(ctx, alert, req, patientName)
	smsAttempt := s.sendSMS(ctx, alert, req, patientName, phoneNumber)

	result := Result{AlertID: alert.ID}
	for _, a := range emailAttempts {
		if a.outcome.Success {
			result.EmailSent = true
		}
	}
	if smsAttempt != nil && smsAttempt.outcome.Success {
		result.SMSSent = true
	}

	if err := s.alerts.SetNotificationFlags(ctx, alert.ID, result.EmailSent, result.SMSSent); err != nil {
		// The notifications already happened; a stale flag is not worth
		// failing the dispatch over.
		s.logger.Warn().Err(err).Str("alert_id", alert.ID).Msg("failed to update alert notification flags")
	}

	return result, nil
}

func validate(req Request) error {
	var missing []string
	if req.PatientID == "" {
		missing = append(missing, "patient_id")
	}
	if req.Message == "" {
		missing = append(missing, "message")
	}
	if req.Level == "" {
		missing = append(missing, "level")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	if req.Level != models.SeverityWarning && req.Level != models.SeverityCritical {
		return &ValidationError{Reason: fmt.Sprintf("level must be %q or %q", models.SeverityWarning, models.SeverityCritical)}
	}
	return nil
}

// resolvePatient loads display details from the profile store. A missing
// profile degrades to a placeholder name with no phone on file.
func (s *service) resolvePatient(ctx context.Context, patientID string) (name, phone string) {
	profile, err := s.profiles.GetByID(ctx, patientID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn().Err(err).Str("patient_id", patientID).Msg("failed to load patient profile")
		}
		return "Unknown Patient", ""
	}
	if profile.FullName == "" {
		return "Unknown Patient", profile.PhoneNumber
	}
	return profile.FullName, profile.PhoneNumber
}

// sendEmails fans out one attempt per resolved admin recipient. A failure for
// one recipient never blocks the others; every attempt lands in the audit
// trail.
func (s *service) sendEmails(ctx context.Context, alert models.AlertEvent, req Request, patientName string) []attempt {
	adminIDs, err := s.roles.ListUserIDs(ctx, "admin")
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to list admin recipients")
		return nil
	}
	if len(adminIDs) == 0 {
		return nil
	}

	if !s.email.Configured() {
		s.logger.Warn().Int("recipients", len(adminIDs)).Msg("email provider not configured, skipping email notifications")
		return nil
	}

	subject := fmt.Sprintf("[VitalSync %s] %s", strings.ToUpper(string(req.Level)), patientName)
	html, err := renderAlertEmail(patientName, req.Message, req.Level, req.Vitals, alert.CreatedAt)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to render alert email")
		return nil
	}

	var attempts []attempt
	for _, adminID := range adminIDs {
		email, err := s.directory.EmailForUser(ctx, adminID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", adminID).Msg("failed to resolve admin email")
			continue
		}

		sendErr := s.email.Send(ctx, []string{email}, subject, html)
		outcome := models.NotificationOutcome{
			Channel:   models.ChannelEmail,
			Recipient: email,
			Success:   sendErr == nil,
		}
		if sendErr != nil {
			outcome.Detail = sendErr.Error()
			s.logger.Warn().Err(sendErr).Str("recipient", email).Str("alert_id", alert.ID).Msg("email send failed")
		}
		attempts = append(attempts, attempt{outcome: outcome})

		s.appendAudit(ctx, req.PatientID, fmt.Sprintf("alert_email_%s", req.Level), map[string]interface{}{
			"admin_email":  email,
			"patient_name": patientName,
			"message":      req.Message,
			"success":      outcome.Success,
			"vitals":       req.Vitals,
		})
	}
	return attempts
}

// sendSMS attempts at most one text message: critical alerts only, and only
// when a phone number is on file. Missing provider credentials are a recorded
// skip, not an error.
func (s *service) sendSMS(ctx context.Context, alert models.AlertEvent, req Request, patientName, phoneNumber string) *attempt {
	if req.Level != models.SeverityCritical || phoneNumber == "" {
		return nil
	}

	outcome := models.NotificationOutcome{
		Channel:   models.ChannelSMS,
		Recipient: phoneNumber,
	}
	if !s.sms.Configured() {
		outcome.Detail = "sms_provider_not_configured"
	} else {
		body := fmt.Sprintf("[VitalSync CRITICAL] %s: %s", patientName, req.Message)
		if err := s.sms.Send(ctx, phoneNumber, body); err != nil {
			outcome.Detail = err.Error()
			s.logger.Warn().Err(err).Str("alert_id", alert.ID).Msg("sms send failed")
		} else {
			outcome.Success = true
		}
	}

	status := "sent"
	if !outcome.Success {
		status = "failed"
		if outcome.Detail == "sms_provider_not_configured" {
			status = outcome.Detail
		}
	}
	s.appendAudit(ctx, req.PatientID, fmt.Sprintf("alert_sms_%s", req.Level), map[string]interface{}{
		"phone_number": phoneNumber,
		"patient_name": patientName,
		"sms_status":   status,
	})
	return &attempt{outcome: outcome}
}

// appendAudit is log-and-continue: a failed audit write downstream of the
// alert insert still counts the notification as attempted.
func (s *service) appendAudit(ctx context.Context, userID, action string, details map[string]interface{}) {
	if err := s.audit.Append(ctx, userID, action, details); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to append audit entry")
	}
}
