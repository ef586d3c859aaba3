package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/alerts"
	"github.com/vitalsync/vitalsync-api/internal/dispatch"
	"github.com/vitalsync/vitalsync-api/internal/monitor"
	"github.com/vitalsync/vitalsync-api/internal/repository"
)

type AlertHandler struct {
	dispatcher dispatch.Service
	alertRepo  repository.AlertRepository
	deriver    *alerts.Deriver
	monitor    *monitor.Monitor
	logger     zerolog.Logger
}

func NewAlertHandler(
	dispatcher dispatch.Service,
	alertRepo repository.AlertRepository,
	deriver *alerts.Deriver,
	mon *monitor.Monitor,
	logger zerolog.Logger,
) *AlertHandler {
	return &AlertHandler{
		dispatcher: dispatcher,
		alertRepo:  alertRepo,
		deriver:    deriver,
		monitor:    mon,
		logger:     logger.With().Str("handler", "alert").Logger(),
	}
}

// Dispatch accepts one alert event and runs the notification pipeline.
func (h *AlertHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatch.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), req)
	if err != nil {
		if dispatch.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("patient_id", req.PatientID).Msg("dispatch failed")
		writeError(w, http.StatusInternalServerError, "Failed to dispatch alert")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"alert_id":   result.AlertID,
		"email_sent": result.EmailSent,
		"sms_sent":   result.SMSSent,
	})
}

// Live derives the current alert list from the monitor's latest readings.
func (h *AlertHandler) Live(w http.ResponseWriter, r *http.Request) {
	states := h.monitor.Snapshot()
	patients := make([]alerts.PatientVitals, 0, len(states))
	for _, s := range states {
		patients = append(patients, alerts.PatientVitals{
			PatientID: s.Patient.ID,
			Name:      s.Patient.Name,
			Room:      s.Patient.Room,
			Reading:   s.Reading,
		})
	}

	events := h.deriver.Derive(patients)
	writeJSON(w, http.StatusOK, map[string]interface{}{"alerts": events})
}

// Recent lists persisted alerts, newest first.
func (h *AlertHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 25
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	list, err := h.alertRepo.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list alerts")
		writeError(w, http.StatusInternalServerError, "Failed to list alerts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"alerts": list})
}

// Resolve flips an alert's resolution state.
func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	alertID := strings.TrimSpace(mux.Vars(r)["alertID"])
	if alertID == "" {
		writeError(w, http.StatusBadRequest, "Alert ID is required")
		return
	}

	var payload struct {
		Resolved *bool `json:"resolved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	resolved := true
	if payload.Resolved != nil {
		resolved = *payload.Resolved
	}

	alert, err := h.alertRepo.SetResolved(r.Context(), alertID, resolved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Alert not found")
			return
		}
		h.logger.Error().Err(err).Str("alert_id", alertID).Msg("failed to resolve alert")
		writeError(w, http.StatusInternalServerError, "Failed to update alert")
		return
	}
	writeJSON(w, http.StatusOK, alert)
}
