package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/monitor"
	"github.com/vitalsync/vitalsync-api/internal/simulator"
)

const maxWaveformPoints = 5000

type PatientHandler struct {
	monitor *monitor.Monitor
	logger  zerolog.Logger
}

func NewPatientHandler(mon *monitor.Monitor, logger zerolog.Logger) *PatientHandler {
	return &PatientHandler{
		monitor: mon,
		logger:  logger.With().Str("handler", "patient").Logger(),
	}
}

// List returns every monitored patient with their latest vitals and status.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"patients": h.monitor.Snapshot(),
	})
}

// Get returns one patient's latest state.
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID := strings.TrimSpace(mux.Vars(r)["patientID"])

	state, err := h.monitor.PatientSnapshot(patientID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Patient not found")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// History returns an hourly vitals trend for charting.
func (h *PatientHandler) History(w http.ResponseWriter, r *http.Request) {
	patientID := strings.TrimSpace(mux.Vars(r)["patientID"])
	if _, err := h.monitor.PatientSnapshot(patientID); err != nil {
		writeError(w, http.StatusNotFound, "Patient not found")
		return
	}

	hours := 24
	if raw := strings.TrimSpace(r.URL.Query().Get("hours")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 24*7 {
			writeError(w, http.StatusBadRequest, "hours must be between 0 and 168")
			return
		}
		hours = parsed
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": h.monitor.History(hours),
	})
}

// ECG returns a fresh waveform window for display.
func (h *PatientHandler) ECG(w http.ResponseWriter, r *http.Request) {
	patientID := strings.TrimSpace(mux.Vars(r)["patientID"])
	if _, err := h.monitor.PatientSnapshot(patientID); err != nil {
		writeError(w, http.StatusNotFound, "Patient not found")
		return
	}

	points := simulator.ECGWindowSize
	if raw := strings.TrimSpace(r.URL.Query().Get("points")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > maxWaveformPoints {
			writeError(w, http.StatusBadRequest, "points must be between 0 and 5000")
			return
		}
		points = parsed
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ecg_data": h.monitor.Waveform(points),
	})
}
