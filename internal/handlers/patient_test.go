package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalsync/vitalsync-api/internal/models"
	"github.com/vitalsync/vitalsync-api/internal/monitor"
	"github.com/vitalsync/vitalsync-api/internal/simulator"
	"github.com/vitalsync/vitalsync-api/internal/vitals"
)

func newPatientRouter() *mux.Router {
	gen := simulator.New(simulator.WithSeed(7))
	mon := monitor.New(gen, vitals.DefaultThresholds(), time.Hour, zerolog.Nop())
	handler := NewPatientHandler(mon, zerolog.Nop())

	router := mux.NewRouter()
	router.HandleFunc("/api/patients", handler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/patients/{patientID}", handler.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/patients/{patientID}/history", handler.History).Methods(http.MethodGet)
	router.HandleFunc("/api/patients/{patientID}/ecg", handler.ECG).Methods(http.MethodGet)
	return router
}

func TestListPatientsEndpoint(t *testing.T) {
	router := newPatientRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Patients []monitor.PatientState `json:"patients"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Patients, 8)
	for _, p := range resp.Patients {
		assert.NotEmpty(t, p.Patient.ID)
		assert.NotEqual(t, models.Severity(""), p.Status)
	}
}

func TestGetPatientEndpoint(t *testing.T) {
	router := newPatientRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/patients/P-003", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var state monitor.PatientState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "P-003", state.Patient.ID)
}

func TestGetPatientEndpointNotFound(t *testing.T) {
	router := newPatientRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/patients/P-999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatientHistoryEndpoint(t *testing.T) {
	router := newPatientRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/patients/P-001/history?hours=6", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		History []models.TrendPoint `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.History, 7)
}

func TestPatientHistoryEndpointRejectsBadHours(t *testing.T) {
	router := newPatientRouter()

	for _, raw := range []string{"-1", "200", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/patients/P-001/history?hours="+raw, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "hours=%s", raw)
	}
}

func TestPatientECGEndpoint(t *testing.T) {
	router := newPatientRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/patients/P-001/ecg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ECGData []float64 `json:"ecg_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.ECGData, simulator.ECGWindowSize)
}

func TestPatientECGEndpointCustomLength(t *testing.T) {
	router := newPatientRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/patients/P-001/ecg?points=50", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ECGData []float64 `json:"ecg_data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.ECGData, 50)
}

func TestPatientECGEndpointRejectsOversizedWindow(t *testing.T) {
	router := newPatientRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/patients/P-001/ecg?points=5001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
