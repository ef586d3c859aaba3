package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vitalsync/vitalsync-api/internal/handlers"
)

// NewRouter sets up the API routes. The guard protects the privileged
// mutating endpoints; read endpoints stay open for the dashboard.
func NewRouter(
	alertHandler *handlers.AlertHandler,
	patientHandler *handlers.PatientHandler,
	profileHandler *handlers.ProfileHandler,
	guard func(http.Handler) http.Handler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Patient dashboard reads
	router.HandleFunc("/api/patients", patientHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/patients/{patientID}", patientHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/patients/{patientID}/history", patientHandler.History).Methods(http.MethodGet)
	router.HandleFunc("/api/patients/{patientID}/ecg", patientHandler.ECG).Methods(http.MethodGet)

	// Alerts
	router.HandleFunc("/api/alerts", alertHandler.Live).Methods(http.MethodGet)
	router.HandleFunc("/api/alerts/recent", alertHandler.Recent).Methods(http.MethodGet)
	router.Handle("/api/alerts/dispatch", guard(http.HandlerFunc(alertHandler.Dispatch))).Methods(http.MethodPost)
	router.Handle("/api/alerts/{alertID}/resolve", guard(http.HandlerFunc(alertHandler.Resolve))).Methods(http.MethodPost)

	// Profiles
	router.HandleFunc("/api/profiles/{profileID}", profileHandler.Get).Methods(http.MethodGet)
	router.Handle("/api/profiles/{profileID}/status", guard(http.HandlerFunc(profileHandler.UpdateStatus))).Methods(http.MethodPatch)

	return router
}
