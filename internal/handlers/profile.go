package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/models"
	"github.com/vitalsync/vitalsync-api/internal/repository"
)

type ProfileHandler struct {
	profileRepo repository.ProfileRepository
	logger      zerolog.Logger
}

func NewProfileHandler(profileRepo repository.ProfileRepository, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileRepo: profileRepo,
		logger:      logger.With().Str("handler", "profile").Logger(),
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID := strings.TrimSpace(mux.Vars(r)["profileID"])

	profile, err := h.profileRepo.GetByID(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		h.logger.Error().Err(err).Str("profile_id", profileID).Msg("failed to load profile")
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateStatus moves a profile through the account approval workflow.
func (h *ProfileHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	profileID := strings.TrimSpace(mux.Vars(r)["profileID"])

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := models.ProfileStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	if !models.IsValidProfileStatus(status) {
		writeError(w, http.StatusBadRequest, "status must be pending, approved, or rejected")
		return
	}

	profile, err := h.profileRepo.UpdateStatus(r.Context(), profileID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		h.logger.Error().Err(err).Str("profile_id", profileID).Msg("failed to update profile status")
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
