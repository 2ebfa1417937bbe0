package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/logger"
	"github.com/ivanmarin/orbit/internal/service"
	"github.com/ivanmarin/orbit/internal/transport/http/middleware"
	"github.com/ivanmarin/orbit/pkg/validator"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	log            *logger.Logger
}

func NewProfileHandler(profileService *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, log: log}
}

// GetOwn returns the caller's full profile with counts and recent activity.
func (h *ProfileHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	view, err := h.profileService.Get(r.Context(), user.ID, user.ID)
	if err != nil {
		h.log.Error("get own profile failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var patch service.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if patch.ThemePref != nil && !validator.ValidateThemePref(*patch.ThemePref) {
		writeMessage(w, http.StatusBadRequest, "Unknown theme preference")
		return
	}

	view, err := h.profileService.Update(r.Context(), user.ID, patch)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeMessage(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
			return
		}
		h.log.Error("update profile failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"profile": view,
	})
}

// Get returns another user's profile, subject to the privacy flag.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	view, err := h.profileService.Get(r.Context(), user.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrPrivateProfile):
			writeMessage(w, http.StatusForbidden, "This profile is private.")
		default:
			h.log.Error("get profile failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Activity returns the caller's recent activity entries, newest first.
func (h *ProfileHandler) Activity(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	entries, err := h.profileService.ListActivity(r.Context(), user.ID)
	if err != nil {
		h.log.Error("list activity failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
