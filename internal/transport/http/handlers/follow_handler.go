package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/logger"
	"github.com/ivanmarin/orbit/internal/service"
	"github.com/ivanmarin/orbit/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
	log           *logger.Logger
}

func NewFollowHandler(followService *service.FollowService, log *logger.Logger) *FollowHandler {
	return &FollowHandler{followService: followService, log: log}
}

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	_, err = h.followService.Follow(r.Context(), user.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			writeMessage(w, http.StatusBadRequest, "You can't follow yourself.")
		case errors.Is(err, service.ErrTargetNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrAlreadyFollowing):
			writeMessage(w, http.StatusBadRequest, "Already following.")
		default:
			h.log.Error("follow failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "User followed.")
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Not following this user.")
		return
	}

	if err := h.followService.Unfollow(r.Context(), user.ID, targetID); err != nil {
		if errors.Is(err, service.ErrNotFollowing) {
			writeMessage(w, http.StatusNotFound, "Not following this user.")
			return
		}
		h.log.Error("unfollow failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeMessage(w, http.StatusOK, "Unfollowed.")
}
