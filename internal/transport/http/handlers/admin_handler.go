package handlers

import (
	"net/http"

	"github.com/ivanmarin/orbit/internal/logger"
	"github.com/ivanmarin/orbit/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
	log          *logger.Logger
}

func NewAdminHandler(adminService *service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, log: log}
}

func (h *AdminHandler) ListUserSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.adminService.ListUserSummaries(r.Context())
	if err != nil {
		h.log.Error("admin list users failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		h.log.Error("admin list all users failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) ListFollows(w http.ResponseWriter, r *http.Request) {
	follows, err := h.adminService.ListFollows(r.Context())
	if err != nil {
		h.log.Error("admin list follows failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, follows)
}
