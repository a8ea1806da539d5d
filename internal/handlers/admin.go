package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pagecraft/internal/middleware"
	"pagecraft/internal/models"
)

// Admin handles user management. Routes are mounted behind RequireAdmin.
type Admin struct {
	admin AdminService
}

// NewAdmin creates an Admin handler group.
func NewAdmin(admin AdminService) *Admin {
	return &Admin{admin: admin}
}

type roleRequest struct {
	Role string `json:"role"`
}

// ListUsers handles GET /api/admin/users.
func (h *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// SetRole handles PUT /api/admin/users/{id}/role.
func (h *Admin) SetRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := middleware.UserFromCtx(r.Context())
	u, err := h.admin.SetRole(context.WithoutCancel(r.Context()), caller, chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user role changed", "user_id", u.ID, "role", u.Role, "by", caller.ID)
	writeJSON(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller := middleware.UserFromCtx(r.Context())

	id, err := h.admin.DeleteUser(context.WithoutCancel(r.Context()), caller, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user deleted", "user_id", id, "by", caller.ID)
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}
