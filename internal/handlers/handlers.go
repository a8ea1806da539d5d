// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the PageCraft API.
// Handlers are grouped by resource (users, content, stats, admin) and
// receive the services they call through the handler struct. They decode
// requests, call one service method and translate the outcome to JSON.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"pagecraft/internal/middleware"
	"pagecraft/internal/models"
	"pagecraft/internal/service"
)

// maxBodyBytes caps JSON request bodies. Editor markup can be large, so
// this is well above what any other endpoint needs.
const maxBodyBytes = 5 << 20

// msgInvalidBody is returned when a request body is not valid JSON.
const msgInvalidBody = "Invalid request body"

// AccountService is the subset of service.Accounts used by the handlers.
type AccountService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// ContentService is the subset of service.Content used by the handlers.
type ContentService interface {
	List(ctx context.Context, caller *models.User, mine bool) ([]models.Content, error)
	Get(ctx context.Context, id string) (*models.Content, error)
	Create(ctx context.Context, caller *models.User, in service.ContentInput) (*models.Content, error)
	Update(ctx context.Context, caller *models.User, id string, in service.ContentInput) (*models.Content, error)
	Delete(ctx context.Context, caller *models.User, id string) (uuid.UUID, error)
}

// StatsService is the subset of service.Stats used by the handlers.
type StatsService interface {
	Dashboard(ctx context.Context, caller *models.User) (*service.DashboardStats, error)
	Admin(ctx context.Context) (*service.AdminStats, error)
}

// AdminService is the subset of service.Admin used by the handlers.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, caller *models.User, id, role string) (*models.User, error)
	DeleteUser(ctx context.Context, caller *models.User, id string) (string, error)
}

var (
	_ AccountService = (*service.Accounts)(nil)
	_ ContentService = (*service.Content)(nil)
	_ StatsService   = (*service.Stats)(nil)
	_ AdminService   = (*service.Admin)(nil)
)

// idResponse is the body of a successful delete.
type idResponse struct {
	ID string `json:"id"`
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a service error to its HTTP status. Errors that are not
// *service.Error are logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestID(r.Context()),
		)
		middleware.WriteMessage(w, http.StatusInternalServerError, middleware.MsgServerError)
		return
	}
	middleware.WriteMessage(w, statusFor(se.Kind), se.Message)
}

// statusFor returns the HTTP status of an error kind. Forbidden maps to 401
// because existing clients treat any 401 as "not allowed".
func statusFor(k service.Kind) int {
	switch k {
	case service.KindValidation, service.KindConflict:
		return http.StatusBadRequest
	case service.KindUnauthenticated, service.KindForbidden:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a size-limited JSON body into v. On failure it writes a
// 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		middleware.WriteMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
