package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pagecraft/internal/middleware"
	"pagecraft/internal/models"
	"pagecraft/internal/service"
)

// Users handles registration, login and the caller's profile.
type Users struct {
	accounts AccountService
}

// NewUsers creates a Users handler group.
func NewUsers(accounts AccountService) *Users {
	return &Users{accounts: accounts}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is a user profile plus a freshly issued token.
type authResponse struct {
	ID        uuid.UUID   `json:"_id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	Token     string      `json:"token"`
}

func newAuthResponse(res *service.AuthResult) authResponse {
	return authResponse{
		ID:        res.User.ID,
		Username:  res.User.Username,
		Email:     res.User.Email,
		Role:      res.User.Role,
		CreatedAt: res.User.CreatedAt,
		Token:     res.Token,
	}
}

// Register handles POST /api/users.
func (h *Users) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateRegister(req.Username, req.Email, req.Password); msg != "" {
		middleware.WriteMessage(w, http.StatusBadRequest, msg)
		return
	}

	res, err := h.accounts.Register(context.WithoutCancel(r.Context()), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newAuthResponse(res))
}

// Login handles POST /api/users/login.
func (h *Users) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAuthResponse(res))
}

// Me handles GET /api/users/me.
func (h *Users) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		middleware.WriteMessage(w, http.StatusUnauthorized, service.MsgNoToken)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
