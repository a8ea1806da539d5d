// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"pagecraft/internal/models"
	"pagecraft/internal/service"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// UserKey is the context key for the authenticated user.
	UserKey contextKey = "user"
)

// Identifier resolves a bearer token to a user.
type Identifier interface {
	Identify(ctx context.Context, token string) (*models.User, error)
}

// Authenticate resolves the bearer credential, if any, and stores the user
// in the request context. Requests without an Authorization header pass
// through as anonymous; a header that does not resolve to a user fails
// with 401.
func Authenticate(id Identifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				WriteMessage(w, http.StatusUnauthorized, service.MsgTokenFailed)
				return
			}

			user, err := id.Identify(r.Context(), token)
			if err != nil {
				if service.KindOf(err) == service.KindUnauthenticated {
					WriteMessage(w, http.StatusUnauthorized, service.MsgTokenFailed)
					return
				}
				slog.Error("identify bearer token failed", "error", err, "path", r.URL.Path)
				WriteMessage(w, http.StatusInternalServerError, MsgServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth rejects anonymous requests with 401. Must be applied after
// Authenticate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromCtx(r.Context()) == nil {
			WriteMessage(w, http.StatusUnauthorized, service.MsgNoToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects non-admin callers. The status is 401, not 403,
// matching what existing clients expect.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromCtx(r.Context())
		if user == nil || !user.IsAdmin() {
			WriteMessage(w, http.StatusUnauthorized, service.MsgNotAdmin)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromCtx extracts the authenticated user from the request context.
// Returns nil for anonymous requests.
func UserFromCtx(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}
