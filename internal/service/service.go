// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service holds the business rules of the API: account handling,
// content ownership, admin user management and dashboard statistics.
// Persistence is delegated to the store interfaces declared here.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pagecraft/internal/models"
	"pagecraft/internal/store"
)

// UserStore defines the user persistence operations the services need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, username, email, password string, role models.Role) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	SignupsByDay(ctx context.Context, since time.Time) ([]models.DayCount, error)
	CheckPassword(user *models.User, password string) bool
}

// ContentStore defines the content persistence operations the services need.
type ContentStore interface {
	List(ctx context.Context, f store.ContentFilter) ([]models.Content, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error)
	Create(ctx context.Context, c *models.Content) error
	Update(ctx context.Context, c *models.Content) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, authorID *uuid.UUID) (models.StatusCounts, error)
	CreatedByDay(ctx context.Context, since time.Time) ([]models.DayCount, error)
	TopAuthors(ctx context.Context, limit int) ([]models.AuthorCount, error)
}

// TokenIssuer issues and verifies bearer credentials.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}

var (
	_ UserStore    = (*store.UserStore)(nil)
	_ ContentStore = (*store.ContentStore)(nil)
)
