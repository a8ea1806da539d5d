package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin describes the account created on an empty database.
type SeedAdmin struct {
	Username string
	Email    string
	Password string
}

// Seed creates the default admin account if the users table is empty.
// Calling it again on a populated database is a no-op.
func Seed(ctx context.Context, db *sql.DB, admin SeedAdmin) error {
	if admin.Email == "" || admin.Password == "" {
		slog.Info("seed admin not configured, skipping")
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	username := admin.Username
	if username == "" {
		username = "admin"
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
	`, username, admin.Email, string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user", "email", admin.Email)
	return nil
}
