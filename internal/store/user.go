package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pagecraft/internal/models"
)

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail retrieves a user by their email address. Returns nil if not found.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// ExistsByUsernameOrEmail reports whether either identifier is taken.
func (s *UserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// List returns all users, newest first.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password. A taken username
// or email yields ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, username, email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		username, email, string(hash), role,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateRole sets a user's role and returns the updated row, or nil if no
// user has that id.
func (s *UserStore) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2
		RETURNING `+userColumns,
		role, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user role: %w", err)
	}
	return u, nil
}

// Delete removes a user by ID and reports whether a row was removed.
// Content authored by the user is left in place.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user rows affected: %w", err)
	}
	return n > 0, nil
}

// Count returns the total number of users.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountSince returns the number of users created at or after since.
func (s *UserStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE created_at >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users since: %w", err)
	}
	return n, nil
}

// SignupsByDay returns per-day signup counts (UTC) for users created at or
// after since. Days without signups are absent.
func (s *UserStore) SignupsByDay(ctx context.Context, since time.Time) ([]models.DayCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', '`+dayFormat+`') AS day, COUNT(*)
		FROM users
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`, since)
	if err != nil {
		return nil, fmt.Errorf("signups by day: %w", err)
	}
	return scanDayCounts(rows)
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func scanDayCounts(rows *sql.Rows) ([]models.DayCount, error) {
	defer rows.Close()

	var out []models.DayCount
	for rows.Next() {
		var d models.DayCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
