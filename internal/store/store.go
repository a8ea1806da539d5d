// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for users and content.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// dayFormat is the Postgres to_char pattern matching Go's "2006-01-02".
const dayFormat = "YYYY-MM-DD"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
