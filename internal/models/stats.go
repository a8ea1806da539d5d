package models

import "github.com/google/uuid"

// DayCount is one bucket of a per-day time series. Date is formatted
// YYYY-MM-DD in UTC.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AuthorCount is one row of the top-authors ranking. Username is empty when
// the author account no longer exists.
type AuthorCount struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Count    int       `json:"count"`
}

// StatusCounts holds content totals broken down by status.
type StatusCounts struct {
	Total     int
	Draft     int
	Published int
}
