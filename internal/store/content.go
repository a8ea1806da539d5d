package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pagecraft/internal/models"
)

// contentSelect joins the author so listings can show username and email.
// The join is LEFT because author rows may have been deleted.
const contentSelect = `
	SELECT c.id, c.title, c.status, c.author_id, c.payload_kind,
	       c.gjs_html, c.gjs_css, c.blocks, c.body, c.created_at, c.updated_at,
	       u.id, u.username, u.email
	FROM content c
	LEFT JOIN users u ON u.id = c.author_id`

// ContentStore handles all content-related database operations.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// ContentFilter narrows List. A nil AuthorID lists every record.
type ContentFilter struct {
	AuthorID *uuid.UUID
}

func scanContent(row rowScanner) (*models.Content, error) {
	var (
		c          models.Content
		kind       models.PayloadKind
		html, css  string
		blocksJSON []byte
		authorID   uuid.NullUUID
		username   sql.NullString
		email      sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Status, &c.AuthorID, &kind,
		&html, &css, &blocksJSON, &c.Body, &c.CreatedAt, &c.UpdatedAt,
		&authorID, &username, &email,
	)
	if err != nil {
		return nil, err
	}

	switch kind {
	case models.PayloadBlocks:
		var blocks []models.Block
		if len(blocksJSON) > 0 {
			if err := json.Unmarshal(blocksJSON, &blocks); err != nil {
				return nil, fmt.Errorf("decode blocks: %w", err)
			}
		}
		c.Payload = models.BlocksPayload(blocks)
	default:
		c.Payload = models.MarkupPayload(html, css)
	}

	if authorID.Valid {
		c.Author = &models.AuthorRef{ID: authorID.UUID, Username: username.String, Email: email.String}
	}
	return &c, nil
}

// payloadColumns flattens a payload into the payload_kind, gjs_html,
// gjs_css and blocks column values.
func payloadColumns(p models.Payload) (kind models.PayloadKind, html, css, blocks string, err error) {
	if p.Kind == models.PayloadBlocks {
		list := p.Blocks
		if list == nil {
			list = []models.Block{}
		}
		b, err := json.Marshal(list)
		if err != nil {
			return "", "", "", "", fmt.Errorf("encode blocks: %w", err)
		}
		return models.PayloadBlocks, "", "", string(b), nil
	}
	return models.PayloadMarkup, p.HTML, p.CSS, "[]", nil
}

// List returns content records newest first with the author joined in.
func (s *ContentStore) List(ctx context.Context, f ContentFilter) ([]models.Content, error) {
	query := contentSelect
	var args []any
	if f.AuthorID != nil {
		query += ` WHERE c.author_id = $1`
		args = append(args, *f.AuthorID)
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	items := []models.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a content record by its UUID. Returns nil if not found.
func (s *ContentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	c, err := scanContent(s.db.QueryRowContext(ctx, contentSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// Create inserts c and fills in its generated id and timestamps.
func (s *ContentStore) Create(ctx context.Context, c *models.Content) error {
	kind, html, css, blocks, err := payloadColumns(c.Payload)
	if err != nil {
		return fmt.Errorf("create content: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO content (title, status, author_id, payload_kind, gjs_html, gjs_css, blocks, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.Title, c.Status, c.AuthorID, kind, html, css, blocks, c.Body,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create content: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of c. The author is never changed.
// Reports false if the record no longer exists.
func (s *ContentStore) Update(ctx context.Context, c *models.Content) (bool, error) {
	kind, html, css, blocks, err := payloadColumns(c.Payload)
	if err != nil {
		return false, fmt.Errorf("update content: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		UPDATE content
		SET title = $1, status = $2, payload_kind = $3, gjs_html = $4,
		    gjs_css = $5, blocks = $6, body = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`, c.Title, c.Status, kind, html, css, blocks, c.Body, c.ID,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update content: %w", err)
	}
	return true, nil
}

// Delete permanently removes a record and reports whether it existed.
func (s *ContentStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete content rows affected: %w", err)
	}
	return n > 0, nil
}

// CountByStatus returns content totals grouped by status, optionally
// restricted to one author.
func (s *ContentStore) CountByStatus(ctx context.Context, authorID *uuid.UUID) (models.StatusCounts, error) {
	query := `SELECT status, COUNT(*) FROM content`
	var args []any
	if authorID != nil {
		query += ` WHERE author_id = $1`
		args = append(args, *authorID)
	}
	query += ` GROUP BY status`

	var out models.StatusCounts
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return out, fmt.Errorf("count content by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status models.ContentStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return out, fmt.Errorf("scan status count: %w", err)
		}
		switch status {
		case models.ContentStatusDraft:
			out.Draft = n
		case models.ContentStatusPublished:
			out.Published = n
		}
		out.Total += n
	}
	return out, rows.Err()
}

// CreatedByDay returns per-day content creation counts (UTC) for records
// created at or after since. Days without records are absent.
func (s *ContentStore) CreatedByDay(ctx context.Context, since time.Time) ([]models.DayCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', '`+dayFormat+`') AS day, COUNT(*)
		FROM content
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`, since)
	if err != nil {
		return nil, fmt.Errorf("content by day: %w", err)
	}
	return scanDayCounts(rows)
}

// TopAuthors ranks authors by number of records, highest first. Ties are
// broken by whoever created a record first. Authors whose account was deleted come
// back with an empty Username.
func (s *ContentStore) TopAuthors(ctx context.Context, limit int) ([]models.AuthorCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.author_id, u.username, COUNT(*) AS n
		FROM content c
		LEFT JOIN users u ON u.id = c.author_id
		GROUP BY c.author_id, u.username
		ORDER BY n DESC, MIN(c.created_at)
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top authors: %w", err)
	}
	defer rows.Close()

	var out []models.AuthorCount
	for rows.Next() {
		var (
			a        models.AuthorCount
			username sql.NullString
		)
		if err := rows.Scan(&a.ID, &username, &a.Count); err != nil {
			return nil, fmt.Errorf("scan author count: %w", err)
		}
		a.Username = username.String
		out = append(out, a)
	}
	return out, rows.Err()
}
