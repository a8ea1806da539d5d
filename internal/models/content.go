// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContentStatus represents the publishing state of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "Draft"
	ContentStatusPublished ContentStatus = "Published"
)

// Valid reports whether s is one of the two enumerated statuses.
func (s ContentStatus) Valid() bool {
	return s == ContentStatusDraft || s == ContentStatusPublished
}

// PayloadKind tags which variant of Payload is populated.
type PayloadKind string

const (
	// PayloadMarkup is raw HTML + CSS produced by the visual editor.
	PayloadMarkup PayloadKind = "markup"
	// PayloadBlocks is the legacy ordered list of typed blocks.
	PayloadBlocks PayloadKind = "blocks"
)

// Payload is the rendering payload of a content record. Exactly one variant
// is meaningful, selected by Kind: HTML/CSS for PayloadMarkup, Blocks for
// PayloadBlocks.
type Payload struct {
	Kind   PayloadKind
	HTML   string
	CSS    string
	Blocks []Block
}

// MarkupPayload builds a raw-markup payload.
func MarkupPayload(html, css string) Payload {
	return Payload{Kind: PayloadMarkup, HTML: html, CSS: css}
}

// BlocksPayload builds a block-sequence payload. A nil slice is stored as
// an empty list so it serializes as [].
func BlocksPayload(blocks []Block) Payload {
	if blocks == nil {
		blocks = []Block{}
	}
	return Payload{Kind: PayloadBlocks, Blocks: blocks}
}

// Content is a page record. Author is only populated by queries that join
// the users table, and stays nil when the author account no longer exists.
type Content struct {
	ID        uuid.UUID
	Title     string
	Status    ContentStatus
	AuthorID  uuid.UUID
	Author    *AuthorRef
	Payload   Payload
	Body      string // derived plain-text excerpt, never hand-edited
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether userID authored the record.
func (c *Content) IsOwnedBy(userID uuid.UUID) bool {
	return c.AuthorID == userID
}

// contentJSON is the wire shape of a content record. The markup fields and
// the blocks field are mutually exclusive.
type contentJSON struct {
	ID        uuid.UUID       `json:"_id"`
	Title     string          `json:"title"`
	Status    ContentStatus   `json:"status"`
	GjsHTML   *string         `json:"gjsHtml,omitempty"`
	GjsCSS    *string         `json:"gjsCss,omitempty"`
	Blocks    *[]Block        `json:"blocks,omitempty"`
	Body      string          `json:"body"`
	Author    json.RawMessage `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MarshalJSON renders the record in the API shape. Author is null when the
// author account no longer exists.
func (c Content) MarshalJSON() ([]byte, error) {
	out := contentJSON{
		ID:        c.ID,
		Title:     c.Title,
		Status:    c.Status,
		Body:      c.Body,
		Author:    json.RawMessage("null"),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	switch c.Payload.Kind {
	case PayloadBlocks:
		blocks := c.Payload.Blocks
		if blocks == nil {
			blocks = []Block{}
		}
		out.Blocks = &blocks
	default:
		html, css := c.Payload.HTML, c.Payload.CSS
		out.GjsHTML, out.GjsCSS = &html, &css
	}

	if c.Author != nil {
		ref, err := json.Marshal(c.Author)
		if err != nil {
			return nil, err
		}
		out.Author = ref
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads the API shape back. The payload variant is chosen by
// the presence of a blocks field.
func (c *Content) UnmarshalJSON(data []byte) error {
	var in contentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*c = Content{
		ID:        in.ID,
		Title:     in.Title,
		Status:    in.Status,
		Body:      in.Body,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}

	if in.Blocks != nil {
		c.Payload = BlocksPayload(*in.Blocks)
	} else {
		c.Payload = MarkupPayload(deref(in.GjsHTML), deref(in.GjsCSS))
	}

	if len(in.Author) == 0 || string(in.Author) == "null" {
		return nil
	}
	var ref AuthorRef
	if err := json.Unmarshal(in.Author, &ref); err == nil {
		c.Author = &ref
		c.AuthorID = ref.ID
		return nil
	}
	return json.Unmarshal(in.Author, &c.AuthorID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
