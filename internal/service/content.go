package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pagecraft/internal/excerpt"
	"pagecraft/internal/models"
	"pagecraft/internal/render"
	"pagecraft/internal/store"
)

// Content implements the content API rules: anyone may read, authenticated
// users may create, and only the author or an admin may change a record.
type Content struct {
	store ContentStore
}

// NewContent creates a Content service.
func NewContent(s ContentStore) *Content {
	return &Content{store: s}
}

// ContentInput carries the fields of a create or update request. Nil fields
// were absent from the request. Blocks takes precedence over the markup
// fields when both are present.
type ContentInput struct {
	Title  *string
	Status *string
	HTML   *string
	CSS    *string
	Blocks *[]models.Block
}

func (in ContentInput) hasPayload() bool {
	return in.Blocks != nil || in.HTML != nil || in.CSS != nil
}

// payload merges the supplied payload fields over prev. Markup fields not
// supplied keep their previous value when prev is also markup. Turning a
// block page into markup needs both fields, otherwise a lone gjsCss would
// wipe the blocks.
func (in ContentInput) payload(prev models.Payload) (models.Payload, error) {
	if in.Blocks != nil {
		return models.BlocksPayload(*in.Blocks), nil
	}
	if prev.Kind == models.PayloadBlocks && (in.HTML == nil || in.CSS == nil) {
		return models.Payload{}, newError(KindValidation, MsgIncompleteMarkup)
	}
	var html, css string
	if prev.Kind == models.PayloadMarkup || prev.Kind == "" {
		html, css = prev.HTML, prev.CSS
	}
	if in.HTML != nil {
		html = *in.HTML
	}
	if in.CSS != nil {
		css = *in.CSS
	}
	return models.MarkupPayload(html, css), nil
}

// List returns every record newest first. With mine set, only the caller's
// records are returned and a caller is required.
func (s *Content) List(ctx context.Context, caller *models.User, mine bool) ([]models.Content, error) {
	var f store.ContentFilter
	if mine {
		if caller == nil {
			return nil, newError(KindUnauthenticated, MsgNoToken)
		}
		f.AuthorID = &caller.ID
	}
	return s.store.List(ctx, f)
}

// Get returns one record. Malformed ids are reported as not found.
func (s *Content) Get(ctx context.Context, id string) (*models.Content, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, newError(KindNotFound, MsgContentNotFound)
	}

	c, err := s.store.FindByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, newError(KindNotFound, MsgContentNotFound)
	}
	return c, nil
}

// Create stores a new record authored by caller. Status defaults to Draft
// and the excerpt is derived from the payload.
func (s *Content) Create(ctx context.Context, caller *models.User, in ContentInput) (*models.Content, error) {
	if caller == nil {
		return nil, newError(KindUnauthenticated, MsgNoToken)
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, newError(KindValidation, MsgMissingTitle)
	}

	status := models.ContentStatusDraft
	if in.Status != nil && *in.Status != "" {
		status = models.ContentStatus(*in.Status)
		if !status.Valid() {
			return nil, newError(KindValidation, MsgInvalidStatus)
		}
	}

	payload, err := in.payload(models.Payload{})
	if err != nil {
		return nil, err
	}
	body, err := deriveExcerpt(payload)
	if err != nil {
		return nil, err
	}

	c := &models.Content{
		Title:    *in.Title,
		Status:   status,
		AuthorID: caller.ID,
		Author:   &models.AuthorRef{ID: caller.ID, Username: caller.Username, Email: caller.Email},
		Payload:  payload,
		Body:     body,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies a partial update. Existence is checked before ownership,
// so a missing record is reported as not found to every caller.
func (s *Content) Update(ctx context.Context, caller *models.User, id string, in ContentInput) (*models.Content, error) {
	c, err := s.editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		c.Title = *in.Title
	}
	if in.Status != nil && *in.Status != "" {
		status := models.ContentStatus(*in.Status)
		if !status.Valid() {
			return nil, newError(KindValidation, MsgInvalidStatus)
		}
		c.Status = status
	}
	if in.hasPayload() {
		if c.Payload, err = in.payload(c.Payload); err != nil {
			return nil, err
		}
		if c.Body, err = deriveExcerpt(c.Payload); err != nil {
			return nil, err
		}
	}

	ok, err := s.store.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newError(KindNotFound, MsgContentNotFound)
	}
	return c, nil
}

// Delete permanently removes a record and returns its id.
func (s *Content) Delete(ctx context.Context, caller *models.User, id string) (uuid.UUID, error) {
	c, err := s.editable(ctx, caller, id)
	if err != nil {
		return uuid.Nil, err
	}

	ok, err := s.store.Delete(ctx, c.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, newError(KindNotFound, MsgContentNotFound)
	}
	return c.ID, nil
}

// editable loads a record and checks that caller may change it.
func (s *Content) editable(ctx context.Context, caller *models.User, id string) (*models.Content, error) {
	if caller == nil {
		return nil, newError(KindUnauthenticated, MsgNoToken)
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !c.IsOwnedBy(caller.ID) {
		return nil, newError(KindForbidden, MsgNotAuthorized)
	}
	return c, nil
}

// deriveExcerpt builds the list-card preview text. Block payloads are
// rendered first so the excerpt matches what the page shows.
func deriveExcerpt(p models.Payload) (string, error) {
	if p.Kind != models.PayloadBlocks {
		return excerpt.FromHTML(p.HTML), nil
	}
	if len(p.Blocks) == 0 {
		return "", nil
	}

	html, err := render.Payload(p)
	if err != nil {
		return "", fmt.Errorf("derive excerpt: %w", err)
	}
	return excerpt.FromHTML(string(html)), nil
}
