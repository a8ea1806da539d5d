package handlers

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pagecraft/internal/middleware"
	"pagecraft/internal/models"
	"pagecraft/internal/render"
	"pagecraft/internal/service"
)

// Content handles the content CRUD endpoints and the rendered views of a
// record.
type Content struct {
	content ContentService
}

// NewContent creates a Content handler group.
func NewContent(content ContentService) *Content {
	return &Content{content: content}
}

// contentRequest is the body of create and update requests. Pointer fields
// distinguish absent from empty. Any author or body field is ignored.
type contentRequest struct {
	Title   *string         `json:"title"`
	Status  *string         `json:"status"`
	GjsHTML *string         `json:"gjsHtml"`
	GjsCSS  *string         `json:"gjsCss"`
	Blocks  *[]models.Block `json:"blocks"`
}

func (req contentRequest) input() service.ContentInput {
	return service.ContentInput{
		Title:  req.Title,
		Status: req.Status,
		HTML:   req.GjsHTML,
		CSS:    req.GjsCSS,
		Blocks: req.Blocks,
	}
}

// decodeContent decodes and size-checks a content request. On failure it
// writes the response and returns false.
func decodeContent(w http.ResponseWriter, r *http.Request) (contentRequest, bool) {
	var req contentRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if msg := validateContent(req.Title, req.GjsHTML, req.GjsCSS, req.Blocks); msg != "" {
		middleware.WriteMessage(w, http.StatusBadRequest, msg)
		return req, false
	}
	return req, true
}

// List handles GET /api/content. ?mine=true narrows to the caller's records.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	mine, _ := strconv.ParseBool(r.URL.Query().Get("mine"))

	items, err := h.content.List(r.Context(), middleware.UserFromCtx(r.Context()), mine)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []models.Content{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/content/{id}.
func (h *Content) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.content.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Create handles POST /api/content.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContent(w, r)
	if !ok {
		return
	}

	c, err := h.content.Create(context.WithoutCancel(r.Context()), middleware.UserFromCtx(r.Context()), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("content created", "content_id", c.ID, "author_id", c.AuthorID)
	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/content/{id}.
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContent(w, r)
	if !ok {
		return
	}

	c, err := h.content.Update(context.WithoutCancel(r.Context()), middleware.UserFromCtx(r.Context()), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/content/{id}.
func (h *Content) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, err := h.content.Delete(context.WithoutCancel(r.Context()), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("content deleted", "content_id", id, "by", user.ID)
	writeJSON(w, http.StatusOK, idResponse{ID: id.String()})
}

// Preview handles GET /api/content/{id}/preview and serves the rendered page.
func (h *Content) Preview(w http.ResponseWriter, r *http.Request) {
	c, err := h.content.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := render.Render(c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}

// Export handles GET /api/content/{id}/export and serves a standalone HTML
// document as a download.
func (h *Content) Export(w http.ResponseWriter, r *http.Request) {
	c, err := h.content.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename, doc, err := render.Export(c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
