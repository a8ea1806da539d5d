// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client is a Go client for the PageCraft REST API. Requests are
// authenticated with the credential held by an injected Session, which the
// client updates on login, registration and logout.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pagecraft/internal/models"
	"pagecraft/internal/service"
)

// DefaultTimeout is the HTTP timeout used when no client is supplied.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client calls the PageCraft API.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a client for the API at baseURL. httpClient may be nil.
func New(baseURL string, session *Session, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if session == nil {
		session = NewSession()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// ContentRequest is the body of create and update calls. Nil fields are
// omitted, which leaves them unchanged on update. Setting Blocks selects
// the block payload.
type ContentRequest struct {
	Title   *string         `json:"title,omitempty"`
	Status  *string         `json:"status,omitempty"`
	GjsHTML *string         `json:"gjsHtml,omitempty"`
	GjsCSS  *string         `json:"gjsCss,omitempty"`
	Blocks  *[]models.Block `json:"blocks,omitempty"`
}

// authResponse is a profile plus a freshly issued token.
type authResponse struct {
	models.User
	Token string `json:"token"`
}

type idResponse struct {
	ID string `json:"id"`
}

// Register creates an account and signs the session in as it.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var res authResponse
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &res); err != nil {
		return nil, err
	}
	c.session.Set(res.Token, &res.User)
	return &res.User, nil
}

// Login signs the session in.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var res authResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &res); err != nil {
		return nil, err
	}
	c.session.Set(res.Token, &res.User)
	return &res.User, nil
}

// Logout signs the session out. Tokens are stateless, so nothing is sent
// to the server.
func (c *Client) Logout() {
	c.session.Clear()
}

// Me returns the profile of the signed-in user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListContent returns all records, or only the caller's when mine is set.
func (c *Client) ListContent(ctx context.Context, mine bool) ([]models.Content, error) {
	path := "/api/content"
	if mine {
		path += "?mine=true"
	}
	var items []models.Content
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetContent returns one record.
func (c *Client) GetContent(ctx context.Context, id string) (*models.Content, error) {
	var item models.Content
	if err := c.do(ctx, http.MethodGet, "/api/content/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateContent stores a new record authored by the signed-in user.
func (c *Client) CreateContent(ctx context.Context, req ContentRequest) (*models.Content, error) {
	var item models.Content
	if err := c.do(ctx, http.MethodPost, "/api/content", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateContent applies a partial update.
func (c *Client) UpdateContent(ctx context.Context, id string, req ContentRequest) (*models.Content, error) {
	var item models.Content
	if err := c.do(ctx, http.MethodPut, "/api/content/"+url.PathEscape(id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteContent removes a record and returns its id.
func (c *Client) DeleteContent(ctx context.Context, id string) (string, error) {
	var res idResponse
	if err := c.do(ctx, http.MethodDelete, "/api/content/"+url.PathEscape(id), nil, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

// ExportContent downloads the standalone HTML document of a record.
func (c *Client) ExportContent(ctx context.Context, id string) (filename string, doc []byte, err error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/content/"+url.PathEscape(id)+"/export", nil)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	doc, err = io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read export: %w", err)
	}

	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return filename, doc, nil
}

// Stats returns the role-aware dashboard summary.
func (c *Client) Stats(ctx context.Context) (*service.DashboardStats, error) {
	var s service.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AdminStats returns the platform analytics. Admin only.
func (c *Client) AdminStats(ctx context.Context) (*service.AdminStats, error) {
	var s service.AdminStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetRole changes the role of another account. Admin only.
func (c *Client) SetRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	var u models.User
	body := map[string]string{"role": string(role)}
	if err := c.do(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(id)+"/role", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes another account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	var res idResponse
	if err := c.do(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), nil, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx responses into *APIError.
// On success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(data, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return nil, apiErr
	}
	return resp, nil
}
