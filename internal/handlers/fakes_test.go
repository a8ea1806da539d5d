package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"pagecraft/internal/middleware"
	"pagecraft/internal/models"
	"pagecraft/internal/service"
)

func svcErr(kind service.Kind, msg string) error {
	return &service.Error{Kind: kind, Message: msg}
}

type fakeAccounts struct {
	gotRegister service.RegisterInput
	gotEmail    string
	gotPassword string
	res         *service.AuthResult
	err         error
}

func (f *fakeAccounts) Register(_ context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	f.gotRegister = in
	return f.res, f.err
}

func (f *fakeAccounts) Login(_ context.Context, email, password string) (*service.AuthResult, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.res, f.err
}

type fakeContent struct {
	items   []models.Content
	item    *models.Content
	err     error
	gotMine bool
	gotID   string
	gotIn   service.ContentInput
	caller  *models.User
}

func (f *fakeContent) List(_ context.Context, caller *models.User, mine bool) ([]models.Content, error) {
	f.caller, f.gotMine = caller, mine
	return f.items, f.err
}

func (f *fakeContent) Get(_ context.Context, id string) (*models.Content, error) {
	f.gotID = id
	return f.item, f.err
}

func (f *fakeContent) Create(_ context.Context, caller *models.User, in service.ContentInput) (*models.Content, error) {
	f.caller, f.gotIn = caller, in
	return f.item, f.err
}

func (f *fakeContent) Update(_ context.Context, caller *models.User, id string, in service.ContentInput) (*models.Content, error) {
	f.caller, f.gotID, f.gotIn = caller, id, in
	return f.item, f.err
}

func (f *fakeContent) Delete(_ context.Context, caller *models.User, id string) (uuid.UUID, error) {
	f.caller, f.gotID = caller, id
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return uuid.MustParse(id), nil
}

type fakeStats struct {
	dash   *service.DashboardStats
	admin  *service.AdminStats
	err    error
	caller *models.User
}

func (f *fakeStats) Dashboard(_ context.Context, caller *models.User) (*service.DashboardStats, error) {
	f.caller = caller
	return f.dash, f.err
}

func (f *fakeStats) Admin(context.Context) (*service.AdminStats, error) {
	return f.admin, f.err
}

type fakeAdmin struct {
	users   []models.User
	user    *models.User
	err     error
	gotID   string
	gotRole string
}

func (f *fakeAdmin) ListUsers(context.Context) ([]models.User, error) {
	return f.users, f.err
}

func (f *fakeAdmin) SetRole(_ context.Context, _ *models.User, id, role string) (*models.User, error) {
	f.gotID, f.gotRole = id, role
	return f.user, f.err
}

func (f *fakeAdmin) DeleteUser(_ context.Context, _ *models.User, id string) (string, error) {
	f.gotID = id
	if f.err != nil {
		return "", f.err
	}
	return id, nil
}

// withChiURLParam adds a chi URL parameter to a request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withUser authenticates r as user.
func withUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), user))
}

// jsonRequest builds a request with body marshalled from v, or sent raw
// when v is a string.
func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body []byte
	switch b := v.(type) {
	case nil:
	case string:
		body = []byte(b)
	default:
		var err error
		body, err = json.Marshal(v)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody unmarshals the recorded response body into a generic map.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

func newTestUser(name string, role models.Role) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: name,
		Email:    name + "@example.com",
		Role:     role,
	}
}
