package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pagecraft/internal/models"
	"pagecraft/internal/store"
)

// memUsers is an in-memory UserStore. Passwords are stored as-is.
type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
	err   error
	days  []models.DayCount
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{users: map[uuid.UUID]models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) List(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memUsers) Create(_ context.Context, username, email, password string, role models.Role) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return nil, store.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	u := models.User{ID: uuid.New(), Username: username, Email: email, PasswordHash: password, Role: role, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	return &u, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	u.Role = role
	m.users[id] = u
	return &u, nil
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func (m *memUsers) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), m.err
}

func (m *memUsers) CountSince(_ context.Context, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, m.err
}

func (m *memUsers) SignupsByDay(context.Context, time.Time) ([]models.DayCount, error) {
	return m.days, m.err
}

func (m *memUsers) CheckPassword(u *models.User, password string) bool {
	return u.PasswordHash == password
}

// memContent is an in-memory ContentStore that hands out copies.
type memContent struct {
	mu      sync.Mutex
	items   map[uuid.UUID]models.Content
	err     error
	days    []models.DayCount
	authors []models.AuthorCount
	updates int
}

func newMemContent(items ...models.Content) *memContent {
	m := &memContent{items: map[uuid.UUID]models.Content{}}
	for _, c := range items {
		m.items[c.ID] = c
	}
	return m
}

func (m *memContent) List(_ context.Context, f store.ContentFilter) ([]models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Content{}
	for _, c := range m.items {
		if f.AuthorID != nil && c.AuthorID != *f.AuthorID {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memContent) FindByID(_ context.Context, id uuid.UUID) (*models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memContent) Create(_ context.Context, c *models.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.items[c.ID] = *c
	return nil
}

func (m *memContent) Update(_ context.Context, c *models.Content) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	prev, ok := m.items[c.ID]
	if !ok {
		return false, nil
	}
	m.updates++
	c.AuthorID = prev.AuthorID
	c.UpdatedAt = time.Now().UTC()
	m.items[c.ID] = *c
	return true, nil
}

func (m *memContent) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *memContent) CountByStatus(_ context.Context, authorID *uuid.UUID) (models.StatusCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out models.StatusCounts
	for _, c := range m.items {
		if authorID != nil && c.AuthorID != *authorID {
			continue
		}
		out.Total++
		switch c.Status {
		case models.ContentStatusDraft:
			out.Draft++
		case models.ContentStatusPublished:
			out.Published++
		}
	}
	return out, m.err
}

func (m *memContent) CreatedByDay(context.Context, time.Time) ([]models.DayCount, error) {
	return m.days, m.err
}

func (m *memContent) TopAuthors(context.Context, int) ([]models.AuthorCount, error) {
	return m.authors, m.err
}

// fakeTokens issues the user id as the token.
type fakeTokens struct {
	issueErr error
}

func (f fakeTokens) Issue(id uuid.UUID) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "tok-" + id.String(), nil
}

func (f fakeTokens) Parse(token string) (uuid.UUID, error) {
	if len(token) < 4 || token[:4] != "tok-" {
		return uuid.Nil, errBadToken
	}
	return uuid.Parse(token[4:])
}

var errBadToken = &Error{Kind: KindUnauthenticated, Message: "bad token"}

func newUser(name string, role models.Role) models.User {
	return models.User{
		ID:           uuid.New(),
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: name + "-pw",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

func strPtr(s string) *string { return &s }
