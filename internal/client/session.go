// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"pagecraft/internal/models"
)

// Session holds the credential of the signed-in user. It is set by a
// successful login or registration and cleared by logout. A Session is safe
// for concurrent use.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

// sessionFile is the on-disk form of a Session.
type sessionFile struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// NewSession returns an empty, signed-out session.
func NewSession() *Session {
	return &Session{}
}

// Set stores a credential and the profile it belongs to.
func (s *Session) Set(token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, user
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.Set("", nil)
}

// Token returns the stored credential, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in profile, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a credential is stored.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// LoadSession reads a session saved by Save. A missing file yields an
// empty session.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &Session{token: f.Token, user: f.User}, nil
}

// Save writes the session to path, readable only by the current user. A
// signed-out session removes the file.
func (s *Session) Save(path string) error {
	s.mu.RLock()
	f := sessionFile{Token: s.token, User: s.user}
	s.mu.RUnlock()

	if f.Token == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
