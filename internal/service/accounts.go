package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pagecraft/internal/models"
	"pagecraft/internal/store"
)

// Accounts handles registration, login and credential resolution.
type Accounts struct {
	users  UserStore
	tokens TokenIssuer
}

// NewAccounts creates an Accounts service.
func NewAccounts(users UserStore, tokens TokenIssuer) *Accounts {
	return &Accounts{users: users, tokens: tokens}
}

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult is a user profile together with a freshly issued credential.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates a regular user account and issues a token for it.
func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, newError(KindValidation, MsgMissingFields)
	}

	exists, err := a.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newError(KindConflict, MsgUserExists)
	}

	u, err := a.users.Create(ctx, username, email, in.Password, models.RoleUser)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, newError(KindConflict, MsgUserExists)
	}
	if err != nil {
		return nil, err
	}

	return a.issue(u)
}

// Login verifies an email/password pair. Unknown emails and wrong passwords
// fail identically.
func (a *Accounts) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := a.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !a.users.CheckPassword(u, password) {
		return nil, newError(KindUnauthenticated, MsgInvalidCredentials)
	}
	return a.issue(u)
}

// Identify resolves a bearer token to its user.
func (a *Accounts) Identify(ctx context.Context, token string) (*models.User, error) {
	id, err := a.tokens.Parse(token)
	if err != nil {
		return nil, newError(KindUnauthenticated, MsgTokenFailed)
	}

	u, err := a.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, newError(KindUnauthenticated, MsgTokenFailed)
	}
	return u, nil
}

func (a *Accounts) issue(u *models.User) (*AuthResult, error) {
	token, err := a.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}
