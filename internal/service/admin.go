package service

import (
	"context"

	"github.com/google/uuid"

	"pagecraft/internal/models"
)

// Admin implements user management for administrators. Callers are assumed
// to have passed the admin gate already.
type Admin struct {
	users UserStore
}

// NewAdmin creates an Admin service.
func NewAdmin(users UserStore) *Admin {
	return &Admin{users: users}
}

// ListUsers returns all users, newest first.
func (a *Admin) ListUsers(ctx context.Context) ([]models.User, error) {
	return a.users.List(ctx)
}

// SetRole changes the role of the user with the given id. Targeting oneself
// is rejected before the role value is looked at.
func (a *Admin) SetRole(ctx context.Context, caller *models.User, id, role string) (*models.User, error) {
	if isSelf(caller, id) {
		return nil, newError(KindValidation, MsgOwnRole)
	}

	r := models.Role(role)
	if !r.Valid() {
		return nil, newError(KindValidation, MsgInvalidRole)
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, newError(KindNotFound, MsgUserNotFound)
	}

	u, err := a.users.UpdateRole(ctx, uid, r)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, newError(KindNotFound, MsgUserNotFound)
	}
	return u, nil
}

// DeleteUser removes the user with the given id. Their content is kept.
func (a *Admin) DeleteUser(ctx context.Context, caller *models.User, id string) (string, error) {
	if isSelf(caller, id) {
		return "", newError(KindValidation, MsgDeleteSelf)
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return "", newError(KindNotFound, MsgUserNotFound)
	}

	ok, err := a.users.Delete(ctx, uid)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", newError(KindNotFound, MsgUserNotFound)
	}
	return id, nil
}

func isSelf(caller *models.User, id string) bool {
	if caller == nil {
		return false
	}
	uid, err := uuid.Parse(id)
	return err == nil && uid == caller.ID
}
