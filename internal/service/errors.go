// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import "errors"

// Kind classifies an expected failure so the HTTP layer can pick a status.
type Kind int

const (
	// KindInternal is any failure not produced by this package.
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// User-facing messages.
const (
	MsgTokenFailed        = "Not authorized, token failed"
	MsgNoToken            = "Not authorized, no token"
	MsgNotAdmin           = "Not authorized as an admin"
	MsgNotAuthorized      = "User not authorized"
	MsgMissingFields      = "Please add all fields"
	MsgMissingTitle       = "Please add a title"
	MsgInvalidStatus      = "Invalid status"
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgContentNotFound    = "Content not found"
	MsgUserNotFound       = "User not found"
	MsgInvalidRole        = "Invalid role"
	MsgOwnRole            = "Cannot change your own role"
	MsgDeleteSelf         = "Cannot delete yourself"
	MsgIncompleteMarkup   = "Provide both gjsHtml and gjsCss to replace blocks"
)

// Error is an expected failure carrying a message safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf returns the kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
