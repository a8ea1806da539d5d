package handlers

import (
	"strings"
	"unicode/utf8"

	"pagecraft/internal/models"
)

// Validation limits for request fields. Presence rules live in the
// services; these only bound sizes.
const (
	maxTitleLen    = 300
	maxUsernameLen = 100
	maxEmailLen    = 254
	maxPasswordLen = 72 // bcrypt ignores anything longer
	maxMarkupLen   = 2_000_000
	maxBlocks      = 200
)

// validateRegister checks registration inputs and returns the first error found.
func validateRegister(username, email, password string) string {
	if utf8.RuneCountInString(strings.TrimSpace(username)) > maxUsernameLen {
		return "Username is too long (max 100 characters)"
	}
	if len(strings.TrimSpace(email)) > maxEmailLen {
		return "Email is too long (max 254 characters)"
	}
	if len(password) > maxPasswordLen {
		return "Password is too long (max 72 bytes)"
	}
	return ""
}

// validateContent checks content inputs and returns the first error found.
// Nil fields are absent and always pass.
func validateContent(title, html, css *string, blocks *[]models.Block) string {
	if title != nil && utf8.RuneCountInString(strings.TrimSpace(*title)) > maxTitleLen {
		return "Title is too long (max 300 characters)"
	}
	if html != nil && len(*html) > maxMarkupLen {
		return "Page markup is too long"
	}
	if css != nil && len(*css) > maxMarkupLen {
		return "Page stylesheet is too long"
	}
	if blocks != nil && len(*blocks) > maxBlocks {
		return "Too many blocks (max 200)"
	}
	return ""
}
