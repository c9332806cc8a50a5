// Package access carries the authenticated principal through service calls.
package access

import (
	"strings"

	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"
)

// Session is the signed-in principal. It is built once per request from the
// stored session and passed explicitly to every service method.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// FromMap reads the session user shape stored by the session middleware.
// ok is false when no user is signed in.
func FromMap(v interface{}) (Session, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return Session{}, false
	}
	s := Session{
		UserID: str(m["user_id"]),
		Email:  strings.ToLower(str(m["email"])),
		Role:   str(m["role"]),
	}
	if s.UserID == "" {
		return Session{}, false
	}
	return s, true
}

func (s Session) Can(permission string) bool {
	return constants.Allowed(permission, s.Email, s.Role)
}

// Require returns domain.ErrUnauthorized unless the session holds permission.
func (s Session) Require(permission string) error {
	if !s.Can(permission) {
		return domain.ErrUnauthorized
	}
	return nil
}

// Capabilities lists what the UI may offer this principal.
func (s Session) Capabilities() map[string]bool {
	out := make(map[string]bool, len(constants.PermissionRules))
	for perm := range constants.PermissionRules {
		out[perm] = s.Can(perm)
	}
	return out
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
