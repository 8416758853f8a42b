package models

import "encoding/json"

// Profile is the identity record resolved from a username.
// It is looked up per request and never cached.
type Profile struct {
	Email    string `json:"email" db:"email"`
	IsActive *bool  `json:"is_active" db:"is_active"`
}

// Active reports whether the account may authenticate. A missing flag counts
// as inactive.
func (p *Profile) Active() bool {
	return p.IsActive != nil && *p.IsActive
}

// AuthResult is what a successful password sign-in hands back. Both parts are
// opaque to this service and are relayed to the client as-is.
type AuthResult struct {
	Session json.RawMessage
	User    json.RawMessage
}

// HasSession reports whether the platform actually issued a session.
func (r *AuthResult) HasSession() bool {
	if r == nil || len(r.Session) == 0 {
		return false
	}
	return string(r.Session) != "null"
}
