package domain

import "time"

// User holds the profile of the signed-in account.
type User struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Session is the explicitly constructed auth context passed to remote
// adapters: a bearer token, its expiry, and the resolved user profile.
type Session struct {
	AccessToken string    `json:"accessToken"`
	Expiry      time.Time `json:"tokenExpiry"`
	User        *User     `json:"user,omitempty"`
}

// Valid reports whether the session carries a usable, unexpired token.
func (s Session) Valid() bool {
	if s.AccessToken == "" {
		return false
	}
	return s.Expiry.IsZero() || time.Now().Before(s.Expiry)
}
