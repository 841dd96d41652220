package models

import "time"

// Session is an authenticated session created by a successful login.
//
// Only TokenHash is persisted. Token carries the plaintext bearer value from
// login back to the caller and is empty on sessions read from the store.
type Session struct {
	// Token is the opaque bearer credential handed to the client once.
	Token string `json:"-"`

	// TokenHash is the SHA-256 hex digest of Token and the primary key of
	// the sessions table.
	TokenHash string `json:"-"`

	// UserID references the owning user. It is a weak back-reference: no
	// foreign key is enforced.
	UserID int64 `json:"-"`

	// CreatedAt is set at login (UTC) and drives expiry.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsExpiredAt reports whether the session is older than maxAge at moment now.
// A non-positive maxAge disables the inline check.
func (s Session) IsExpiredAt(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return !s.CreatedAt.Add(maxAge).After(now)
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	SessionToken string `json:"session_token"`
}

// StatusResponse is a minimal acknowledgement body.
type StatusResponse struct {
	Status string `json:"status"`
}
