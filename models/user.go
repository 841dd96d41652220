package models

import "time"

// User represents an account entity used for authentication.
// PasswordHash is produced by the password hasher and must never leave the
// server: it is excluded from JSON and must not be logged.
type User struct {
	// UserID is the unique identifier assigned by the store on insert.
	UserID int64 `json:"id"`

	// Email is the unique login key. It is compared case-sensitively,
	// exactly as stored.
	Email string `json:"email"`

	// PasswordHash is the salted one-way hash of the user's password.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the email/password pair accepted by registration and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public identity returned after registration.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
