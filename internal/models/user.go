package models

import (
	"strconv"
	"time"
)

// User represents an account in the system
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	Name          string
	OAuthProvider string
	OAuthSubject  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UID is the key used for the user's profile document and game results
func (u *User) UID() string {
	return strconv.FormatInt(u.ID, 10)
}

// HasPassword reports whether the account can sign in with email and password
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
