// Package profile stores the per-user profile document (name, email, XP and
// login timestamps) behind a small key-value interface with SQL, Firestore
// and in-memory backends.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const xpPerLevel = 1000

// Profile is the document kept for every signed-up user.
type Profile struct {
	Name        string    `json:"name" firestore:"name"`
	Email       string    `json:"email" firestore:"email"`
	XP          int       `json:"xp" firestore:"xp"`
	Level       int       `json:"level" firestore:"level"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt" firestore:"lastLoginAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// Update lists the fields to merge into a profile; nil fields are left alone.
type Update struct {
	Name        *string
	Email       *string
	XP          *int
	Level       *int
	CreatedAt   *time.Time
	LastLoginAt *time.Time
	UpdatedAt   *time.Time
}

// Store reads and writes profile documents keyed by user id. Writes are
// last-write-wins.
type Store interface {
	// Get returns nil, nil when the user has no profile.
	Get(ctx context.Context, uid string) (*Profile, error)
	Set(ctx context.Context, uid string, p Profile) error
	Merge(ctx context.Context, uid string, u Update) error
}

// New returns a fresh profile for a user who just signed up.
func New(name, email string, now time.Time) Profile {
	return Profile{
		Name:        name,
		Email:       email,
		XP:          0,
		Level:       1,
		CreatedAt:   now,
		LastLoginAt: now,
	}
}

// LevelForXP is one level per thousand XP, starting at level 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/xpPerLevel + 1
}

// XPToNextLevel is the XP total at which the given level ends.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * xpPerLevel
}

// DisplayName picks the greeting name: the profile name, else the local part
// of the email, else "Student".
func DisplayName(p *Profile, email string) string {
	if p != nil && strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	if p != nil && email == "" {
		email = p.Email
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return "Student"
}

// Apply merges the non-nil fields of u into p.
func (u Update) Apply(p *Profile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.XP != nil {
		p.XP = *u.XP
	}
	if u.Level != nil {
		p.Level = *u.Level
	}
	if u.CreatedAt != nil {
		p.CreatedAt = *u.CreatedAt
	}
	if u.LastLoginAt != nil {
		p.LastLoginAt = *u.LastLoginAt
	}
	if u.UpdatedAt != nil {
		p.UpdatedAt = *u.UpdatedAt
	}
}

// AwardXP adds points to the user's XP and recomputes the level.
func AwardXP(ctx context.Context, store Store, uid string, points int) (*Profile, error) {
	p, err := store.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Profile{}
	}

	xp := p.XP + points
	level := LevelForXP(xp)
	now := time.Now().UTC()
	if err := store.Merge(ctx, uid, Update{XP: &xp, Level: &level, UpdatedAt: &now}); err != nil {
		return nil, fmt.Errorf("failed to award xp: %w", err)
	}

	p.XP, p.Level, p.UpdatedAt = xp, level, now
	return p, nil
}
