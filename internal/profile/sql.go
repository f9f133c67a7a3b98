package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"metaclassroom/internal/database"
)

// SQLStore keeps profiles in the profiles table.
type SQLStore struct {
	db *database.DB
}

func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(_ context.Context, uid string) (*Profile, error) {
	return getProfile(s.db, uid)
}

func (s *SQLStore) Set(_ context.Context, uid string, p Profile) error {
	if err := upsertProfile(s.db, uid, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Merge reads, patches and writes the row inside one transaction.
func (s *SQLStore) Merge(_ context.Context, uid string, u Update) error {
	err := s.db.WithTx(func(tx *database.Tx) error {
		p, err := getProfile(tx, uid)
		if err != nil {
			return err
		}
		if p == nil {
			p = &Profile{}
		}
		u.Apply(p)
		return upsertProfile(tx, uid, *p)
	})
	if err != nil {
		return fmt.Errorf("failed to merge profile: %w", err)
	}
	return nil
}

// List returns every stored profile keyed by uid.
func (s *SQLStore) List(_ context.Context) (map[string]Profile, error) {
	rows, err := s.db.Query(`SELECT uid, name, email, xp, level, created_at, last_login_at, updated_at FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Profile)
	for rows.Next() {
		var uid string
		p, err := scanProfile(rows, &uid)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		out[uid] = *p
	}
	return out, rows.Err()
}

func getProfile(q database.DBTX, uid string) (*Profile, error) {
	row := q.QueryRow(`SELECT uid, name, email, xp, level, created_at, last_login_at, updated_at FROM profiles WHERE uid = ?`, uid)
	var got string
	p, err := scanProfile(row, &got)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func scanProfile(row interface{ Scan(...interface{}) error }, uid *string) (*Profile, error) {
	var p Profile
	var created, lastLogin, updated sql.NullTime
	if err := row.Scan(uid, &p.Name, &p.Email, &p.XP, &p.Level, &created, &lastLogin, &updated); err != nil {
		return nil, err
	}
	p.CreatedAt = created.Time
	p.LastLoginAt = lastLogin.Time
	p.UpdatedAt = updated.Time
	return &p, nil
}

func upsertProfile(q database.DBTX, uid string, p Profile) error {
	_, err := q.Exec(q.GetDialect().UpsertProfileQuery(), uid, p.Name, p.Email, p.XP, p.Level,
		nullTime(p.CreatedAt), nullTime(p.LastLoginAt), nullTime(p.UpdatedAt))
	return err
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
