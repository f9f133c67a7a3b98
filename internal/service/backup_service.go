package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"metaclassroom/internal/database"
	"metaclassroom/internal/models"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string                     `json:"version"`
	ExportedAt   time.Time                  `json:"exported_at"`
	DatabaseType string                     `json:"database_type"`
	Users        []UserBackup               `json:"users"`
	Profiles     map[string]profile.Profile `json:"profiles,omitempty"`
	GameResults  []models.GameResult        `json:"game_results"`
	Attendance   []models.AttendanceRecord  `json:"attendance"`
	Audiobooks   []models.Audiobook         `json:"audiobooks"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// profileLister is implemented by profile stores that can enumerate documents.
type profileLister interface {
	List(ctx context.Context) (map[string]profile.Profile, error)
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db         *database.DB
	users      *repository.UserRepository
	results    *repository.GameResultRepository
	attendance *repository.AttendanceRepository
	audiobooks *repository.AudiobookRepository
	profiles   profile.Store
}

// NewBackupService creates a new backup service. Profiles are included when
// the store can list its documents.
func NewBackupService(db *database.DB, profiles profile.Store) *BackupService {
	return &BackupService{
		db:         db,
		users:      repository.NewUserRepository(db),
		results:    repository.NewGameResultRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		audiobooks: repository.NewAudiobookRepository(db),
		profiles:   profiles,
	}
}

// Export writes a complete backup as indented JSON.
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.GetDialect().DriverName(),
	}

	users, err := s.users.GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			ID:            u.ID,
			Email:         u.Email,
			PasswordHash:  u.PasswordHash,
			Name:          u.Name,
			OAuthProvider: u.OAuthProvider,
			OAuthSubject:  u.OAuthSubject,
			CreatedAt:     u.CreatedAt,
			UpdatedAt:     u.UpdatedAt,
		})
	}

	if lister, ok := s.profiles.(profileLister); ok {
		if backup.Profiles, err = lister.List(ctx); err != nil {
			return nil, fmt.Errorf("failed to export profiles: %w", err)
		}
	}
	if backup.GameResults, err = s.results.ListAll(); err != nil {
		return nil, fmt.Errorf("failed to export game results: %w", err)
	}
	if backup.Attendance, err = s.attendance.ListAll(); err != nil {
		return nil, fmt.Errorf("failed to export attendance: %w", err)
	}
	if backup.Audiobooks, err = s.audiobooks.ListAll(); err != nil {
		return nil, fmt.Errorf("failed to export audiobooks: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Info().
		Int("users", len(backup.Users)).
		Int("profiles", len(backup.Profiles)).
		Int("game_results", len(backup.GameResults)).
		Int("attendance", len(backup.Attendance)).
		Int("audiobooks", len(backup.Audiobooks)).
		Msg("database exported")
	return backup, nil
}

// Import restores a backup. Users keep their ids so profiles and results
// stay attached; other rows get fresh ids.
func (s *BackupService) Import(ctx context.Context, r io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	log.Info().Str("version", backup.Version).Time("exported_at", backup.ExportedAt).Msg("importing backup")

	for _, u := range backup.Users {
		err := s.users.ImportUser(models.User{
			ID:            u.ID,
			Email:         u.Email,
			PasswordHash:  u.PasswordHash,
			Name:          u.Name,
			OAuthProvider: u.OAuthProvider,
			OAuthSubject:  u.OAuthSubject,
			CreatedAt:     u.CreatedAt,
			UpdatedAt:     u.UpdatedAt,
		})
		if err != nil {
			return err
		}
	}
	for uid, p := range backup.Profiles {
		if err := s.profiles.Set(ctx, uid, p); err != nil {
			return fmt.Errorf("failed to import profile %s: %w", uid, err)
		}
	}
	for i := range backup.GameResults {
		if err := s.results.Create(&backup.GameResults[i]); err != nil {
			return err
		}
	}
	for i := range backup.Attendance {
		if err := s.attendance.Create(&backup.Attendance[i]); err != nil {
			return err
		}
	}
	for i := range backup.Audiobooks {
		if err := s.audiobooks.Create(&backup.Audiobooks[i]); err != nil {
			return err
		}
	}

	log.Info().Int("users", len(backup.Users)).Msg("database import completed")
	return nil
}

// clearTables lists tables in reverse dependency order.
var clearTables = []string{
	"audiobooks",
	"attendance_records",
	"game_results",
	"profiles",
	"sessions",
	"users",
}

// Clear deletes all application data.
func (s *BackupService) Clear() error {
	return s.db.WithTx(func(tx *database.Tx) error {
		for _, table := range clearTables {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			log.Info().Str("table", table).Msg("cleared table")
		}
		return nil
	})
}
