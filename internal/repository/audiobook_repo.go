package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"metaclassroom/internal/database"
	"metaclassroom/internal/models"
)

// AudiobookRepository stores users' audiobook libraries
type AudiobookRepository struct {
	db *database.DB
}

// NewAudiobookRepository creates a new audiobook repository
func NewAudiobookRepository(db *database.DB) *AudiobookRepository {
	return &AudiobookRepository{db: db}
}

// Create inserts a library item and fills in its ID
func (r *AudiobookRepository) Create(book *models.Audiobook) error {
	query := `
		INSERT INTO audiobooks (user_id, title, text, audio_file, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, book.UserID, book.Title, book.Text, book.AudioFile, book.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create audiobook: %w", err)
	}
	book.ID = id
	return nil
}

// SetAudioFile records the rendered audio file name for an item
func (r *AudiobookRepository) SetAudioFile(id int64, file string) error {
	if _, err := r.db.Exec("UPDATE audiobooks SET audio_file = ? WHERE id = ?", file, id); err != nil {
		return fmt.Errorf("failed to update audiobook: %w", err)
	}
	return nil
}

// GetByID retrieves an item owned by userID
func (r *AudiobookRepository) GetByID(userID string, id int64) (*models.Audiobook, error) {
	query := `
		SELECT id, user_id, title, text, audio_file, created_at
		FROM audiobooks
		WHERE id = ? AND user_id = ?
	`
	var book models.Audiobook
	err := r.db.QueryRow(query, id, userID).Scan(&book.ID, &book.UserID, &book.Title, &book.Text, &book.AudioFile, &book.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audiobook: %w", err)
	}
	return &book, nil
}

// ListByUser returns a user's library, newest first
func (r *AudiobookRepository) ListByUser(userID string) ([]models.Audiobook, error) {
	query := `
		SELECT id, user_id, title, text, audio_file, created_at
		FROM audiobooks
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`
	return r.list(query, userID)
}

// ListAll returns every library item, oldest first
func (r *AudiobookRepository) ListAll() ([]models.Audiobook, error) {
	return r.list(`SELECT id, user_id, title, text, audio_file, created_at FROM audiobooks ORDER BY id`)
}

func (r *AudiobookRepository) list(query string, args ...interface{}) ([]models.Audiobook, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audiobooks: %w", err)
	}
	defer rows.Close()

	var books []models.Audiobook
	for rows.Next() {
		var book models.Audiobook
		if err := rows.Scan(&book.ID, &book.UserID, &book.Title, &book.Text, &book.AudioFile, &book.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audiobook: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// Delete removes an item owned by userID and reports whether it existed
func (r *AudiobookRepository) Delete(userID string, id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM audiobooks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete audiobook: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return n > 0, nil
}
