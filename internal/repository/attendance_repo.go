package repository

import (
	"fmt"
	"strings"

	"metaclassroom/internal/database"
	"metaclassroom/internal/models"
)

// AttendanceRepository stores saved attendance sheets
type AttendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create stores a snapshot and fills in its ID
func (r *AttendanceRepository) Create(rec *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (user_id, class_date, total, present, rate, absent_names, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, rec.UserID, rec.ClassDate, rec.Total, rec.Present, rec.Rate,
		strings.Join(rec.AbsentNames, ","), rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	rec.ID = id
	return nil
}

// ListByUser returns the records saved by a user, newest first
func (r *AttendanceRepository) ListByUser(userID string) ([]models.AttendanceRecord, error) {
	query := `
		SELECT id, user_id, class_date, total, present, rate, absent_names, created_at
		FROM attendance_records
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`
	return r.list(query, userID)
}

// ListAll returns every record, oldest first
func (r *AttendanceRepository) ListAll() ([]models.AttendanceRecord, error) {
	query := `
		SELECT id, user_id, class_date, total, present, rate, absent_names, created_at
		FROM attendance_records
		ORDER BY id
	`
	return r.list(query)
}

func (r *AttendanceRepository) list(query string, args ...interface{}) ([]models.AttendanceRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		var absent string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ClassDate, &rec.Total, &rec.Present, &rec.Rate, &absent, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		rec.AbsentNames = []string{}
		if absent != "" {
			rec.AbsentNames = strings.Split(absent, ",")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
