package repository

import (
	"fmt"
	"time"

	"metaclassroom/internal/database"
	"metaclassroom/internal/models"
)

// GameResultRepository stores completed mind game sessions
type GameResultRepository struct {
	db *database.DB
}

// NewGameResultRepository creates a new game result repository
func NewGameResultRepository(db *database.DB) *GameResultRepository {
	return &GameResultRepository{db: db}
}

// Create records a completed session and fills in its ID
func (r *GameResultRepository) Create(result *models.GameResult) error {
	query := `
		INSERT INTO game_results (user_id, game_id, score, hints_used, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, result.UserID, result.GameID, result.Score, result.HintsUsed,
		result.StartedAt.UTC(), result.CompletedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create game result: %w", err)
	}
	result.ID = id
	return nil
}

// ListByUser returns a user's results, most recent first
func (r *GameResultRepository) ListByUser(userID string, limit int) ([]models.GameResult, error) {
	query := `
		SELECT id, user_id, game_id, score, hints_used, started_at, completed_at
		FROM game_results
		WHERE user_id = ?
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`
	return r.list(query, userID, limit)
}

// ListAll returns every stored result, oldest first
func (r *GameResultRepository) ListAll() ([]models.GameResult, error) {
	query := `
		SELECT id, user_id, game_id, score, hints_used, started_at, completed_at
		FROM game_results
		ORDER BY id
	`
	return r.list(query)
}

func (r *GameResultRepository) list(query string, args ...interface{}) ([]models.GameResult, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer rows.Close()

	var results []models.GameResult
	for rows.Next() {
		var gr models.GameResult
		if err := rows.Scan(&gr.ID, &gr.UserID, &gr.GameID, &gr.Score, &gr.HintsUsed, &gr.StartedAt, &gr.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		results = append(results, gr)
	}
	return results, rows.Err()
}

// Totals aggregates score and game counts per player
func (r *GameResultRepository) Totals() ([]models.PlayerTotals, error) {
	query := `
		SELECT user_id, SUM(score), COUNT(*), SUM(CASE WHEN score > 0 THEN 1 ELSE 0 END)
		FROM game_results
		GROUP BY user_id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate game results: %w", err)
	}
	defer rows.Close()

	var totals []models.PlayerTotals
	for rows.Next() {
		var t models.PlayerTotals
		if err := rows.Scan(&t.UserID, &t.TotalScore, &t.GamesPlayed, &t.GamesWon); err != nil {
			return nil, fmt.Errorf("failed to scan player totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// CountSince counts a user's results completed at or after since
func (r *GameResultRepository) CountSince(userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM game_results WHERE user_id = ? AND completed_at >= ?", userID, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count game results: %w", err)
	}
	return count, nil
}
