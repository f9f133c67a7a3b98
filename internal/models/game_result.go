package models

import "time"

// GameResult is a completed mind game session
type GameResult struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	GameID      string    `json:"gameId"`
	Score       int       `json:"score"`
	HintsUsed   int       `json:"hintsUsed"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// PlayerTotals aggregates a player's game results
type PlayerTotals struct {
	UserID      string
	TotalScore  int
	GamesPlayed int
	GamesWon    int
}

// WinRate is the share of games that earned points, as a whole percent
func (p PlayerTotals) WinRate() int {
	if p.GamesPlayed == 0 {
		return 0
	}
	return p.GamesWon * 100 / p.GamesPlayed
}
