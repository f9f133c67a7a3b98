// Package mindgames holds the per-player session state machine behind the
// classroom mind games.
package mindgames

import (
	"errors"
	"strings"
	"time"
)

// GameID identifies one of the six mind games.
type GameID string

const (
	WordMorph   GameID = "word-morph"
	RiddleMe    GameID = "riddle-me"
	QuickDrawAI GameID = "quickdraw-ai"
	LogicGrid   GameID = "logic-grid"
	AIDebate    GameID = "ai-debate"
	QuizRush    GameID = "quiz-rush"
)

// Stage is the coarse lifecycle state of a session.
type Stage string

const (
	StageIntro     Stage = "intro"
	StagePlaying   Stage = "playing"
	StageHint      Stage = "hint"
	StageCompleted Stage = "completed"
)

var (
	ErrUnknownGame       = errors.New("unknown game")
	ErrInvalidMove       = errors.New("invalid move")
	ErrNoHintsLeft       = errors.New("no hints left")
	ErrUnsupportedAction = errors.New("action not supported by this game")
	ErrEmptyDrawing      = errors.New("drawing is empty")
	ErrAdvancePending    = errors.New("waiting for the next round")
	ErrInvalidOption     = errors.New("invalid option")
	ErrAlreadyCompleted  = errors.New("game already completed")
	ErrNoSession         = errors.New("no game in progress")
	ErrWrongGame         = errors.New("action belongs to a different game")
)

// IsValidation reports whether err is a rejected player action. Validation
// errors never mutate the session.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrUnknownGame, ErrInvalidMove, ErrNoHintsLeft, ErrUnsupportedAction,
		ErrEmptyDrawing, ErrAdvancePending, ErrInvalidOption, ErrAlreadyCompleted,
		ErrNoSession, ErrWrongGame,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Info describes a game for the selection screen.
type Info struct {
	ID          GameID   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  []string `json:"difficulty,omitempty"`
}

var catalog = []Info{
	{ID: WordMorph, Title: "Word Morph", Description: "Transform one word into another through logical steps", Difficulty: []string{"easy", "medium", "hard"}},
	{ID: RiddleMe, Title: "RiddleMe", Description: "Solve AI-generated riddles with progressive hints"},
	{ID: QuickDrawAI, Title: "QuickDraw AI", Description: "Draw and let AI guess your sketches in real-time"},
	{ID: LogicGrid, Title: "Logic Grid", Description: "Solve complex logic puzzles with multiple categories"},
	{ID: AIDebate, Title: "AI Debate", Description: "Watch AI debaters argue and vote for the most convincing"},
	{ID: QuizRush, Title: "QuizRush", Description: "Fast-paced quiz with instant AI scoring and explanations"},
}

// Catalog lists the available games in display order.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// ParseGameID validates a raw identifier.
func ParseGameID(raw string) (GameID, error) {
	id := GameID(strings.TrimSpace(raw))
	for _, info := range catalog {
		if info.ID == id {
			return id, nil
		}
	}
	return "", ErrUnknownGame
}

// Title returns the display name of the game.
func (g GameID) Title() string {
	for _, info := range catalog {
		if info.ID == g {
			return info.Title
		}
	}
	return string(g)
}

// Session is one in-progress or completed attempt at a game.
type Session struct {
	Game        GameID     `json:"gameId"`
	Stage       Stage      `json:"stage"`
	Score       int        `json:"score"`
	HintsUsed   int        `json:"hintsUsed"`
	Payload     Payload    `json:"payload"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (s *Session) clone() Session {
	c := *s
	if s.Payload != nil {
		c.Payload = s.Payload.clone()
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// award adds points, never lowering the running score.
func (s *Session) award(points int) {
	if points > 0 {
		s.Score += points
	}
}
