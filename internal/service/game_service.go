package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"metaclassroom/internal/mindgames"
	"metaclassroom/internal/models"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/repository"
)

// ErrUnknownAction is returned for an action name no game understands.
var ErrUnknownAction = errors.New("unknown game action")

// recordTimeout bounds the profile write made when a session completes.
const recordTimeout = 10 * time.Second

// Action is a player move as posted to the games API. Only the fields the
// named action reads need to be set.
type Action struct {
	Word    string `json:"word"`
	Answer  string `json:"answer"`
	Stroke  string `json:"stroke"`
	Option  *int   `json:"option"`
	Debater string `json:"debater"`
	Person  string `json:"person"`
	Color   string `json:"color"`
}

// GameService routes player actions to the hub and records completed
// sessions.
type GameService struct {
	hub      *mindgames.Hub
	results  *repository.GameResultRepository
	profiles profile.Store
}

// NewGameService registers the completion hook on hub.
func NewGameService(hub *mindgames.Hub, results *repository.GameResultRepository, profiles profile.Store) *GameService {
	s := &GameService{hub: hub, results: results, profiles: profiles}
	hub.OnComplete(s.record)
	return s
}

// Catalog lists the games that can be started.
func (s *GameService) Catalog() []mindgames.Info {
	return mindgames.Catalog()
}

// Start begins a new session of game for the user.
func (s *GameService) Start(userID, game string) (mindgames.Outcome, error) {
	id, err := mindgames.ParseGameID(game)
	if err != nil {
		return mindgames.Outcome{}, err
	}
	return s.hub.Controller(userID).Start(id)
}

// Current returns the user's session, or nil before a game is selected.
func (s *GameService) Current(userID string) *mindgames.Session {
	return s.hub.Controller(userID).Current()
}

// Quit abandons the current session.
func (s *GameService) Quit(userID string) {
	s.hub.Controller(userID).Reset()
}

// Perform applies the named action to the user's session.
func (s *GameService) Perform(userID, name string, a Action) (mindgames.Outcome, error) {
	c := s.hub.Controller(userID)
	switch name {
	case "word":
		return c.SubmitWord(a.Word)
	case "answer":
		return c.SubmitAnswer(a.Answer)
	case "hint":
		return c.Hint()
	case "stroke":
		return c.AddStroke(a.Stroke)
	case "clear":
		return c.ClearDrawing()
	case "drawing":
		return c.SubmitDrawing()
	case "option":
		if a.Option == nil {
			return mindgames.Outcome{}, mindgames.ErrInvalidOption
		}
		return c.SelectOption(*a.Option)
	case "vote":
		return c.Vote(a.Debater)
	case "cell":
		return c.SetCell(a.Person, a.Color)
	case "check":
		return c.CheckSolution()
	}
	return mindgames.Outcome{}, fmt.Errorf("%w: %s", ErrUnknownAction, name)
}

// Results returns the user's most recent completed games.
func (s *GameService) Results(userID string, limit int) ([]models.GameResult, error) {
	return s.results.ListByUser(userID, limit)
}

// record stores a completed session and awards its score as XP. It runs on
// the goroutine that completed the session, outside the controller lock.
func (s *GameService) record(userID string, sess mindgames.Session) {
	completed := time.Now().UTC()
	if sess.CompletedAt != nil {
		completed = *sess.CompletedAt
	}

	result := &models.GameResult{
		UserID:      userID,
		GameID:      string(sess.Game),
		Score:       sess.Score,
		HintsUsed:   sess.HintsUsed,
		StartedAt:   sess.StartedAt,
		CompletedAt: completed,
	}
	if err := s.results.Create(result); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("game", string(sess.Game)).Msg("failed to record game result")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	p, err := profile.AwardXP(ctx, s.profiles, userID, sess.Score)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to award xp")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("game", string(sess.Game)).
		Int("score", sess.Score).
		Int("xp", p.XP).
		Int("level", p.Level).
		Msg("game completed")
}
