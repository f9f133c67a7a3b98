package mindgames

import (
	"fmt"
	"slices"
)

const logicGridPoints = 75

// SetCell assigns a colour to a person in the player's grid.
func (c *Controller) SetCell(person, color string) (Outcome, error) {
	return c.act(LogicGrid, func(s *Session) (Outcome, error) {
		p := s.Payload.(*LogicGridState)
		if !slices.Contains(p.People, person) {
			return Outcome{}, fmt.Errorf("%w: unknown person %q", ErrInvalidOption, person)
		}
		if !slices.Contains(p.Colors, color) {
			return Outcome{}, fmt.Errorf("%w: unknown color %q", ErrInvalidOption, color)
		}
		p.PlayerSolution[person] = color
		return Outcome{Cue: CueClick}, nil
	})
}

// CheckSolution ends the puzzle with a flat award. The grid is not compared
// with the answer key; SolutionMatches exposes that comparison for display.
func (c *Controller) CheckSolution() (Outcome, error) {
	return c.act(LogicGrid, func(s *Session) (Outcome, error) {
		p := s.Payload.(*LogicGridState)
		s.Stage = StageCompleted
		s.Score = max(s.Score, logicGridPoints)

		desc := "Puzzle complete!"
		if !p.SolutionMatches() {
			desc = "Puzzle complete! Some of your answers differ from the key."
		}
		return Outcome{
			Cue:    CueComplete,
			Notice: &Notice{Title: "Solution Checked", Description: desc},
		}, nil
	})
}

// SolutionMatches reports whether the player's grid equals the answer key.
func (c *Controller) SolutionMatches() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return false, ErrNoSession
	}
	p, ok := c.session.Payload.(*LogicGridState)
	if !ok {
		return false, ErrWrongGame
	}
	return p.SolutionMatches(), nil
}
