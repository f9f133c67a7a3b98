package mindgames

import (
	"fmt"
	"strings"
)

const (
	riddleBasePoints  = 50
	riddleHintPenalty = 10
)

// SubmitAnswer checks a riddle answer, ignoring case and surrounding space.
// A wrong answer only counts the attempt.
func (c *Controller) SubmitAnswer(answer string) (Outcome, error) {
	answer = strings.ToUpper(strings.TrimSpace(answer))

	return c.act(RiddleMe, func(s *Session) (Outcome, error) {
		p := s.Payload.(*RiddleState)

		if answer != strings.ToUpper(p.Answer) {
			p.Attempts++
			return Outcome{
				Cue: CueError,
				Notice: &Notice{
					Title:       "Try Again",
					Description: fmt.Sprintf("Attempts: %d", p.Attempts),
					Destructive: true,
				},
			}, nil
		}

		p.Solved = true
		s.Stage = StageCompleted
		s.award(riddleAward(s.HintsUsed))
		return Outcome{
			Cue:    CueComplete,
			Notice: &Notice{Title: "Correct!", Description: "You solved the riddle!"},
		}, nil
	})
}

// riddleAward is 50 less 10 per hint, floored at zero.
func riddleAward(hintsUsed int) int {
	return max(0, riddleBasePoints-riddleHintPenalty*hintsUsed)
}

// Hint reveals the next unused riddle hint.
func (c *Controller) Hint() (Outcome, error) {
	return c.run(RiddleMe, ErrUnsupportedAction, func(s *Session) (Outcome, error) {
		p := s.Payload.(*RiddleState)
		if s.HintsUsed >= len(p.Hints) {
			return Outcome{}, ErrNoHintsLeft
		}

		hint := p.Hints[s.HintsUsed]
		p.Revealed = append(p.Revealed, hint)
		s.HintsUsed++
		s.Stage = StageHint
		return Outcome{
			Cue:    CueClick,
			Notice: &Notice{Title: fmt.Sprintf("Hint %d", s.HintsUsed), Description: hint},
		}, nil
	})
}
