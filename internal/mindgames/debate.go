package mindgames

import (
	"fmt"
	"strings"
)

const debatePoints = 50

// Vote picks the more convincing debater by name and ends the debate.
func (c *Controller) Vote(debater string) (Outcome, error) {
	debater = strings.TrimSpace(debater)

	return c.act(AIDebate, func(s *Session) (Outcome, error) {
		p := s.Payload.(*DebateState)
		if debater != p.DebaterA.Name && debater != p.DebaterB.Name {
			return Outcome{}, fmt.Errorf("%w: unknown debater %q", ErrInvalidOption, debater)
		}

		p.UserVote = &debater
		s.Stage = StageCompleted
		s.Score = max(s.Score, debatePoints)
		return Outcome{
			Cue:    CueComplete,
			Notice: &Notice{Title: "Vote Cast!", Description: fmt.Sprintf("You voted for %s", debater)},
		}, nil
	})
}
