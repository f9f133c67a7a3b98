package mindgames

import (
	"fmt"
	"strings"
)

const (
	wordMorphStepPoints     = 10
	wordMorphCompletePoints = 100
)

// SubmitWord plays the next word of a Word Morph chain. The word must have
// the same length as the current word and differ in exactly one position.
// Blank input is ignored.
func (c *Controller) SubmitWord(word string) (Outcome, error) {
	word = strings.ToUpper(strings.TrimSpace(word))

	return c.act(WordMorph, func(s *Session) (Outcome, error) {
		p := s.Payload.(*WordMorphState)
		if word == "" {
			return Outcome{}, nil
		}

		if len(word) != len(p.CurrentWord) {
			return invalidMove("Word must be the same length")
		}
		if hamming(word, p.CurrentWord) != 1 {
			return invalidMove("Only change one letter at a time")
		}

		p.Steps = append(p.Steps, word)
		p.CurrentWord = word

		if word != p.TargetWord {
			s.award(wordMorphStepPoints)
			return Outcome{Cue: CueSuccess}, nil
		}

		s.award(wordMorphCompletePoints)
		s.Stage = StageCompleted
		return Outcome{
			Cue: CueComplete,
			Notice: &Notice{
				Title:       "Congratulations!",
				Description: fmt.Sprintf("You transformed %s to %s in %d steps!", p.StartWord, p.TargetWord, len(p.Steps)-1),
			},
		}, nil
	})
}

func invalidMove(reason string) (Outcome, error) {
	return Outcome{
		Cue:    CueError,
		Notice: &Notice{Title: "Invalid Move", Description: reason, Destructive: true},
	}, fmt.Errorf("%w: %s", ErrInvalidMove, strings.ToLower(reason))
}

// hamming counts differing byte positions of two equal-length strings.
func hamming(a, b string) int {
	n := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
