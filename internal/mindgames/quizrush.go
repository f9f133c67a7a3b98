package mindgames

import "fmt"

const quizPoints = 10

// SelectOption answers the current quiz question. The next question, or
// completion after the last one, follows after the quiz delay.
func (c *Controller) SelectOption(index int) (Outcome, error) {
	if index < 0 || index > 3 {
		return Outcome{}, fmt.Errorf("%w: option %d", ErrInvalidOption, index)
	}

	return c.act(QuizRush, func(s *Session) (Outcome, error) {
		p := s.Payload.(*QuizState)
		if p.SelectedAnswer != nil || c.pending != nil {
			return Outcome{}, ErrAdvancePending
		}

		q := p.Questions[p.CurrentQuestion]
		p.SelectedAnswer = &index

		out := Outcome{
			Cue:    CueError,
			Notice: &Notice{Title: "Not quite", Description: q.Explanation, Destructive: true},
		}
		if index == q.Correct {
			p.Score += quizPoints
			s.award(quizPoints)
			out.Cue = CueSuccess
			out.Notice = &Notice{Title: "Correct!", Description: q.Explanation}
		}

		c.deferLocked(c.quizDelay, nextQuestion)
		return out, nil
	})
}

func nextQuestion(s *Session) {
	p := s.Payload.(*QuizState)
	if p.CurrentQuestion >= len(p.Questions)-1 {
		s.Stage = StageCompleted
		return
	}
	p.CurrentQuestion++
	p.SelectedAnswer = nil
}
