package mindgames

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	quickDrawPoints    = 25
	quickDrawThreshold = 0.6
	unknownGuess       = "UNKNOWN"
)

// AddStroke appends a path command ("M x y" or "L x y") to the drawing.
func (c *Controller) AddStroke(cmd string) (Outcome, error) {
	cmd = strings.TrimSpace(cmd)
	if err := validateStroke(cmd); err != nil {
		return Outcome{}, err
	}

	return c.act(QuickDrawAI, func(s *Session) (Outcome, error) {
		if c.pending != nil {
			return Outcome{}, ErrAdvancePending
		}
		p := s.Payload.(*QuickDrawState)
		p.Drawing = append(p.Drawing, cmd)
		return Outcome{}, nil
	})
}

// ClearDrawing wipes the canvas for the current round.
func (c *Controller) ClearDrawing() (Outcome, error) {
	return c.act(QuickDrawAI, func(s *Session) (Outcome, error) {
		if c.pending != nil {
			return Outcome{}, ErrAdvancePending
		}
		s.Payload.(*QuickDrawState).Drawing = []string{}
		return Outcome{Cue: CueClick}, nil
	})
}

// SubmitDrawing lets the "AI" guess the drawing. The guess is a coin flip
// weighted by quickDrawThreshold; the strokes themselves are not inspected.
// The next round, or completion after the last one, follows after the
// QuickDraw delay.
func (c *Controller) SubmitDrawing() (Outcome, error) {
	return c.act(QuickDrawAI, func(s *Session) (Outcome, error) {
		if c.pending != nil {
			return Outcome{}, ErrAdvancePending
		}
		p := s.Payload.(*QuickDrawState)
		if len(p.Drawing) == 0 {
			return Outcome{}, ErrEmptyDrawing
		}

		correct := c.rng.Float64() > quickDrawThreshold
		out := Outcome{
			Cue: CueError,
			Notice: &Notice{
				Title:       "AI Couldn't Guess",
				Description: "Try drawing more clearly next round!",
			},
		}
		p.AIGuess = unknownGuess
		if correct {
			p.AIGuess = p.WordToDraw
			p.Score += quickDrawPoints
			s.award(quickDrawPoints)
			out.Cue = CueSuccess
			out.Notice = &Notice{
				Title:       "AI Guessed Correctly!",
				Description: fmt.Sprintf("The AI recognized your %s!", strings.ToLower(p.WordToDraw)),
			}
		}

		c.deferLocked(c.quickDrawDelay, c.nextDrawRound)
		return out, nil
	})
}

func (c *Controller) nextDrawRound(s *Session) {
	p := s.Payload.(*QuickDrawState)
	if p.Round >= quickDrawRounds {
		s.Stage = StageCompleted
		return
	}
	p.WordToDraw = drawableWords[c.rng.Intn(len(drawableWords))]
	p.Timer = quickDrawTimer
	p.Drawing = []string{}
	p.AIGuess = ""
	p.Round++
}

func validateStroke(cmd string) error {
	fields := strings.Fields(cmd)
	if len(fields) != 3 || (fields[0] != "M" && fields[0] != "L") {
		return fmt.Errorf("%w: stroke must look like \"M x y\" or \"L x y\"", ErrInvalidMove)
	}
	for _, f := range fields[1:] {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return fmt.Errorf("%w: bad stroke coordinate %q", ErrInvalidMove, f)
		}
	}
	return nil
}
