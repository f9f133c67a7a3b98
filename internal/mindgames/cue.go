package mindgames

import "time"

// Cue names a short audio tone the client plays after an action.
type Cue string

const (
	CueSuccess  Cue = "success"
	CueError    Cue = "error"
	CueClick    Cue = "click"
	CueComplete Cue = "complete"
)

// Tone is the synthesis recipe for a cue.
type Tone struct {
	FrequencyHz float64       `json:"frequencyHz"`
	Gain        float64       `json:"gain"`
	Duration    time.Duration `json:"duration"`
}

const cueDuration = 300 * time.Millisecond

// Tone returns the oscillator settings for the cue.
func (c Cue) Tone() Tone {
	switch c {
	case CueSuccess:
		return Tone{FrequencyHz: 800, Gain: 0.1, Duration: cueDuration}
	case CueError:
		return Tone{FrequencyHz: 300, Gain: 0.1, Duration: cueDuration}
	case CueComplete:
		return Tone{FrequencyHz: 523.25, Gain: 0.1, Duration: cueDuration}
	case CueClick:
		return Tone{FrequencyHz: 600, Gain: 0.05, Duration: cueDuration}
	}
	return Tone{}
}

// Notice is a transient toast shown to the player.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive,omitempty"`
}

// Outcome is returned by every controller action.
type Outcome struct {
	Session *Session `json:"session,omitempty"`
	Cue     Cue      `json:"cue,omitempty"`
	Notice  *Notice  `json:"notice,omitempty"`
}
