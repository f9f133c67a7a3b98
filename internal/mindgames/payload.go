package mindgames

// Payload is the game-specific part of a session. It is implemented only by
// the state types in this package.
type Payload interface {
	Game() GameID
	clone() Payload
}

type WordMorphState struct {
	StartWord   string   `json:"startWord"`
	TargetWord  string   `json:"targetWord"`
	CurrentWord string   `json:"currentWord"`
	Steps       []string `json:"steps"`
	MaxSteps    int      `json:"maxSteps"`
	Difficulty  string   `json:"difficulty"`
}

func (p *WordMorphState) Game() GameID { return WordMorph }

func (p *WordMorphState) clone() Payload {
	c := *p
	c.Steps = append([]string(nil), p.Steps...)
	return &c
}

// RiddleState keeps the answer and the full hint list server side; only
// revealed hints are serialized.
type RiddleState struct {
	Riddle   string   `json:"riddle"`
	Answer   string   `json:"-"`
	Hints    []string `json:"-"`
	Revealed []string `json:"revealed"`
	Attempts int      `json:"attempts"`
	Solved   bool     `json:"solved"`
}

func (p *RiddleState) Game() GameID { return RiddleMe }

func (p *RiddleState) clone() Payload {
	c := *p
	c.Hints = append([]string(nil), p.Hints...)
	c.Revealed = append([]string(nil), p.Revealed...)
	return &c
}

type QuickDrawState struct {
	WordToDraw string   `json:"wordToDraw"`
	Timer      int      `json:"timer"`
	Drawing    []string `json:"drawing"`
	AIGuess    string   `json:"aiGuess"`
	Round      int      `json:"round"`
	Score      int      `json:"score"`
}

func (p *QuickDrawState) Game() GameID { return QuickDrawAI }

func (p *QuickDrawState) clone() Payload {
	c := *p
	c.Drawing = append([]string(nil), p.Drawing...)
	return &c
}

type LogicGridState struct {
	Puzzle         string            `json:"puzzle"`
	Clues          []string          `json:"clues"`
	People         []string          `json:"people"`
	Colors         []string          `json:"colors"`
	Solution       map[string]string `json:"-"`
	PlayerSolution map[string]string `json:"playerSolution"`
	Categories     []string          `json:"categories"`
}

func (p *LogicGridState) Game() GameID { return LogicGrid }

func (p *LogicGridState) clone() Payload {
	c := *p
	c.Clues = append([]string(nil), p.Clues...)
	c.People = append([]string(nil), p.People...)
	c.Colors = append([]string(nil), p.Colors...)
	c.Categories = append([]string(nil), p.Categories...)
	c.Solution = copyMap(p.Solution)
	c.PlayerSolution = copyMap(p.PlayerSolution)
	return &c
}

// SolutionMatches compares the player's grid with the answer key.
func (p *LogicGridState) SolutionMatches() bool {
	if len(p.PlayerSolution) != len(p.Solution) {
		return false
	}
	for person, color := range p.Solution {
		if p.PlayerSolution[person] != color {
			return false
		}
	}
	return true
}

type Debater struct {
	Name     string   `json:"name"`
	Position string   `json:"position"`
	Points   []string `json:"points"`
}

type DebateState struct {
	Topic    string  `json:"topic"`
	DebaterA Debater `json:"debaterA"`
	DebaterB Debater `json:"debaterB"`
	UserVote *string `json:"userVote"`
	Round    int     `json:"round"`
}

func (p *DebateState) Game() GameID { return AIDebate }

func (p *DebateState) clone() Payload {
	c := *p
	c.DebaterA.Points = append([]string(nil), p.DebaterA.Points...)
	c.DebaterB.Points = append([]string(nil), p.DebaterB.Points...)
	if p.UserVote != nil {
		v := *p.UserVote
		c.UserVote = &v
	}
	return &c
}

type Question struct {
	Text        string    `json:"question"`
	Options     [4]string `json:"options"`
	Correct     int       `json:"correctAnswer"`
	Explanation string    `json:"explanation"`
}

type QuizState struct {
	Questions       []Question `json:"questions"`
	CurrentQuestion int        `json:"currentQuestion"`
	Score           int        `json:"score"`
	SelectedAnswer  *int       `json:"selectedAnswer"`
}

func (p *QuizState) Game() GameID { return QuizRush }

func (p *QuizState) clone() Payload {
	c := *p
	c.Questions = append([]Question(nil), p.Questions...)
	if p.SelectedAnswer != nil {
		v := *p.SelectedAnswer
		c.SelectedAnswer = &v
	}
	return &c
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
