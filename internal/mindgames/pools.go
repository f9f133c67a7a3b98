package mindgames

type wordPair struct {
	start, target, difficulty string
}

var wordPairs = []wordPair{
	{"COLD", "WARM", "easy"},
	{"CAT", "DOG", "easy"},
	{"LEAD", "GOLD", "medium"},
	{"WHEAT", "BREAD", "hard"},
	{"NIGHT", "DAY", "easy"},
}

const wordMorphMaxSteps = 6

type riddle struct {
	text   string
	answer string
	hints  []string
}

var riddles = []riddle{
	{
		text:   "I speak without a mouth and hear without ears. I have no body, but I come alive with the wind. What am I?",
		answer: "AN ECHO",
		hints: []string{
			"You often hear me in mountains or empty halls",
			"I repeat what you say",
			"I'm a sound phenomenon",
		},
	},
	{
		text:   "The more you take, the more you leave behind. What am I?",
		answer: "FOOTSTEPS",
		hints: []string{
			"You create me when you walk",
			"I'm often found on sandy beaches",
			"Each step makes more of me",
		},
	},
}

var drawableWords = []string{"HOUSE", "TREE", "CAT", "SUN", "CAR", "FISH", "BOOK", "APPLE"}

const (
	quickDrawTimer  = 30
	quickDrawRounds = 3
)

const logicGridPuzzle = "Four friends - Alice, Bob, Charlie, and Diana - have different favorite colors: " +
	"Red, Blue, Green, and Yellow. Use the clues to determine who likes which color."

var (
	logicGridPeople = []string{"Alice", "Bob", "Charlie", "Diana"}
	logicGridColors = []string{"Red", "Blue", "Green", "Yellow"}
	logicGridClues  = []string{
		"Alice doesn't like Red or Blue",
		"Bob's favorite color isn't Green",
		"Charlie likes either Blue or Yellow",
		"Diana's favorite color comes after Green in the rainbow",
	}
	logicGridSolution = map[string]string{
		"Alice":   "Green",
		"Bob":     "Red",
		"Charlie": "Blue",
		"Diana":   "Yellow",
	}
)

var debateTopics = []string{
	"Should students have homework?",
	"Is artificial intelligence good for education?",
	"Should video games be considered a sport?",
	"Is reading books better than watching movies?",
}

func debaters() (Debater, Debater) {
	larry := Debater{
		Name:     "Logic Larry",
		Position: "For",
		Points: []string{
			"Promotes independent learning and practice",
			"Reinforces classroom lessons",
			"Teaches time management skills",
		},
	}
	fiona := Debater{
		Name:     "Freedom Fiona",
		Position: "Against",
		Points: []string{
			"Students need time for extracurricular activities",
			"Can cause unnecessary stress and burnout",
			"Not all students have equal resources at home",
		},
	}
	return larry, fiona
}

var quizQuestions = []Question{
	{
		Text:        "What is the capital of France?",
		Options:     [4]string{"London", "Berlin", "Paris", "Madrid"},
		Correct:     2,
		Explanation: "Paris is the capital and most populous city of France.",
	},
	{
		Text:        "Which planet is known as the Red Planet?",
		Options:     [4]string{"Venus", "Mars", "Jupiter", "Saturn"},
		Correct:     1,
		Explanation: "Mars appears red due to iron oxide (rust) on its surface.",
	},
	{
		Text:        "What is the largest mammal in the world?",
		Options:     [4]string{"Elephant", "Blue Whale", "Giraffe", "Polar Bear"},
		Correct:     1,
		Explanation: "The blue whale is the largest animal known to have ever existed.",
	},
}

// newPayload synthesizes the opening state for a game.
func newPayload(game GameID, rng Rand) Payload {
	switch game {
	case WordMorph:
		pair := wordPairs[rng.Intn(len(wordPairs))]
		return &WordMorphState{
			StartWord:   pair.start,
			TargetWord:  pair.target,
			CurrentWord: pair.start,
			Steps:       []string{pair.start},
			MaxSteps:    wordMorphMaxSteps,
			Difficulty:  pair.difficulty,
		}
	case RiddleMe:
		r := riddles[rng.Intn(len(riddles))]
		return &RiddleState{
			Riddle:   r.text,
			Answer:   r.answer,
			Hints:    append([]string(nil), r.hints...),
			Revealed: []string{},
		}
	case QuickDrawAI:
		return &QuickDrawState{
			WordToDraw: drawableWords[rng.Intn(len(drawableWords))],
			Timer:      quickDrawTimer,
			Drawing:    []string{},
			Round:      1,
		}
	case LogicGrid:
		return &LogicGridState{
			Puzzle:         logicGridPuzzle,
			Clues:          append([]string(nil), logicGridClues...),
			People:         append([]string(nil), logicGridPeople...),
			Colors:         append([]string(nil), logicGridColors...),
			Solution:       copyMap(logicGridSolution),
			PlayerSolution: map[string]string{},
			Categories:     []string{"People", "Colors"},
		}
	case AIDebate:
		a, b := debaters()
		return &DebateState{
			Topic:    debateTopics[rng.Intn(len(debateTopics))],
			DebaterA: a,
			DebaterB: b,
			Round:    1,
		}
	case QuizRush:
		return &QuizState{
			Questions: append([]Question(nil), quizQuestions...),
		}
	}
	return nil
}
