package classroom

import (
	"metaclassroom/internal/models"
	"metaclassroom/internal/profile"
)

// Stat is one headline tile on the dashboard.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Point is a single sample of a dashboard chart.
type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Activity is a line of the recent activity feed. Score is nil for
// activities that are not scored.
type Activity struct {
	Student  string `json:"student"`
	Activity string `json:"activity"`
	Time     string `json:"time"`
	Score    *int   `json:"score"`
}

type QuickAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Progress is the level card: XP against the XP at which the level ends.
type Progress struct {
	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xpToNextLevel"`
	Percent       int `json:"percent"`
}

// Dashboard is everything the home page renders for one user.
type Dashboard struct {
	Greeting     string              `json:"greeting"`
	Progress     Progress            `json:"progress"`
	Insight      string              `json:"insight"`
	Stats        []Stat              `json:"stats"`
	Performance  []Point             `json:"performance"`
	Activity     []Point             `json:"activity"`
	Recent       []Activity          `json:"recent"`
	QuickActions []QuickAction       `json:"quickActions"`
	MyResults    []models.GameResult `json:"myResults"`
}

func score(n int) *int { return &n }

// BuildDashboard assembles the home page. p may be nil for users whose
// profile has not been written yet.
func BuildDashboard(p *profile.Profile, email string, results []models.GameResult) Dashboard {
	if results == nil {
		results = []models.GameResult{}
	}
	return Dashboard{
		Greeting: "Welcome back, " + profile.DisplayName(p, email),
		Progress: ProgressFor(p),
		Insight:  "AI Powered SmartBoard",
		Stats: []Stat{
			{Label: "Active Students", Value: "12"},
			{Label: "Avg. Performance", Value: "85%"},
			{Label: "Games Completed", Value: "48"},
			{Label: "Classes Today", Value: "3"},
		},
		Performance: []Point{
			{"Mon", 65}, {"Tue", 72}, {"Wed", 68}, {"Thu", 78}, {"Fri", 85}, {"Sat", 82}, {"Sun", 88},
		},
		Activity: []Point{
			{"9AM", 2}, {"10AM", 5}, {"11AM", 8}, {"12PM", 6}, {"1PM", 4}, {"2PM", 9}, {"3PM", 7},
		},
		Recent: []Activity{
			{Student: "Bakshi", Activity: "Completed 'Word Morph'", Time: "5m ago", Score: score(95)},
			{Student: "Archi", Activity: "Generated an Audiobook for 'The Great Gatsby'", Time: "12m ago"},
			{Student: "G. Kumar", Activity: "Achieved a new high score in 'QuizRush'", Time: "18m ago", Score: score(100)},
			{Student: "Rahul", Activity: "Solved 'RiddleMe' in under 2 minutes", Time: "23m ago", Score: score(88)},
		},
		QuickActions: []QuickAction{
			{Title: "Start a Game", Description: "Launch AI-powered mind games.", Link: "/api/games"},
			{Title: "Generate Audiobook", Description: "Turn any text into an audio story.", Link: "/api/audiobooks"},
			{Title: "Take Attendance", Description: "Quickly mark student presence.", Link: "/api/attendance"},
		},
		MyResults: results,
	}
}

// ProgressFor computes the level card, defaulting to level 1 with no XP.
func ProgressFor(p *profile.Profile) Progress {
	level, xp := 1, 0
	if p != nil {
		if p.Level > 0 {
			level = p.Level
		}
		xp = max(p.XP, 0)
	}
	next := profile.XPToNextLevel(level)
	return Progress{
		Level:         level,
		XP:            xp,
		XPToNextLevel: next,
		Percent:       min(xp*100/next, 100),
	}
}
