package classroom

import (
	"cmp"
	"slices"
)

const podiumSize = 3

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId,omitempty"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	GamesPlayed int    `json:"gamesPlayed"`
	WinRate     int    `json:"winRate"`
	Avatar      string `json:"avatar"`
	Level       int    `json:"level"`
	XP          int    `json:"xp"`
	MaxXP       int    `json:"maxXp"`
}

// Leaderboard is the ranked list plus its top three.
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
	Podium  []LeaderboardEntry `json:"podium"`
}

var seededPlayers = []LeaderboardEntry{
	{Name: "GK", Score: 2850, GamesPlayed: 32, WinRate: 89, Level: 12, XP: 850},
	{Name: "Archi", Score: 2730, GamesPlayed: 28, WinRate: 87, Level: 11, XP: 730},
	{Name: "Bakshi", Score: 2650, GamesPlayed: 30, WinRate: 83, Level: 11, XP: 650},
	{Name: "Aaditya", Score: 2480, GamesPlayed: 25, WinRate: 82, Level: 10, XP: 480},
	{Name: "Mahi", Score: 2390, GamesPlayed: 27, WinRate: 79, Level: 10, XP: 390},
	{Name: "Rahul", Score: 2210, GamesPlayed: 24, WinRate: 75, Level: 9, XP: 210},
	{Name: "Krishna", Score: 2150, GamesPlayed: 22, WinRate: 73, Level: 9, XP: 150},
	{Name: "Aarvi", Score: 2080, GamesPlayed: 21, WinRate: 71, Level: 9, XP: 80},
	{Name: "Aarju", Score: 1950, GamesPlayed: 20, WinRate: 68, Level: 8, XP: 950},
	{Name: "Ravi", Score: 1880, GamesPlayed: 19, WinRate: 65, Level: 8, XP: 880},
	{Name: "Aditya", Score: 1750, GamesPlayed: 18, WinRate: 62, Level: 8, XP: 750},
	{Name: "Kishn", Score: 1680, GamesPlayed: 17, WinRate: 59, Level: 7, XP: 680},
}

// LivePlayer is a signed-up user with recorded game results.
type LivePlayer struct {
	UserID      string
	Name        string
	Score       int
	GamesPlayed int
	WinRate     int
	TotalXP     int
	Level       int
}

// BuildLeaderboard merges the seeded class with live players, ranking by
// score (ties by name).
func BuildLeaderboard(live []LivePlayer) Leaderboard {
	entries := make([]LeaderboardEntry, 0, len(seededPlayers)+len(live))
	for _, e := range seededPlayers {
		e.Avatar = avatarFor(e.Name)
		e.MaxXP = 1000
		entries = append(entries, e)
	}
	for _, p := range live {
		level := max(p.Level, 1)
		entries = append(entries, LeaderboardEntry{
			UserID:      p.UserID,
			Name:        p.Name,
			Score:       p.Score,
			GamesPlayed: p.GamesPlayed,
			WinRate:     p.WinRate,
			Avatar:      "🎮",
			Level:       level,
			XP:          max(p.TotalXP-(level-1)*1000, 0),
			MaxXP:       1000,
		})
	}

	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	podium := entries[:min(podiumSize, len(entries))]
	return Leaderboard{Entries: entries, Podium: slices.Clone(podium)}
}
