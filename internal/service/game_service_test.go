package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaclassroom/internal/mindgames"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/repository"
)

func newTestGames(t *testing.T) (*GameService, *profile.MemoryStore, *prometheus.Registry) {
	t.Helper()
	db := openTestDB(t)
	store := profile.NewMemoryStore()
	reg := prometheus.NewRegistry()
	hub := mindgames.NewHub(mindgames.NewMetrics(reg), mindgames.WithRand(fixedRand{draw: 0.9}))
	return NewGameService(hub, repository.NewGameResultRepository(db), store), store, reg
}

func TestGameServiceRecordsCompletedRiddle(t *testing.T) {
	games, store, reg := newTestGames(t)

	_, err := games.Start("7", "riddle-me")
	require.NoError(t, err)

	_, err = games.Perform("7", "hint", Action{})
	require.NoError(t, err)

	out, err := games.Perform("7", "answer", Action{Answer: "  an echo "})
	require.NoError(t, err)
	assert.Equal(t, mindgames.StageCompleted, out.Session.Stage)
	assert.Equal(t, 40, out.Session.Score)

	results, err := games.Results("7", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "riddle-me", results[0].GameID)
	assert.Equal(t, 40, results[0].Score)
	assert.Equal(t, 1, results[0].HintsUsed)

	p, err := store.Get(context.Background(), "7")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 40, p.XP)
	assert.Equal(t, 1, p.Level)

	n, err := testutil.GatherAndCount(reg, "mindgames_sessions_completed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGameServiceAwardsLevels(t *testing.T) {
	games, store, _ := newTestGames(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "8", profile.Profile{Name: "Archi", XP: 980, Level: 1}))

	_, err := games.Start("8", "ai-debate")
	require.NoError(t, err)
	_, err = games.Perform("8", "vote", Action{Debater: "Logic Larry"})
	require.NoError(t, err)

	p, err := store.Get(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, 1030, p.XP)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, "Archi", p.Name)
}

func TestGameServicePerformErrors(t *testing.T) {
	games, _, _ := newTestGames(t)

	_, err := games.Start("9", "chess")
	assert.ErrorIs(t, err, mindgames.ErrUnknownGame)

	_, err = games.Perform("9", "word", Action{Word: "CORD"})
	assert.ErrorIs(t, err, mindgames.ErrNoSession)

	_, err = games.Start("9", "quiz-rush")
	require.NoError(t, err)

	_, err = games.Perform("9", "option", Action{})
	assert.ErrorIs(t, err, mindgames.ErrInvalidOption)

	_, err = games.Perform("9", "dance", Action{})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = games.Perform("9", "word", Action{Word: "CORD"})
	assert.ErrorIs(t, err, mindgames.ErrWrongGame)

	games.Quit("9")
	assert.Nil(t, games.Current("9"))
}
