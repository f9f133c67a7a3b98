package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solarSystem = "Our solar system consists of the Sun and everything bound to it by gravity. The eight planets are Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, and Neptune. There are also dwarf planets like Pluto, numerous moons, and millions of asteroids, comets, and meteoroids. The solar system formed about 4.6 billion years ago from a giant cloud of gas and dust."

func TestChunkText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"empty", "   ", 200, nil},
		{"single sentence", "Hello there.", 200, []string{"Hello there."}},
		{"sentences packed", "One. Two. Three.", 9, []string{"One. Two.", "Three."}},
		{"long sentence split on words", "alpha beta gamma delta", 11, []string{"alpha beta", "gamma delta"}},
		{"word longer than limit", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"whitespace collapsed", "a\n\n b\t c", 200, []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkText(tt.text, tt.limit))
		})
	}
}

func TestChunkTextKeepsAllText(t *testing.T) {
	chunks := ChunkText(solarSystem, MaxChunk)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), MaxChunk)
	}
	assert.Equal(t, solarSystem, strings.Join(chunks, " "))
}

func TestGenerateAudioFileWithPrefix(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		assert.Equal(t, "0.8", q.Get("ttsspeed"))
		assert.Equal(t, "en", q.Get("tl"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("mp3:" + q.Get("idx") + ";"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewTTSService(dir, true, WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))

	name, err := s.GenerateAudioFileWithPrefix(context.Background(), solarSystem, "Audiobook 7")
	require.NoError(t, err)
	assert.Equal(t, "audiobook_7.mp3", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	chunks := len(ChunkText(solarSystem, MaxChunk))
	assert.EqualValues(t, chunks, calls.Load())
	assert.True(t, strings.HasPrefix(string(data), "mp3:0;mp3:1;"))

	// Existing files are reused.
	_, err = s.GenerateAudioFileWithPrefix(context.Background(), solarSystem, "Audiobook 7")
	require.NoError(t, err)
	assert.EqualValues(t, chunks, calls.Load())

	require.NoError(t, s.DeleteAudioFile(name))
	require.NoError(t, s.DeleteAudioFile(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateAudioFileUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewTTSService(dir, true, WithEndpoint(srv.URL))

	_, err := s.GenerateAudioFileWithPrefix(context.Background(), "Hello.", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 429")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSpeechUnavailable(t *testing.T) {
	s := NewTTSService(t.TempDir(), false)

	assert.ErrorIs(t, s.Available(), ErrSpeechUnavailable)
	_, err := s.GenerateAudioFileWithPrefix(context.Background(), "Hello.", "x")
	assert.ErrorIs(t, err, ErrSpeechUnavailable)
}

func TestAvailableCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "audio")
	s := NewTTSService(dir, true)
	require.NoError(t, s.Available())
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}
