package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaclassroom/internal/audio"
	"metaclassroom/internal/repository"
)

func newTestAudiobooks(t *testing.T, status int) (*AudiobookService, string) {
	t.Helper()
	db := openTestDB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte("mp3"))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	tts := audio.NewTTSService(dir, true, audio.WithEndpoint(srv.URL), audio.WithHTTPClient(srv.Client()))
	return NewAudiobookService(repository.NewAudiobookRepository(db), tts, audio.NewPlayer()), dir
}

func TestAudiobookCreate(t *testing.T) {
	svc, dir := newTestAudiobooks(t, http.StatusOK)

	book, notice, err := svc.Create(context.Background(), "1", "", "  The mitochondria is the powerhouse of the cell.  ")
	require.NoError(t, err)
	assert.Equal(t, "The mitochondria is the powerh...", book.Title)
	assert.Equal(t, "The mitochondria is the powerhouse of the cell.", book.Text)
	assert.Equal(t, "Audiobook Ready! 🎧", notice.Title)
	assert.Equal(t, `"The mitochondria is the powerh..." is ready to listen`, notice.Description)
	assert.Equal(t, "/static/audio/"+book.AudioFile, book.AudioURL())

	_, err = os.Stat(filepath.Join(dir, book.AudioFile))
	require.NoError(t, err)

	library, err := svc.Library("1")
	require.NoError(t, err)
	require.Len(t, library, 1)
	assert.Equal(t, book.AudioFile, library[0].AudioFile)
}

func TestAudiobookCreateRejectsBlankText(t *testing.T) {
	svc, _ := newTestAudiobooks(t, http.StatusOK)

	_, _, err := svc.Create(context.Background(), "1", "Title", " \n\t")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestAudiobookCreateFromTopic(t *testing.T) {
	svc, _ := newTestAudiobooks(t, http.StatusOK)

	book, _, err := svc.CreateFromTopic(context.Background(), "1", "newton-laws")
	require.NoError(t, err)
	assert.Equal(t, "Newton's Laws", book.Title)
	assert.True(t, strings.HasPrefix(book.Text, "Newton's First Law"))

	_, _, err = svc.CreateFromTopic(context.Background(), "1", "volcanoes")
	assert.ErrorIs(t, err, ErrUnknownTopic)
}

func TestAudiobookRenderFailureLeavesNoRow(t *testing.T) {
	svc, _ := newTestAudiobooks(t, http.StatusTooManyRequests)

	_, _, err := svc.Create(context.Background(), "1", "Solar", "The sun is a star.")
	require.Error(t, err)

	library, err := svc.Library("1")
	require.NoError(t, err)
	assert.Empty(t, library)
}

func TestAudiobookUnavailable(t *testing.T) {
	db := openTestDB(t)
	svc := NewAudiobookService(repository.NewAudiobookRepository(db),
		audio.NewTTSService(t.TempDir(), false), audio.NewPlayer())

	_, _, err := svc.Create(context.Background(), "1", "", "Some text.")
	assert.ErrorIs(t, err, audio.ErrSpeechUnavailable)
}

func TestAudiobookPlaybackAndDelete(t *testing.T) {
	svc, dir := newTestAudiobooks(t, http.StatusOK)
	ctx := context.Background()

	first, _, err := svc.Create(ctx, "1", "First", "One small step.")
	require.NoError(t, err)
	second, _, err := svc.Create(ctx, "1", "Second", "One giant leap.")
	require.NoError(t, err)

	pb, err := svc.Play("1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, pb.Playing)
	assert.Zero(t, pb.Replaced)

	pb, err = svc.Play("1", second.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, pb.Replaced)

	// Other users cannot see or play the item.
	_, err = svc.Play("2", second.ID)
	assert.ErrorIs(t, err, ErrAudiobookNotFound)
	assert.ErrorIs(t, svc.Delete("2", second.ID), ErrAudiobookNotFound)

	require.NoError(t, svc.Delete("1", second.ID))
	assert.Zero(t, svc.Stop("1"))
	_, err = os.Stat(filepath.Join(dir, second.AudioFile))
	assert.True(t, os.IsNotExist(err))

	_, err = svc.Play("1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, svc.Stop("1"))

	library, err := svc.Library("1")
	require.NoError(t, err)
	require.Len(t, library, 1)
	assert.Equal(t, first.ID, library[0].ID)
}
