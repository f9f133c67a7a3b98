package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaclassroom/internal/classroom"
	"metaclassroom/internal/service"
)

type errorReply struct {
	Error  string `json:"error"`
	Fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

type gameReply struct {
	Session *struct {
		Game      string `json:"gameId"`
		Stage     string `json:"stage"`
		Score     int    `json:"score"`
		HintsUsed int    `json:"hintsUsed"`
	} `json:"session"`
	Cue    string `json:"cue"`
	Notice *struct {
		Title string `json:"title"`
	} `json:"notice"`
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	id := s.signup(t, "teacher@example.com", "Ms Rao")
	assert.Equal(t, "teacher@example.com", id.User.Email)
	require.NotNil(t, id.Profile)
	assert.Equal(t, "Ms Rao", id.Profile.Name)
	assert.Equal(t, 1, id.Profile.Level)
	assert.NotEmpty(t, id.CSRFToken)

	var me IdentityResponse
	resp := s.do(t, http.MethodGet, "/api/auth/me", nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id.User.ID, me.User.ID)
	assert.Equal(t, id.CSRFToken, me.CSRFToken)

	resp = s.do(t, http.MethodPost, "/api/auth/logout", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var e errorReply
	resp = s.do(t, http.MethodGet, "/api/auth/me", nil, &e)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, ErrUnauthorized, e.Error)

	var again IdentityResponse
	resp = s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "teacher@example.com", Password: "secret1"}, &again)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id.User.ID, again.User.ID)
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	var e errorReply
	resp := s.do(t, http.MethodPost, "/api/auth/signup", SignupRequest{Email: "nope", Password: "123"}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, e.Fields, 3)

	s.signup(t, "dup@example.com", "First")
	resp = s.do(t, http.MethodPost, "/api/auth/signup", SignupRequest{Email: "dup@example.com", Password: "secret1", Name: "Second"}, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email already in use", e.Error)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.signup(t, "kid@example.com", "Kid")

	var e errorReply
	resp := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "kid@example.com", Password: "wrong!"}, &e)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", e.Error)
}

func TestRateLimitOnLogin(t *testing.T) {
	s := newTestServer(t, serverOptions{rate: 2})

	for i := 0; i < 2; i++ {
		resp := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "x@example.com", Password: "secret1"}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	var e errorReply
	resp := s.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "x@example.com", Password: "secret1"}, &e)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, ErrTooManyRequests, e.Error)
}

func TestCSRFRequiredForWrites(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.signup(t, "t@example.com", "T")
	token := s.csrf
	s.csrf = ""

	resp := s.do(t, http.MethodGet, "/api/dashboard", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var e errorReply
	resp = s.do(t, http.MethodPost, "/api/attendance/mark-all", MarkAllRequest{Present: true}, &e)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, ErrInvalidCSRFToken, e.Error)

	s.csrf = token
	resp = s.do(t, http.MethodPost, "/api/attendance/mark-all", MarkAllRequest{Present: true}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAttendanceFlow(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.signup(t, "t@example.com", "T")

	var sheet AttendanceResponse
	s.do(t, http.MethodGet, "/api/attendance", nil, &sheet)
	require.Len(t, sheet.Students, 12)
	assert.Equal(t, 0, sheet.Summary.Present)

	s.do(t, http.MethodPost, "/api/attendance/mark-all", MarkAllRequest{Present: true}, &sheet)
	require.NotNil(t, sheet.Notice)
	assert.Equal(t, "All Marked Present", sheet.Notice.Title)
	assert.EqualValues(t, 100, sheet.Summary.Rate)

	s.do(t, http.MethodPost, "/api/attendance/2/toggle", nil, &sheet)
	assert.Equal(t, classroom.Summary{Total: 12, Present: 11, Absent: 1, Rate: 92, RateExact: "91.7"}, sheet.Summary)

	var e errorReply
	resp := s.do(t, http.MethodPost, "/api/attendance/99/toggle", nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var saved AttendanceResponse
	resp = s.do(t, http.MethodPost, "/api/attendance/save", nil, &saved)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, saved.Record)
	assert.Equal(t, "91.7", saved.Record.Rate)
	assert.Equal(t, "Attendance Saved!", saved.Notice.Title)

	var history AttendanceHistoryResponse
	s.do(t, http.MethodGet, "/api/attendance/history", nil, &history)
	assert.Len(t, history.Records, 1)
}

func TestSchedule(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.signup(t, "t@example.com", "T")

	var view service.ScheduleView
	resp := s.do(t, http.MethodGet, "/api/schedule?week=2025-01-15", nil, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jan 13 - Jan 17", view.Range.Label)
	assert.Equal(t, "2025-01-22", view.Next)
	require.Len(t, view.Days, 5)
	assert.Len(t, view.Days[0].Classes, 3)

	resp = s.do(t, http.MethodGet, "/api/schedule?week=next-tuesday", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGamesFlow(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.signup(t, "player@example.com", "Player One")

	var catalog CatalogResponse
	s.do(t, http.MethodGet, "/api/games", nil, &catalog)
	assert.Len(t, catalog.Games, 6)

	var e errorReply
	resp := s.do(t, http.MethodPost, "/api/games/chess/start", nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/games/session/hint", nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "no game in progress", e.Error)

	var out gameReply
	resp = s.do(t, http.MethodPost, "/api/games/riddle-me/start", nil, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "riddle-me", out.Session.Game)
	assert.Equal(t, "Game Started!", out.Notice.Title)

	resp = s.do(t, http.MethodPost, "/api/games/session/vote", map[string]string{"debater": "x"}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/games/session/dance", nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/games/session/answer", service.Action{Answer: "An Echo"}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", out.Session.Stage)
	assert.Positive(t, out.Session.Score)
	score := out.Session.Score

	var current struct {
		Session *struct {
			Stage string `json:"stage"`
		} `json:"session"`
		Results []struct {
			GameID string `json:"gameId"`
			Score  int    `json:"score"`
		} `json:"results"`
	}
	s.do(t, http.MethodGet, "/api/games/session", nil, &current)
	require.NotNil(t, current.Session)
	require.Len(t, current.Results, 1)
	assert.Equal(t, score, current.Results[0].Score)

	var lb classroom.Leaderboard
	s.do(t, http.MethodGet, "/api/leaderboard", nil, &lb)
	require.Len(t, lb.Entries, 13)
	found := false
	for _, entry := range lb.Entries {
		if entry.Name == "Player One" {
			found = true
			assert.Equal(t, score, entry.Score)
		}
	}
	assert.True(t, found)

	resp = s.do(t, http.MethodDelete, "/api/games/session", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	s.do(t, http.MethodGet, "/api/games/session", nil, &current)
	assert.Nil(t, current.Session)
}

func TestSettingsProfile(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.signup(t, "t@example.com", "Old Name")

	var p struct {
		Name string `json:"name"`
	}
	resp := s.do(t, http.MethodPut, "/api/settings/profile", ProfileRequest{Name: "  New Name "}, &p)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "New Name", p.Name)

	var e errorReply
	resp = s.do(t, http.MethodPut, "/api/settings/profile", ProfileRequest{Name: "   "}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var d classroom.Dashboard
	s.do(t, http.MethodGet, "/api/dashboard", nil, &d)
	assert.Equal(t, "Welcome back, New Name", d.Greeting)
}

func TestAudiobooksFlow(t *testing.T) {
	tts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3"))
	}))
	defer tts.Close()
	s := newTestServer(t, serverOptions{ttsURL: tts.URL})
	s.signup(t, "reader@example.com", "Reader")

	var topics TopicsResponse
	s.do(t, http.MethodGet, "/api/audiobooks/topics", nil, &topics)
	assert.Len(t, topics.Topics, 3)

	var e errorReply
	resp := s.do(t, http.MethodPost, "/api/audiobooks", AudiobookRequest{Text: "  "}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "please enter some text", e.Error)

	var created AudiobookResponse
	resp = s.do(t, http.MethodPost, "/api/audiobooks", AudiobookRequest{Topic: "photosynthesis"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Photosynthesis", created.Audiobook.Title)
	assert.Equal(t, "Audiobook Ready! 🎧", created.Notice.Title)
	require.NotEmpty(t, created.Audiobook.AudioURL)

	audioResp, err := s.client.Get(s.URL + created.Audiobook.AudioURL)
	require.NoError(t, err)
	defer audioResp.Body.Close()
	body, err := io.ReadAll(audioResp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, audioResp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "mp3"))

	id := strconv.FormatInt(created.Audiobook.ID, 10)
	var pb service.Playback
	resp = s.do(t, http.MethodPost, "/api/audiobooks/"+id+"/play", nil, &pb)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.Audiobook.ID, pb.Playing)

	var library LibraryResponse
	s.do(t, http.MethodGet, "/api/audiobooks", nil, &library)
	require.Len(t, library.Audiobooks, 1)
	assert.Equal(t, created.Audiobook.ID, library.Playing)

	var stopped PlaybackResponse
	s.do(t, http.MethodPost, "/api/audiobooks/stop", nil, &stopped)
	assert.Equal(t, created.Audiobook.ID, stopped.Stopped)

	resp = s.do(t, http.MethodDelete, "/api/audiobooks/"+id, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = s.do(t, http.MethodDelete, "/api/audiobooks/"+id, nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = s.do(t, http.MethodPost, "/api/audiobooks/abc/play", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAudiobooksUnavailable(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.signup(t, "reader@example.com", "Reader")

	var e errorReply
	resp := s.do(t, http.MethodPost, "/api/audiobooks", AudiobookRequest{Text: "Hello there."}, &e)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, e.Error, "speech synthesis not supported")
}

func TestVideosProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/videogen":
			_, _ = io.WriteString(w, `{"success":true,"videoPath":"gravity.mp4"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/videos":
			_, _ = io.WriteString(w, `[{"name":"gravity.mp4","path":"./static/videos/gravity.mp4"}]`)
		case r.Method == http.MethodDelete:
			_, _ = io.WriteString(w, `{"success":false,"error":"Video not found"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	s := newTestServer(t, serverOptions{videoURL: upstream.URL})
	s.signup(t, "t@example.com", "T")

	var e errorReply
	resp := s.do(t, http.MethodPost, "/api/videos", map[string]string{"topic": "Gravity"}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "please fill in all required fields", e.Error)

	var created VideoCreatedResponse
	resp = s.do(t, http.MethodPost, "/api/videos", map[string]string{"topic": "Gravity", "keyPoints": "Mass\nWeight"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, upstream.URL+"/static/videos/gravity.mp4", created.URL)

	var list VideoListResponse
	s.do(t, http.MethodGet, "/api/videos", nil, &list)
	require.Len(t, list.Videos, 1)
	assert.Equal(t, upstream.URL+"/static/videos/gravity.mp4", list.Videos[0].URL)

	resp = s.do(t, http.MethodDelete, "/api/videos/gravity.mp4", nil, &e)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Video not found", e.Error)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	var health struct {
		Status   string `json:"status"`
		Progress int    `json:"progress"`
	}
	resp := s.do(t, http.MethodGet, "/health", nil, &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 100, health.Progress)

	s.signup(t, "p@example.com", "P")
	s.do(t, http.MethodPost, "/api/games/quiz-rush/start", nil, nil)

	metrics, err := s.client.Get(s.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mindgames_sessions_started_total{game="quiz-rush"} 1`)
}

func TestStartupStatus(t *testing.T) {
	st := NewStartupStatus()
	assert.False(t, st.IsReady())

	st.CompleteStep(StepDatabase)
	st.CompleteStep(StepMigrations)
	st.SetCurrentStep(StepServices)

	rec := httptest.NewRecorder()
	st.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"progress":40`)
	assert.Contains(t, rec.Body.String(), `"current":"Initializing services"`)

	st.MarkReady()
	rec = httptest.NewRecorder()
	st.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
