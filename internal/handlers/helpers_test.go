package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"metaclassroom/internal/audio"
	"metaclassroom/internal/database"
	"metaclassroom/internal/mindgames"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/repository"
	"metaclassroom/internal/security"
	"metaclassroom/internal/service"
	"metaclassroom/internal/videogen"
)

type firstRand struct{}

func (firstRand) Intn(int) int     { return 0 }
func (firstRand) Float64() float64 { return 0.9 }

type testServer struct {
	*httptest.Server
	client   *http.Client
	csrf     string
	limiter  *security.RateLimiter
	startup  *StartupStatus
	audioDir string
}

type serverOptions struct {
	videoURL string
	ttsURL   string
	rate     int
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations("../../migrations"))

	store := profile.NewMemoryStore()
	userRepo := repository.NewUserRepository(db)
	email, err := service.NewEmailService(t.Context(), "us-east-1", "", "", "")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	hub := mindgames.NewHub(mindgames.NewMetrics(reg), mindgames.WithRand(firstRand{}))
	authService := service.NewAuthService(userRepo, store, email, time.Hour)
	authService.OnSignOut(hub.Discard)

	audioDir := t.TempDir()
	ttsOpts := []audio.Option{}
	if opts.ttsURL != "" {
		ttsOpts = append(ttsOpts, audio.WithEndpoint(opts.ttsURL))
	}
	tts := audio.NewTTSService(audioDir, opts.ttsURL != "", ttsOpts...)

	rate := opts.rate
	if rate == 0 {
		rate = 100
	}
	limiter := security.NewRateLimiter(rate, time.Minute)
	signer := security.NewSigner("test-secret")
	startup := NewStartupStatus()
	startup.MarkReady()

	router := NewRouter(Routes{
		Middleware: NewMiddleware(authService, signer, limiter),
		Auth:       NewAuthHandler(authService, signer, map[string]OAuthProvider{}, "", "http://app.test"),
		Classroom: NewClassroomHandler(service.NewClassroomService(
			repository.NewAttendanceRepository(db),
			repository.NewGameResultRepository(db),
			userRepo, store, email,
		), authService),
		Games:      NewGameHandler(service.NewGameService(hub, repository.NewGameResultRepository(db), store)),
		Audiobooks: NewAudiobookHandler(service.NewAudiobookService(repository.NewAudiobookRepository(db), tts, audio.NewPlayer())),
		Videos:     NewVideoHandler(videogen.NewClient(opts.videoURL, nil)),
		Startup:    startup,
		Gatherer:   reg,
		AudioDir:   audioDir,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{
		Server:   srv,
		client:   &http.Client{Jar: jar, CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }},
		limiter:  limiter,
		startup:  startup,
		audioDir: audioDir,
	}
}

// do sends body as JSON and decodes the reply into out when it is non-nil.
func (s *testServer) do(t *testing.T, method, path string, body, out interface{}) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, s.URL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.csrf != "" {
		req.Header.Set(security.CSRFHeader, s.csrf)
	}

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// signup creates an account and keeps its session cookie and CSRF token.
func (s *testServer) signup(t *testing.T, email, name string) IdentityResponse {
	t.Helper()
	var id IdentityResponse
	resp := s.do(t, http.MethodPost, "/api/auth/signup", SignupRequest{Email: email, Password: "secret1", Name: name}, &id)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	s.csrf = id.CSRFToken
	return id
}
