package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultRequestTimeout = 2 * time.Minute

// Routes bundles everything the router mounts.
type Routes struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Classroom  *ClassroomHandler
	Games      *GameHandler
	Audiobooks *AudiobookHandler
	Videos     *VideoHandler
	Startup    *StartupStatus
	Gatherer   prometheus.Gatherer
	AudioDir   string

	// RequestTimeout bounds every API call except video generation, which
	// relies on the video client's own timeout.
	RequestTimeout time.Duration
}

// NewRouter wires the JSON API, health, metrics and audio files.
func NewRouter(rt Routes) http.Handler {
	timeout := rt.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	m := rt.Middleware

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logging)
	r.Use(middleware.Recoverer)

	r.Get("/health", rt.Startup.Health)
	if rt.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(rt.Gatherer, promhttp.HandlerOpts{}))
	}
	if rt.AudioDir != "" {
		r.Handle("/static/audio/*", http.StripPrefix("/static/audio/", http.FileServer(http.Dir(rt.AudioDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(timeout))

			r.Route("/auth", func(r chi.Router) {
				r.With(m.RateLimit).Post("/signup", rt.Auth.Signup)
				r.With(m.RateLimit).Post("/login", rt.Auth.Login)
				r.Post("/logout", rt.Auth.Logout)
				r.Get("/providers", rt.Auth.Providers)
				r.Get("/{provider}/start", rt.Auth.StartOAuth)
				r.Get("/{provider}/callback", rt.Auth.OAuthCallback)
				r.With(m.RequireAuth).Get("/me", rt.Auth.Me)
			})

			r.Group(func(r chi.Router) {
				r.Use(m.RequireAuth)
				r.Use(m.RequireCSRF)

				r.Get("/dashboard", rt.Classroom.Dashboard)
				r.Get("/settings/profile", rt.Classroom.GetProfile)
				r.Put("/settings/profile", rt.Classroom.UpdateProfile)

				r.Get("/attendance", rt.Classroom.Attendance)
				r.Get("/attendance/history", rt.Classroom.AttendanceHistory)
				r.Post("/attendance/mark-all", rt.Classroom.MarkAll)
				r.Post("/attendance/save", rt.Classroom.SaveAttendance)
				r.Post("/attendance/{id}/toggle", rt.Classroom.ToggleAttendance)

				r.Get("/schedule", rt.Classroom.Schedule)
				r.Get("/leaderboard", rt.Classroom.Leaderboard)

				r.Get("/games", rt.Games.Catalog)
				r.Get("/games/session", rt.Games.Session)
				r.Delete("/games/session", rt.Games.Quit)
				r.Post("/games/session/{action}", rt.Games.Act)
				r.Post("/games/{game}/start", rt.Games.Start)

				r.Get("/audiobooks/topics", rt.Audiobooks.Topics)
				r.Get("/audiobooks", rt.Audiobooks.Library)
				r.Post("/audiobooks", rt.Audiobooks.Create)
				r.Post("/audiobooks/stop", rt.Audiobooks.Stop)
				r.Delete("/audiobooks/{id}", rt.Audiobooks.Delete)
				r.Post("/audiobooks/{id}/play", rt.Audiobooks.Play)

				r.Get("/videos", rt.Videos.List)
				r.Delete("/videos/{name}", rt.Videos.Delete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(m.RequireAuth)
			r.Use(m.RequireCSRF)
			r.Post("/videos", rt.Videos.Create)
		})
	})

	return r
}
