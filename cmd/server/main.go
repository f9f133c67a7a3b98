package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"metaclassroom/internal/audio"
	"metaclassroom/internal/config"
	"metaclassroom/internal/database"
	"metaclassroom/internal/handlers"
	"metaclassroom/internal/mindgames"
	"metaclassroom/internal/profile"
	"metaclassroom/internal/repository"
	"metaclassroom/internal/security"
	"metaclassroom/internal/service"
	"metaclassroom/internal/videogen"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	startup := handlers.NewStartupStatus()

	// Serve /health while the rest of the app comes up.
	var app atomic.Pointer[http.Handler]
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := app.Load(); h != nil {
			(*h).ServeHTTP(w, r)
			return
		}
		startup.Health(w, r)
	})

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startup.SetCurrentStep(handlers.StepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()
	log.Info().Str("type", cfg.DatabaseType).Msg("database connection established")
	startup.CompleteStep(handlers.StepDatabase)

	startup.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	startup.CompleteStep(handlers.StepMigrations)

	startup.SetCurrentStep(handlers.StepProfiles)
	profiles, closeProfiles, err := profile.Open(ctx, cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open profile store")
	}
	defer func() {
		if err := closeProfiles(); err != nil {
			log.Warn().Err(err).Msg("failed to close profile store")
		}
	}()
	startup.CompleteStep(handlers.StepProfiles)

	startup.SetCurrentStep(handlers.StepServices)
	userRepo := repository.NewUserRepository(db)
	resultRepo := repository.NewGameResultRepository(db)

	email, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("email disabled")
	}

	hub := mindgames.NewHub(
		mindgames.NewMetrics(prometheus.DefaultRegisterer),
		mindgames.WithDelays(cfg.QuickDrawDelay, cfg.QuizDelay),
	)

	authService := service.NewAuthService(userRepo, profiles, email, cfg.SessionDuration)
	authService.OnSignOut(hub.Discard)
	gameService := service.NewGameService(hub, resultRepo, profiles)
	classroomService := service.NewClassroomService(
		repository.NewAttendanceRepository(db),
		resultRepo,
		userRepo,
		profiles,
		email,
	)

	tts := audio.NewTTSService(cfg.AudioDir, cfg.TTSEnabled)
	audiobookService := service.NewAudiobookService(repository.NewAudiobookRepository(db), tts, audio.NewPlayer())
	videos := videogen.NewClient(cfg.VideoServiceURL, nil)

	secret := cfg.CSRFSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("CSRF_SECRET not set, using a random secret; sessions will not survive a restart")
	}
	signer := security.NewSigner(secret)
	limiter := security.NewRateLimiter(10, time.Minute)

	router := handlers.NewRouter(handlers.Routes{
		Middleware: handlers.NewMiddleware(authService, signer, limiter),
		Auth: handlers.NewAuthHandler(authService, signer, handlers.OAuthProvidersFromConfig(cfg),
			cfg.OAuthRedirectBaseURL, cfg.AppBaseURL),
		Classroom:  handlers.NewClassroomHandler(classroomService, authService),
		Games:      handlers.NewGameHandler(gameService),
		Audiobooks: handlers.NewAudiobookHandler(audiobookService),
		Videos:     handlers.NewVideoHandler(videos),
		Startup:    startup,
		Gatherer:   prometheus.DefaultGatherer,
		AudioDir:   cfg.AudioDir,
	})
	app.Store(&router)
	startup.CompleteStep(handlers.StepServices)

	go authService.RunSessionSweeper(ctx, time.Hour)
	go limiter.Cleanup(ctx, 5*time.Minute)

	startup.MarkReady()
	log.Info().Msg("server ready")

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("failed to generate secret")
	}
	return hex.EncodeToString(b)
}
