package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	SessionDuration time.Duration
	LogLevel        string
	LogPretty       bool
	StaticFilesPath string

	ProfileBackend          string
	FirebaseProjectID       string
	FirebaseCredentialsFile string

	VideoServiceURL string
	AudioDir        string
	TTSEnabled      bool

	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
	AppleClientID        string
	AppleClientSecret    string
	OAuthRedirectBaseURL string

	CSRFSecret   string
	SESFromEmail string
	SESFromName  string
	AWSRegion    string
	AppBaseURL   string

	QuickDrawDelay time.Duration
	QuizDelay      time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists.
func Load() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg("failed to load .env file")
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// SetDefaults registers the default value of every setting.
func SetDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_TYPE", "sqlite")
	v.SetDefault("DB_PATH", "./classroom.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "./migrations")
	v.SetDefault("SESSION_DURATION", 24*time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("STATIC_PATH", "./static")
	v.SetDefault("PROFILE_BACKEND", "sql")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("VIDEO_SERVICE_URL", "http://10.10.20.208:5000")
	v.SetDefault("AUDIO_DIR", "./static/audio")
	v.SetDefault("TTS_ENABLED", true)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("FACEBOOK_CLIENT_ID", "")
	v.SetDefault("FACEBOOK_CLIENT_SECRET", "")
	v.SetDefault("APPLE_CLIENT_ID", "")
	v.SetDefault("APPLE_CLIENT_SECRET", "")
	v.SetDefault("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080")
	v.SetDefault("CSRF_SECRET", "")
	v.SetDefault("SES_FROM_EMAIL", "")
	v.SetDefault("SES_FROM_NAME", "Metaverse Classroom")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("QUICKDRAW_DELAY", 3*time.Second)
	v.SetDefault("QUIZ_DELAY", 2*time.Second)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		ServerPort:      v.GetString("PORT"),
		DatabaseType:    strings.ToLower(v.GetString("DB_TYPE")),
		DatabasePath:    v.GetString("DB_PATH"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		SessionDuration: v.GetDuration("SESSION_DURATION"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogPretty:       v.GetBool("LOG_PRETTY"),
		StaticFilesPath: v.GetString("STATIC_PATH"),

		ProfileBackend:          strings.ToLower(v.GetString("PROFILE_BACKEND")),
		FirebaseProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),

		VideoServiceURL: strings.TrimSuffix(v.GetString("VIDEO_SERVICE_URL"), "/"),
		AudioDir:        v.GetString("AUDIO_DIR"),
		TTSEnabled:      v.GetBool("TTS_ENABLED"),

		GoogleClientID:       v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   v.GetString("GOOGLE_CLIENT_SECRET"),
		FacebookClientID:     v.GetString("FACEBOOK_CLIENT_ID"),
		FacebookClientSecret: v.GetString("FACEBOOK_CLIENT_SECRET"),
		AppleClientID:        v.GetString("APPLE_CLIENT_ID"),
		AppleClientSecret:    v.GetString("APPLE_CLIENT_SECRET"),
		OAuthRedirectBaseURL: strings.TrimSuffix(v.GetString("OAUTH_REDIRECT_BASE_URL"), "/"),

		CSRFSecret:   v.GetString("CSRF_SECRET"),
		SESFromEmail: v.GetString("SES_FROM_EMAIL"),
		SESFromName:  v.GetString("SES_FROM_NAME"),
		AWSRegion:    v.GetString("AWS_REGION"),
		AppBaseURL:   strings.TrimSuffix(v.GetString("APP_BASE_URL"), "/"),

		QuickDrawDelay: v.GetDuration("QUICKDRAW_DELAY"),
		QuizDelay:      v.GetDuration("QUIZ_DELAY"),
	}
}

// EmailEnabled reports whether SES sending is configured.
func (c *Config) EmailEnabled() bool {
	return c.SESFromEmail != ""
}
