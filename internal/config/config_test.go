package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg := FromViper(v)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "./classroom.db", cfg.DatabasePath)
	assert.Equal(t, 24*time.Hour, cfg.SessionDuration)
	assert.Equal(t, "sql", cfg.ProfileBackend)
	assert.Equal(t, "http://10.10.20.208:5000", cfg.VideoServiceURL)
	assert.True(t, cfg.TTSEnabled)
	assert.Equal(t, 3*time.Second, cfg.QuickDrawDelay)
	assert.Equal(t, 2*time.Second, cfg.QuizDelay)
	assert.False(t, cfg.EmailEnabled())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_TYPE", "Postgres")
	t.Setenv("SESSION_DURATION", "2h")
	t.Setenv("PROFILE_BACKEND", "FIRESTORE")
	t.Setenv("VIDEO_SERVICE_URL", "http://video.local:5000/")
	t.Setenv("TTS_ENABLED", "false")
	t.Setenv("QUIZ_DELAY", "500ms")
	t.Setenv("SES_FROM_EMAIL", "noreply@example.com")

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	cfg := FromViper(v)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, 2*time.Hour, cfg.SessionDuration)
	assert.Equal(t, "firestore", cfg.ProfileBackend)
	assert.Equal(t, "http://video.local:5000", cfg.VideoServiceURL)
	assert.False(t, cfg.TTSEnabled)
	assert.Equal(t, 500*time.Millisecond, cfg.QuizDelay)
	assert.True(t, cfg.EmailEnabled())
}
