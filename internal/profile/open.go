package profile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"metaclassroom/internal/config"
	"metaclassroom/internal/database"
)

// Open selects the backend named by cfg.ProfileBackend. The returned close
// function is never nil.
func Open(ctx context.Context, cfg *config.Config, db *database.DB) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.ProfileBackend {
	case "", "sql":
		return NewSQLStore(db), noop, nil
	case "memory":
		log.Warn().Msg("profiles are kept in memory and will be lost on restart")
		return NewMemoryStore(), noop, nil
	case "firestore":
		fs, err := NewFirestoreStore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("project", cfg.FirebaseProjectID).Msg("profiles stored in firestore")
		return fs, fs.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported profile backend: %s", cfg.ProfileBackend)
	}
}
