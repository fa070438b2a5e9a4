package credential

import (
	"context"
	"fmt"

	"github.com/intellixel001/suvashpanel/pkg/cache"
	"github.com/intellixel001/suvashpanel/pkg/config"
	"github.com/intellixel001/suvashpanel/pkg/database"
)

// Open builds the configured backend. The returned closer releases its connection.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Credentials.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), noop, nil
	case config.BackendRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisStore(client, cfg.Credentials.RedisPrefix), client.Close, nil
	case config.BackendSQLite, config.BackendPostgres, "":
		sqlCfg := cfg.Credentials
		if sqlCfg.Backend == "" {
			sqlCfg.Backend = config.BackendSQLite
		}
		db, err := database.Open(sqlCfg)
		if err != nil {
			return nil, noop, fmt.Errorf("open credential database: %w", err)
		}
		store := NewSQLStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return store, db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown credentials backend %q", cfg.Credentials.Backend)
	}
}
