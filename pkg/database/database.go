package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/intellixel001/suvashpanel/pkg/config"
)

// Open returns a pinged sqlx handle for the sqlite or postgres credential backend.
func Open(cfg config.CredentialsConfig) (*sqlx.DB, error) {
	var (
		driver string
		dsn    string
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		path := strings.TrimPrefix(cfg.DSN, "file:")
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create credential dir: %w", err)
			}
		}
		driver = "sqlite"
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	case config.BackendPostgres:
		driver = "postgres"
		dsn = cfg.DSN
	default:
		return nil, fmt.Errorf("unsupported sql backend %q", cfg.Backend)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
