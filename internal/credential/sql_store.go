package credential

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const createCredentialsTable = `CREATE TABLE IF NOT EXISTS client_credentials (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLStore persists credentials in a two-row table so a session survives a restart.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps db. Call Migrate once before first use.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the credentials table when missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createCredentialsTable); err != nil {
		return fmt.Errorf("create client_credentials: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context) (Credentials, error) {
	var rows []struct {
		Name  string `db:"name"`
		Value string `db:"value"`
	}
	query := s.db.Rebind(`SELECT name, value FROM client_credentials WHERE name IN (?, ?)`)
	if err := s.db.SelectContext(ctx, &rows, query, KeyAccessToken, KeyRefreshToken); err != nil {
		return Credentials{}, fmt.Errorf("load credentials: %w", err)
	}

	var creds Credentials
	for _, row := range rows {
		switch row.Name {
		case KeyAccessToken:
			creds.AccessToken = row.Value
		case KeyRefreshToken:
			creds.RefreshToken = row.Value
		}
	}
	return creds, nil
}

// Set writes both entries in one transaction. Empty values delete their entry.
func (s *SQLStore) Set(ctx context.Context, creds Credentials) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin credentials tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, entry := range []struct{ name, value string }{
		{KeyAccessToken, creds.AccessToken},
		{KeyRefreshToken, creds.RefreshToken},
	} {
		if err = s.write(ctx, tx, entry.name, entry.value); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit credentials: %w", err)
	}
	return nil
}

func (s *SQLStore) write(ctx context.Context, tx *sqlx.Tx, name, value string) error {
	if value == "" {
		query := tx.Rebind(`DELETE FROM client_credentials WHERE name = ?`)
		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
		return nil
	}
	query := tx.Rebind(`INSERT INTO client_credentials (name, value) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value`)
	if _, err := tx.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	query := s.db.Rebind(`DELETE FROM client_credentials WHERE name IN (?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, KeyAccessToken, KeyRefreshToken); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
