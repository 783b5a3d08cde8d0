package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sidekick/internal/database"
	"sidekick/internal/database/migrations"
	"sidekick/internal/sidekick"
)

// SQLStorage keeps values in a single kv table. The sqlite and postgres
// backends share it; only the connection, the migrations and the
// placeholder style differ. Set is one UPSERT statement.
type SQLStorage struct {
	db      *sql.DB
	dialect string
	getQ    string
	setQ    string
	delQ    string
	keysQ   string
}

func newSQLStorage(db *sql.DB, dialect string) *SQLStorage {
	s := &SQLStorage{db: db, dialect: dialect}
	switch dialect {
	case "postgres":
		s.getQ = `SELECT value FROM kv WHERE key = $1`
		s.setQ = `INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
		s.delQ = `DELETE FROM kv WHERE key = $1`
	default:
		s.getQ = `SELECT value FROM kv WHERE key = ?`
		s.setQ = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
		s.delQ = `DELETE FROM kv WHERE key = ?`
	}
	s.keysQ = `SELECT key FROM kv ORDER BY key`
	return s
}

// NewSQLiteStorage opens (creating if needed) the SQLite database at path
// and migrates it. path may be ":memory:".
func NewSQLiteStorage(path string) (*SQLStorage, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := database.OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return newSQLStorage(db, "sqlite"), nil
}

// NewPostgresStorage connects to dsn and applies the Postgres migrations.
func NewPostgresStorage(ctx context.Context, dsn string) (*SQLStorage, error) {
	db, err := database.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigratePostgres(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return newSQLStorage(db, "postgres"), nil
}

func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.getQ, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", key, sidekick.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.setQ, key, value); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.delQ, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

func (s *SQLStorage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.keysQ)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// ValidateSetup pings the database and, for SQLite, checks that the schema
// is at the latest migration.
func (s *SQLStorage) ValidateSetup(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}
	if s.dialect == "sqlite" {
		if err := migrations.CheckDBMigrationStatus(s.db); err != nil {
			return fmt.Errorf("checking schema: %w", err)
		}
	}
	return nil
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

var _ sidekick.Storage = (*SQLStorage)(nil)
