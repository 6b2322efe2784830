package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"zone25/internal/logx"
)

const sqliteFileName = "zone25.db"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(path string, log logx.Logger) (Store, error) {
	if strings.TrimSpace(path) == "" {
		resolved, err := DefaultPath(sqliteFileName)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; SQLite prefers a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	log.Debug("sqlite store opened", logx.String("path", path))
	return &sqliteStore{db: db, log: log}, nil
}

func (store *sqliteStore) LoadAnchor(ctx context.Context) (time.Time, bool, error) {
	var value string
	err := store.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, AnchorKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query anchor: %w", err)
	}

	anchor, err := decodeAnchor(value)
	if err != nil {
		return time.Time{}, false, err
	}
	return anchor, true, nil
}

func (store *sqliteStore) SaveAnchor(ctx context.Context, anchor time.Time) error {
	_, err := store.db.ExecContext(ctx,
		`INSERT INTO kv(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		AnchorKey, encodeAnchor(anchor),
	)
	if err != nil {
		return fmt.Errorf("save anchor: %w", err)
	}
	store.log.Debug("anchor saved", logx.String("driver", "sqlite"), logx.Time("anchor", anchor))
	return nil
}

func (store *sqliteStore) Close() error {
	if store == nil || store.db == nil {
		return nil
	}
	return store.db.Close()
}
