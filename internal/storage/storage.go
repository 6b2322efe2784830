package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zone25/internal/logx"
)

// AnchorKey is the single key persisted by every backend.
const AnchorKey = "lastBlockFinishesAt"

// ErrUnknownDriver indicates an unsupported Config.Driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store persists the run anchor.
type Store interface {
	// LoadAnchor returns ok=false when no anchor has been saved.
	LoadAnchor(ctx context.Context) (anchor time.Time, ok bool, err error)
	SaveAnchor(ctx context.Context, anchor time.Time) error
	Close() error
}

// Config selects a backend.
//
// Driver values:
//   - "yaml": a small YAML file (default)
//   - "sqlite": a SQLite database with a key-value table
//   - "memory": process-local, lost on exit
type Config struct {
	Driver string
	Path   string
}

// Open initializes the configured store.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", "yaml", "file":
		return openYAML(cfg.Path, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg.Path, log)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

func encodeAnchor(anchor time.Time) string {
	return anchor.UTC().Format(time.RFC3339Nano)
}

func decodeAnchor(value string) (time.Time, error) {
	anchor, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse anchor %q: %w", value, err)
	}
	return anchor, nil
}
