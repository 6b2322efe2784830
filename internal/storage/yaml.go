package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"zone25/internal/logx"
)

const (
	appDirName     = "Zone25"
	anchorFileName = "anchor.yaml"
)

type yamlAnchor struct {
	LastBlockFinishesAt string `yaml:"lastBlockFinishesAt"`
}

type yamlStore struct {
	mu   sync.Mutex
	path string
	log  logx.Logger
}

func openYAML(path string, log logx.Logger) (Store, error) {
	if strings.TrimSpace(path) == "" {
		resolved, err := DefaultPath(anchorFileName)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	return &yamlStore{path: path, log: log}, nil
}

// DefaultPath returns fileName inside the per-user Zone25 config directory.
func DefaultPath(fileName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, fileName), nil
}

// LoadAnchor reads the anchor file. A missing file or empty value means no anchor.
func (store *yamlStore) LoadAnchor(ctx context.Context) (time.Time, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("read anchor file: %w", err)
	}

	var fileData yamlAnchor
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return time.Time{}, false, fmt.Errorf("parse anchor yaml: %w", err)
	}
	if strings.TrimSpace(fileData.LastBlockFinishesAt) == "" {
		return time.Time{}, false, nil
	}

	anchor, err := decodeAnchor(fileData.LastBlockFinishesAt)
	if err != nil {
		return time.Time{}, false, err
	}
	return anchor, true, nil
}

// SaveAnchor writes the anchor through a temporary file and rename.
func (store *yamlStore) SaveAnchor(ctx context.Context, anchor time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create anchor directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlAnchor{LastBlockFinishesAt: encodeAnchor(anchor)})
	if err != nil {
		return fmt.Errorf("marshal anchor yaml: %w", err)
	}

	tmpPath := store.path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write anchor file: %w", err)
	}
	if err := os.Rename(tmpPath, store.path); err != nil {
		return fmt.Errorf("replace anchor file: %w", err)
	}

	store.log.Debug("anchor saved", logx.String("path", store.path), logx.Time("anchor", anchor))
	return nil
}

func (store *yamlStore) Close() error { return nil }
