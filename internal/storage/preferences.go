package storage

import (
	"context"
	"strings"
	"time"
)

// StringPreferences is the part of fyne.Preferences the anchor needs.
type StringPreferences interface {
	String(key string) string
	SetString(key string, value string)
}

type preferencesStore struct {
	prefs StringPreferences
}

// NewPreferences stores the anchor in application preferences,
// e.g. fyne.App.Preferences().
func NewPreferences(prefs StringPreferences) Store {
	return &preferencesStore{prefs: prefs}
}

func (store *preferencesStore) LoadAnchor(ctx context.Context) (time.Time, bool, error) {
	value := store.prefs.String(AnchorKey)
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false, nil
	}
	anchor, err := decodeAnchor(value)
	if err != nil {
		return time.Time{}, false, err
	}
	return anchor, true, nil
}

func (store *preferencesStore) SaveAnchor(ctx context.Context, anchor time.Time) error {
	store.prefs.SetString(AnchorKey, encodeAnchor(anchor))
	return nil
}

func (store *preferencesStore) Close() error { return nil }
