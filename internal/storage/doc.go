// Package storage persists the single run anchor.
//
// Every backend stores one key (AnchorKey) holding an RFC 3339 timestamp.
// The desktop app keeps it in fyne preferences; the CLI defaults to a YAML
// file next to the config and can use SQLite instead.
package storage
