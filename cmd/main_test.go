package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zone25/internal/core/phase"
)

func writeConfig(t *testing.T, driver string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "log_level: error\nstorage_driver: " + driver + "\nstorage_path: " +
		filepath.Join(dir, "anchor.store") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func statusJSON(t *testing.T, configPath string) statusReport {
	t.Helper()
	var report statusReport
	require.NoError(t, json.Unmarshal([]byte(execute(t, "status", "--json", "--config", configPath)), &report))
	return report
}

func TestStatusWithoutRunIsFinished(t *testing.T) {
	report := statusJSON(t, writeConfig(t, "yaml"))
	assert.True(t, report.Finished)
	assert.True(t, report.OnBreak)
	assert.Equal(t, phase.StateLongBreak, report.State)
	assert.Equal(t, "Idle, press Start to begin", report.Summary)
	assert.Len(t, report.Progress, 4)
}

func TestStartThenStopAcrossInvocations(t *testing.T) {
	for _, driver := range []string{"yaml", "sqlite", "preferences"} {
		t.Run(driver, func(t *testing.T) {
			configPath := writeConfig(t, driver)

			before := time.Now()
			output := execute(t, "start", "--config", configPath)
			assert.True(t, strings.HasPrefix(output, "Block 1, "), output)

			report := statusJSON(t, configPath)
			assert.False(t, report.Finished)
			assert.False(t, report.OnBreak)
			assert.Equal(t, phase.StateWork, report.State)
			assert.Equal(t, 1, report.Block)
			assert.WithinDuration(t, before.Add(115*time.Minute), report.Anchor, 5*time.Second)

			assert.Equal(t, "Idle, press Start to begin\n", execute(t, "stop", "--config", configPath))
			assert.True(t, statusJSON(t, configPath).Finished)
		})
	}
}

func TestStatusTextListsBlocks(t *testing.T) {
	output := execute(t, "status", "--config", writeConfig(t, "yaml"))
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "block 1")
	assert.Contains(t, lines[4], "block 4")
}

func TestUnknownDriverInConfigFallsBackToDefault(t *testing.T) {
	report := statusJSON(t, writeConfig(t, "etcd"))
	assert.True(t, report.Finished)
}

func TestUnopenableLogFileFallsBackToConsole(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	path := filepath.Join(dir, "config.yaml")
	content := "log_level: error\nlog_file: " + filepath.Join(blocker, "zone25.log") +
		"\nstorage_driver: memory\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	report := statusJSON(t, path)
	assert.True(t, report.Finished)
}

func TestBrokenConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [\n"), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"status", "--config", path})
	assert.ErrorContains(t, root.Execute(), "load config")
}

func TestCurrentBlockProgress(t *testing.T) {
	phases := phase.Default()
	t0 := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	anchor := phases.AnchorFor(t0)
	snapshotAt := func(now time.Time) phase.Snapshot {
		return phase.Snapshot{
			Finished: phases.IsFinished(now, anchor),
			Progress: phases.AllBlockProgress(now, anchor),
			Status:   phases.StatusAt(now, anchor),
		}
	}

	assert.Equal(t, 0.0, currentBlockProgress(snapshotAt(t0)))
	assert.Equal(t, 50.0, currentBlockProgress(snapshotAt(t0.Add(2550*time.Second))))
	assert.Equal(t, 100.0, currentBlockProgress(snapshotAt(t0.Add(1600*time.Second))), "short break shows the finished block")
	assert.Equal(t, 100.0, currentBlockProgress(snapshotAt(anchor)))
}
