package timerwin

import (
	"fmt"
	"time"

	"zone25/internal/core/phase"
)

// ButtonLabel is the caption of the start/stop control.
func ButtonLabel(finished bool) string {
	if finished {
		return "Start"
	}
	return "Stop"
}

// Describe renders a one-line summary of a snapshot, shared by the window,
// the tray and the CLI.
func Describe(snapshot phase.Snapshot) string {
	status := snapshot.Status
	switch {
	case snapshot.Idle || (snapshot.Finished && status.Remaining <= 0):
		return "Idle, press Start to begin"
	case snapshot.Finished:
		return fmt.Sprintf("Long break, %s left", formatDuration(status.Remaining))
	case status.State == phase.StateShortBreak:
		return fmt.Sprintf("Short break after block %d, %s left", status.Block, formatDuration(status.Remaining))
	default:
		return fmt.Sprintf("Block %d, %s left", status.Block, formatDuration(status.Remaining))
	}
}

func formatDuration(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
