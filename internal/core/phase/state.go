package phase

import "time"

// State is the phase a run is in at a given instant. It is never stored.
type State string

const (
	StateWork       State = "work"
	StateShortBreak State = "short_break"
	StateLongBreak  State = "long_break"
)

// Status is the state machine position derived from (now, anchor).
type Status struct {
	State State
	// Block is the work block the phase belongs to. A short break carries the
	// block it follows; the long break carries the last block.
	Block int
	// Elapsed is the time spent in the current phase so far.
	Elapsed time.Duration
	// Remaining is the time until the next boundary. For the long break it
	// counts down the recommended rest and then stays at zero.
	Remaining time.Duration
}

// StatusAt locates now within the run ending at anchor.
func (phases Phases) StatusAt(now, anchor time.Time) Status {
	if phases.IsFinished(now, anchor) {
		elapsed := now.Sub(anchor)
		return Status{
			State:     StateLongBreak,
			Block:     phases.durations.BlocksPerRun,
			Elapsed:   elapsed,
			Remaining: max(phases.durations.LongBreak-elapsed, 0),
		}
	}

	elapsed := now.Sub(phases.RunStart(anchor))
	if elapsed < 0 {
		// The wall clock moved behind the run start; wait for block 1.
		return Status{State: StateWork, Block: 1, Remaining: phases.workEndOffset(1) - elapsed}
	}

	block := phases.blockAt(elapsed)
	workEnd := phases.workEndOffset(block)
	if elapsed < workEnd {
		return Status{
			State:     StateWork,
			Block:     block,
			Elapsed:   elapsed - phases.workStartOffset(block),
			Remaining: workEnd - elapsed,
		}
	}
	return Status{
		State:     StateShortBreak,
		Block:     block,
		Elapsed:   elapsed - workEnd,
		Remaining: phases.workStartOffset(block+1) - elapsed,
	}
}

// IsBreak reports whether the status is a short or long break.
func (status Status) IsBreak() bool {
	return status.State == StateShortBreak || status.State == StateLongBreak
}
