package phase

import (
	"errors"
	"fmt"
	"time"

	"zone25/internal/core/model"
)

var (
	// ErrInvalidDurations indicates a run shape that cannot be scheduled.
	ErrInvalidDurations = errors.New("invalid phase durations")
	// ErrBlockOutOfRange indicates a block index outside 1..BlocksPerRun.
	ErrBlockOutOfRange = errors.New("block index out of range")
)

// Phases derives every phase boundary of a run from its anchor.
// All methods are pure; the anchor is always passed in.
type Phases struct {
	durations model.Durations
}

// New validates durations and returns the phase arithmetic for them.
func New(durations model.Durations) (Phases, error) {
	if durations.Work <= 0 || durations.ShortBreak < 0 || durations.LongBreak < 0 {
		return Phases{}, fmt.Errorf("%w: work=%s short=%s long=%s",
			ErrInvalidDurations, durations.Work, durations.ShortBreak, durations.LongBreak)
	}
	if durations.BlocksPerRun < 1 {
		return Phases{}, fmt.Errorf("%w: blocks per run %d", ErrInvalidDurations, durations.BlocksPerRun)
	}
	return Phases{durations: durations}, nil
}

// Default returns the phase arithmetic for model.DefaultDurations.
func Default() Phases {
	return Phases{durations: model.DefaultDurations()}
}

// Durations returns the run shape.
func (phases Phases) Durations() model.Durations {
	return phases.durations
}

// RunLength is the time from run start until the long break begins.
func (phases Phases) RunLength() time.Duration {
	blocks := time.Duration(phases.durations.BlocksPerRun)
	return blocks*phases.durations.Work + (blocks-1)*phases.durations.ShortBreak
}

// AnchorFor returns the anchor of a run started at now.
func (phases Phases) AnchorFor(now time.Time) time.Time {
	return now.Add(phases.RunLength())
}

// RunStart returns when the run ending at anchor began.
func (phases Phases) RunStart(anchor time.Time) time.Time {
	return anchor.Add(-phases.RunLength())
}

// runPercent is how much of the run ending at anchor lies behind now.
func (phases Phases) runPercent(now, anchor time.Time) float64 {
	length := phases.RunLength()
	elapsed := now.Sub(phases.RunStart(anchor))
	switch {
	case length <= 0 || elapsed >= length:
		return 100
	case elapsed <= 0:
		return 0
	}
	return 100 * float64(elapsed) / float64(length)
}

// IsFinished reports whether the run has reached its long break.
func (phases Phases) IsFinished(now, anchor time.Time) bool {
	return !now.Before(anchor)
}

// IsOnBreak reports whether now falls in a short break or the long break.
// A finished run is in its long break indefinitely.
func (phases Phases) IsOnBreak(now, anchor time.Time) bool {
	if phases.IsFinished(now, anchor) {
		return true
	}
	elapsed := now.Sub(phases.RunStart(anchor))
	if elapsed < 0 {
		return false
	}
	return elapsed >= phases.workEndOffset(phases.blockAt(elapsed))
}

// BlockBounds returns the start and end of work block blockIndex.
func (phases Phases) BlockBounds(anchor time.Time, blockIndex int) (time.Time, time.Time, error) {
	if err := phases.checkBlock(blockIndex); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := phases.RunStart(anchor)
	return start.Add(phases.workStartOffset(blockIndex)), start.Add(phases.workEndOffset(blockIndex)), nil
}

// BlockProgressPercent returns how much of block blockIndex has passed, in [0, 100].
func (phases Phases) BlockProgressPercent(now, anchor time.Time, blockIndex int) (float64, error) {
	start, end, err := phases.BlockBounds(anchor, blockIndex)
	if err != nil {
		return 0, err
	}
	if now.Before(start) {
		return 0, nil
	}
	if !now.Before(end) {
		return 100, nil
	}
	return 100 * float64(now.Sub(start)) / float64(phases.durations.Work), nil
}

// AllBlockProgress returns BlockProgressPercent for every block in order.
func (phases Phases) AllBlockProgress(now, anchor time.Time) []float64 {
	progress := make([]float64, phases.durations.BlocksPerRun)
	for block := 1; block <= phases.durations.BlocksPerRun; block++ {
		// The index is always in range here.
		progress[block-1], _ = phases.BlockProgressPercent(now, anchor, block)
	}
	return progress
}

func (phases Phases) checkBlock(blockIndex int) error {
	if blockIndex < 1 || blockIndex > phases.durations.BlocksPerRun {
		return fmt.Errorf("%w: %d not in 1..%d", ErrBlockOutOfRange, blockIndex, phases.durations.BlocksPerRun)
	}
	return nil
}

func (phases Phases) cycle() time.Duration {
	return phases.durations.Work + phases.durations.ShortBreak
}

// workStartOffset and workEndOffset are the only boundary formulas; progress,
// break detection and the notification plan all go through them.
func (phases Phases) workStartOffset(blockIndex int) time.Duration {
	return time.Duration(blockIndex-1) * phases.cycle()
}

func (phases Phases) workEndOffset(blockIndex int) time.Duration {
	return phases.workStartOffset(blockIndex) + phases.durations.Work
}

// blockAt returns the block whose work-plus-break cycle contains elapsed.
func (phases Phases) blockAt(elapsed time.Duration) int {
	block := int(elapsed/phases.cycle()) + 1
	if block > phases.durations.BlocksPerRun {
		return phases.durations.BlocksPerRun
	}
	return block
}
