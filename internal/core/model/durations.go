package model

import "time"

const (
	DefaultWork         = 25 * time.Minute
	DefaultShortBreak   = 5 * time.Minute
	DefaultLongBreak    = 15 * time.Minute
	DefaultBlocksPerRun = 4
)

// Durations describes the fixed shape of a Pomodoro run.
type Durations struct {
	Work         time.Duration
	ShortBreak   time.Duration
	LongBreak    time.Duration
	BlocksPerRun int
}

// DefaultDurations returns the classic 25/5/15 run of four blocks.
func DefaultDurations() Durations {
	return Durations{
		Work:         DefaultWork,
		ShortBreak:   DefaultShortBreak,
		LongBreak:    DefaultLongBreak,
		BlocksPerRun: DefaultBlocksPerRun,
	}
}
