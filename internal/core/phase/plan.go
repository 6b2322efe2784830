package phase

import (
	"fmt"
	"time"
)

// Kind selects the content of a phase notification.
type Kind string

const (
	KindWork       Kind = "work"
	KindShortBreak Kind = "short_break"
	KindLongBreak  Kind = "long_break"
)

const (
	SoundWork  = "work.aiff"
	SoundBreak = "break.aiff"
)

// Content is what the user sees and hears when a phase begins.
type Content struct {
	Title string
	Body  string
	Sound string
}

// Notification is one entry of a run's notification plan.
type Notification struct {
	Kind    Kind
	Block   int
	Content Content
	// Offset is measured from run start.
	Offset time.Duration
	At     time.Time
}

// Content returns the precomputed title, body and sound for kind.
func (phases Phases) Content(kind Kind) Content {
	switch kind {
	case KindShortBreak:
		return Content{
			Title: "Short Break",
			Body:  fmt.Sprintf("Take a short break for %d minutes", minutes(phases.durations.ShortBreak)),
			Sound: SoundBreak,
		}
	case KindLongBreak:
		return Content{
			Title: "Long Break",
			Body:  fmt.Sprintf("Take a longer break for at least %d minutes", minutes(phases.durations.LongBreak)),
			Sound: SoundBreak,
		}
	default:
		return Content{
			Title: "Focus",
			Body:  fmt.Sprintf("Focus on your task for %d minutes", minutes(phases.durations.Work)),
			Sound: SoundWork,
		}
	}
}

// Plan lists every phase transition of the run ending at anchor in time order:
// a short break after each block but the last, the following block's start,
// and finally the long break.
func (phases Phases) Plan(anchor time.Time) []Notification {
	start := phases.RunStart(anchor)
	blocks := phases.durations.BlocksPerRun
	plan := make([]Notification, 0, 2*blocks-1)

	add := func(kind Kind, block int, offset time.Duration) {
		plan = append(plan, Notification{
			Kind:    kind,
			Block:   block,
			Content: phases.Content(kind),
			Offset:  offset,
			At:      start.Add(offset),
		})
	}

	for block := 1; block < blocks; block++ {
		add(KindShortBreak, block, phases.workEndOffset(block))
		add(KindWork, block+1, phases.workStartOffset(block+1))
	}
	add(KindLongBreak, blocks, phases.workEndOffset(blocks))
	return plan
}

func minutes(duration time.Duration) int {
	return int(duration / time.Minute)
}
