package phase

import (
	"context"
	"sync"
	"time"

	"zone25/internal/core/clock"
	"zone25/internal/logx"
	"zone25/internal/notify"
)

// Store persists the anchor between launches.
type Store interface {
	LoadAnchor(ctx context.Context) (time.Time, bool, error)
	SaveAnchor(ctx context.Context, anchor time.Time) error
}

// Notifier delivers phase notifications.
type Notifier interface {
	Authorized() bool
	CancelAll()
	Schedule(request notify.Request) error
}

// Options configures a Scheduler.
type Options struct {
	Clock  clock.Clock
	Logger logx.Logger
}

// Snapshot is everything a renderer needs at one instant.
type Snapshot struct {
	Now      time.Time
	Anchor   time.Time
	Finished bool
	OnBreak  bool
	// Idle is set when no run has been started since launch or the last
	// run was stopped early, so there is no long break to count down.
	Idle     bool
	Progress []float64
	Status   Status
}

// Scheduler owns the run anchor and the two boundary effects around it:
// persisting the anchor and issuing notifications.
type Scheduler struct {
	// ops serializes Start, Stop and Toggle; mu guards anchor and idle.
	ops      sync.Mutex
	mu       sync.Mutex
	phases   Phases
	store    Store
	notifier Notifier
	clock    clock.Clock
	log      logx.Logger
	anchor   time.Time
	idle     bool
}

// NewScheduler creates a scheduler whose run is already finished.
// Call Load to pick up a persisted anchor.
func NewScheduler(phases Phases, store Store, notifier Notifier, options Options) *Scheduler {
	if options.Clock == nil {
		options.Clock = clock.System
	}
	if options.Logger.IsZero() {
		options.Logger = logx.Nop()
	}
	return &Scheduler{
		phases:   phases,
		store:    store,
		notifier: notifier,
		clock:    options.Clock,
		log:      options.Logger,
		anchor:   missingAnchor(options.Clock.Now()),
		idle:     true,
	}
}

// Phases returns the arithmetic the scheduler runs on.
func (scheduler *Scheduler) Phases() Phases {
	return scheduler.phases
}

// Load reads the persisted anchor. A missing or unreadable anchor means the
// run has already finished.
func (scheduler *Scheduler) Load(ctx context.Context) time.Time {
	now := scheduler.clock.Now()
	anchor := missingAnchor(now)
	found := false
	if scheduler.store != nil {
		stored, ok, err := scheduler.store.LoadAnchor(ctx)
		switch {
		case err != nil:
			scheduler.log.Warn("anchor unreadable, treating run as finished", logx.Err(err))
		case ok:
			anchor = stored
			found = true
		}
	}

	scheduler.mu.Lock()
	scheduler.anchor = anchor
	scheduler.idle = !found
	scheduler.mu.Unlock()

	scheduler.log.Debug("anchor loaded",
		logx.Time("anchor", anchor),
		logx.Bool("finished", scheduler.phases.IsFinished(now, anchor)),
	)
	return anchor
}

// Anchor returns the current anchor.
func (scheduler *Scheduler) Anchor() time.Time {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.anchor
}

// Start begins a new run: pending notifications are cancelled, the anchor is
// moved to now plus the run length and persisted, and the run's notifications
// are scheduled.
func (scheduler *Scheduler) Start(ctx context.Context) time.Time {
	scheduler.ops.Lock()
	defer scheduler.ops.Unlock()
	return scheduler.start(ctx)
}

// Stop ends the run now and cancels pending notifications.
func (scheduler *Scheduler) Stop(ctx context.Context) time.Time {
	scheduler.ops.Lock()
	defer scheduler.ops.Unlock()
	return scheduler.stop(ctx)
}

// Toggle starts a run when none is active and stops the active one otherwise.
// It reports whether a run is active afterwards.
func (scheduler *Scheduler) Toggle(ctx context.Context) bool {
	scheduler.ops.Lock()
	defer scheduler.ops.Unlock()

	if scheduler.IsFinished() {
		scheduler.start(ctx)
		return true
	}
	scheduler.stop(ctx)
	return false
}

func (scheduler *Scheduler) start(ctx context.Context) time.Time {
	scheduler.cancelNotifications()

	now := scheduler.clock.Now()
	anchor := scheduler.phases.AnchorFor(now)
	scheduler.setAnchor(ctx, anchor, false)

	scheduler.log.Info("run started",
		logx.Time("anchor", anchor),
		logx.Duration("run", scheduler.phases.RunLength()),
	)
	scheduler.ScheduleNotifications(anchor)
	return anchor
}

func (scheduler *Scheduler) stop(ctx context.Context) time.Time {
	scheduler.cancelNotifications()

	anchor := scheduler.clock.Now()
	previous := scheduler.Anchor()
	scheduler.setAnchor(ctx, anchor, true)

	scheduler.log.Info("run stopped",
		logx.Time("anchor", anchor),
		logx.Float64("run_percent", scheduler.phases.runPercent(anchor, previous)),
	)
	return anchor
}

// ScheduleNotifications issues the still-upcoming part of anchor's notification
// plan. Nothing is issued without notification permission.
func (scheduler *Scheduler) ScheduleNotifications(anchor time.Time) int {
	if scheduler.notifier == nil {
		return 0
	}
	if !scheduler.notifier.Authorized() {
		scheduler.log.Info("notification permission denied, skipping notifications")
		return 0
	}

	now := scheduler.clock.Now()
	scheduled := 0
	for _, entry := range scheduler.phases.Plan(anchor) {
		delay := entry.At.Sub(now)
		if delay <= 0 {
			continue
		}
		err := scheduler.notifier.Schedule(notify.Request{
			Title:     entry.Content.Title,
			Body:      entry.Content.Body,
			SoundID:   entry.Content.Sound,
			FireDelay: delay,
		})
		if err != nil {
			scheduler.log.Warn("schedule notification failed",
				logx.String("kind", string(entry.Kind)),
				logx.Int("block", entry.Block),
				logx.Err(err),
			)
			continue
		}
		scheduled++
	}
	scheduler.log.Debug("notifications scheduled", logx.Int("count", scheduled))
	return scheduled
}

// IsFinished reports whether the current run has finished.
func (scheduler *Scheduler) IsFinished() bool {
	return scheduler.phases.IsFinished(scheduler.clock.Now(), scheduler.Anchor())
}

// IsOnBreak reports whether the user is currently on a break.
func (scheduler *Scheduler) IsOnBreak() bool {
	return scheduler.phases.IsOnBreak(scheduler.clock.Now(), scheduler.Anchor())
}

// BlockProgressPercent returns the progress of one block right now.
func (scheduler *Scheduler) BlockProgressPercent(blockIndex int) (float64, error) {
	return scheduler.phases.BlockProgressPercent(scheduler.clock.Now(), scheduler.Anchor(), blockIndex)
}

// AllBlockProgress returns the progress of every block right now.
func (scheduler *Scheduler) AllBlockProgress() []float64 {
	return scheduler.phases.AllBlockProgress(scheduler.clock.Now(), scheduler.Anchor())
}

// Snapshot evaluates every query against a single reading of the clock.
func (scheduler *Scheduler) Snapshot() Snapshot {
	now := scheduler.clock.Now()
	scheduler.mu.Lock()
	anchor, idle := scheduler.anchor, scheduler.idle
	scheduler.mu.Unlock()
	finished := scheduler.phases.IsFinished(now, anchor)
	return Snapshot{
		Now:      now,
		Anchor:   anchor,
		Finished: finished,
		OnBreak:  scheduler.phases.IsOnBreak(now, anchor),
		Idle:     finished && idle,
		Progress: scheduler.phases.AllBlockProgress(now, anchor),
		Status:   scheduler.phases.StatusAt(now, anchor),
	}
}

func (scheduler *Scheduler) setAnchor(ctx context.Context, anchor time.Time, idle bool) {
	scheduler.mu.Lock()
	scheduler.anchor = anchor
	scheduler.idle = idle
	scheduler.mu.Unlock()

	if scheduler.store == nil {
		return
	}
	if err := scheduler.store.SaveAnchor(ctx, anchor); err != nil {
		scheduler.log.Error("persist anchor failed", logx.Time("anchor", anchor), logx.Err(err))
	}
}

func (scheduler *Scheduler) cancelNotifications() {
	if scheduler.notifier != nil {
		scheduler.notifier.CancelAll()
	}
}

func missingAnchor(now time.Time) time.Time {
	return now.Add(-time.Second)
}
