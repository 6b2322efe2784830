package monitor

import (
	"sync"
	"time"

	"zone25/internal/core/phase"
)

// EventType defines the type of Monitor event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
)

// Event is a Monitor update for observers.
type Event struct {
	Type     EventType
	Previous phase.State
	Snapshot phase.Snapshot
}

// Source produces the current phase snapshot, normally a *phase.Scheduler.
type Source interface {
	Snapshot() phase.Snapshot
}

// Config contains runtime options for Monitor.
type Config struct {
	TickInterval time.Duration
}

// Monitor polls a Source on a fixed cadence and tells observers about
// progress and phase transitions. It never changes the run itself.
type Monitor struct {
	// tickMu orders polls so observers see snapshots in clock order.
	tickMu  sync.Mutex
	mu      sync.Mutex
	source  Source
	options Config
	events  []chan Event
	stopCh  chan struct{}
	done    chan struct{}
	running bool
	last    phase.Status
	hasLast bool
}

// New creates a Monitor over source.
func New(source Source, options Config) *Monitor {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Monitor{
		source:  source,
		options: options,
	}
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (monitor *Monitor) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	monitor.mu.Lock()
	monitor.events = append(monitor.events, ch)
	monitor.mu.Unlock()
	return ch
}

// Start launches the polling loop. Starting a running monitor is a no-op.
func (monitor *Monitor) Start() {
	monitor.mu.Lock()
	if monitor.running {
		monitor.mu.Unlock()
		return
	}
	monitor.running = true
	monitor.stopCh = make(chan struct{})
	monitor.done = make(chan struct{})
	stopCh, done := monitor.stopCh, monitor.done
	monitor.mu.Unlock()

	monitor.Refresh()
	go monitor.run(stopCh, done)
}

// Stop terminates the polling loop and closes observers.
func (monitor *Monitor) Stop() {
	monitor.mu.Lock()
	if !monitor.running {
		monitor.mu.Unlock()
		return
	}
	monitor.running = false
	close(monitor.stopCh)
	done := monitor.done
	monitor.mu.Unlock()

	<-done

	monitor.mu.Lock()
	for _, ch := range monitor.events {
		close(ch)
	}
	monitor.events = nil
	monitor.mu.Unlock()
}

// Refresh polls the source immediately, e.g. right after the user toggled the run.
func (monitor *Monitor) Refresh() {
	monitor.tick()
}

func (monitor *Monitor) run(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(monitor.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			monitor.tick()
		}
	}
}

func (monitor *Monitor) tick() {
	monitor.tickMu.Lock()
	defer monitor.tickMu.Unlock()
	snapshot := monitor.source.Snapshot()

	monitor.mu.Lock()
	defer monitor.mu.Unlock()

	previous := monitor.last
	changed := !monitor.hasLast ||
		previous.State != snapshot.Status.State ||
		previous.Block != snapshot.Status.Block
	monitor.last = snapshot.Status
	monitor.hasLast = true

	if changed {
		monitor.emitLocked(Event{Type: EventStateChange, Previous: previous.State, Snapshot: snapshot})
	}
	monitor.emitLocked(Event{Type: EventProgress, Snapshot: snapshot})
}

func (monitor *Monitor) emitLocked(event Event) {
	for _, ch := range monitor.events {
		select {
		case ch <- event:
		default:
		}
	}
}
