package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"zone25/internal/core/clock"
	"zone25/internal/core/phase"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newScheduler(t *testing.T) (*phase.Scheduler, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	return phase.NewScheduler(phase.Default(), nil, nil, phase.Options{Clock: fake}), fake
}

func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event := <-ch:
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestRefreshEmitsStateChangeOnBoundary(t *testing.T) {
	scheduler, fake := newScheduler(t)
	monitor := New(scheduler, Config{TickInterval: time.Hour})
	events := monitor.Subscribe(16)

	scheduler.Start(context.Background())
	monitor.Refresh()
	first := drain(events)
	require.Len(t, first, 2)
	assert.Equal(t, EventStateChange, first[0].Type)
	assert.Equal(t, phase.StateWork, first[0].Snapshot.Status.State)
	assert.Equal(t, EventProgress, first[1].Type)

	fake.Advance(10 * time.Minute)
	monitor.Refresh()
	progressOnly := drain(events)
	require.Len(t, progressOnly, 1)
	assert.Equal(t, EventProgress, progressOnly[0].Type)
	assert.InDelta(t, 40.0, progressOnly[0].Snapshot.Progress[0], 1e-9)

	fake.Advance(15 * time.Minute)
	monitor.Refresh()
	crossing := drain(events)
	require.Len(t, crossing, 2)
	assert.Equal(t, EventStateChange, crossing[0].Type)
	assert.Equal(t, phase.StateWork, crossing[0].Previous)
	assert.Equal(t, phase.StateShortBreak, crossing[0].Snapshot.Status.State)
	assert.True(t, crossing[0].Snapshot.OnBreak)

	fake.Advance(5 * time.Minute)
	monitor.Refresh()
	next := drain(events)
	require.Len(t, next, 2)
	assert.Equal(t, 2, next[0].Snapshot.Status.Block)
	assert.Equal(t, phase.StateWork, next[0].Snapshot.Status.State)
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	scheduler, _ := newScheduler(t)
	monitor := New(scheduler, Config{TickInterval: time.Hour})
	events := monitor.Subscribe(0)

	monitor.Refresh()
	monitor.Refresh()
	monitor.Refresh()

	assert.Len(t, drain(events), 1)
}

func TestStartStopClosesSubscribers(t *testing.T) {
	scheduler, _ := newScheduler(t)
	monitor := New(scheduler, Config{TickInterval: 5 * time.Millisecond})
	events := monitor.Subscribe(64)

	monitor.Start()
	monitor.Start()

	select {
	case event := <-events:
		assert.Equal(t, EventStateChange, event.Type)
		assert.True(t, event.Snapshot.Finished)
	case <-time.After(2 * time.Second):
		t.Fatal("no event after start")
	}

	monitor.Stop()
	monitor.Stop()

	for range events {
	}
	_, open := <-events
	assert.False(t, open)
}

func TestDefaultTickInterval(t *testing.T) {
	scheduler, _ := newScheduler(t)
	monitor := New(scheduler, Config{})
	assert.Equal(t, time.Second, monitor.options.TickInterval)
}

type countingSource struct {
	mu    sync.Mutex
	calls int
}

func (source *countingSource) Snapshot() phase.Snapshot {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.calls++
	return phase.Snapshot{Now: time.Unix(int64(source.calls), 0)}
}

func TestConcurrentRefreshEmitsInOrder(t *testing.T) {
	monitor := New(&countingSource{}, Config{TickInterval: time.Hour})
	events := monitor.Subscribe(256)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			monitor.Refresh()
		}()
	}
	wg.Wait()

	var previous time.Time
	progress := 0
	for _, event := range drain(events) {
		if event.Type != EventProgress {
			continue
		}
		progress++
		assert.True(t, event.Snapshot.Now.After(previous), "snapshot %v emitted after %v", event.Snapshot.Now, previous)
		previous = event.Snapshot.Now
	}
	assert.Equal(t, 50, progress)
}
