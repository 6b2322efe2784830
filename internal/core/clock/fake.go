package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced clock for tests.
// Callbacks registered with AfterFunc run synchronously inside Advance.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *Fake
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

// NewFake returns a fake clock set to now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// Now returns the fake time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// Set moves the clock to now without firing timers.
func (fake *Fake) Set(now time.Time) {
	fake.mu.Lock()
	fake.now = now
	fake.mu.Unlock()
}

// AfterFunc registers f to run once the clock has advanced by d.
func (fake *Fake) AfterFunc(d time.Duration, f func()) Timer {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	timer := &fakeTimer{clock: fake, at: fake.now.Add(d), fn: f}
	fake.timers = append(fake.timers, timer)
	return timer
}

// Advance moves the clock forward and fires every due timer in time order.
func (fake *Fake) Advance(d time.Duration) {
	fake.mu.Lock()
	fake.now = fake.now.Add(d)
	now := fake.now
	var due []*fakeTimer
	for _, timer := range fake.timers {
		if !timer.stopped && !timer.fired && !timer.at.After(now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	fake.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, timer := range due {
		timer.fn()
	}
}

// Pending reports the number of timers that have neither fired nor been stopped.
func (fake *Fake) Pending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	count := 0
	for _, timer := range fake.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (timer *fakeTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	if timer.stopped || timer.fired {
		return false
	}
	timer.stopped = true
	return true
}
