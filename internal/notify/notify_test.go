package notify

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"zone25/internal/core/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingSender struct {
	mu   sync.Mutex
	sent []Request
	err  error
	ch   chan Request
}

func (sender *recordingSender) Send(request Request) error {
	sender.mu.Lock()
	sender.sent = append(sender.sent, request)
	sender.mu.Unlock()
	if sender.ch != nil {
		sender.ch <- request
	}
	return sender.err
}

func (sender *recordingSender) titles() []string {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	titles := make([]string, 0, len(sender.sent))
	for _, request := range sender.sent {
		titles = append(titles, request.Title)
	}
	return titles
}

func newTestDispatcher(sender Sender, permission Permission) (*Dispatcher, *clock.Fake) {
	fake := clock.NewFake(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	return NewDispatcher(sender, Options{Clock: fake, Permission: permission}), fake
}

func TestDispatcherDeliversAfterDelay(t *testing.T) {
	sender := &recordingSender{}
	dispatcher, fake := newTestDispatcher(sender, Granted)

	require.NoError(t, dispatcher.Schedule(Request{Title: "Short Break", FireDelay: 25 * time.Minute}))
	require.NoError(t, dispatcher.Schedule(Request{Title: "Focus", FireDelay: 30 * time.Minute}))
	assert.Equal(t, 2, dispatcher.Pending())

	fake.Advance(24 * time.Minute)
	assert.Empty(t, sender.titles())

	fake.Advance(time.Minute)
	assert.Equal(t, []string{"Short Break"}, sender.titles())
	assert.Equal(t, 1, dispatcher.Pending())

	fake.Advance(5 * time.Minute)
	assert.Equal(t, []string{"Short Break", "Focus"}, sender.titles())
	assert.Zero(t, dispatcher.Pending())
}

func TestDispatcherAssignsPrefixedIDs(t *testing.T) {
	sender := &recordingSender{}
	dispatcher, fake := newTestDispatcher(sender, Granted)

	require.NoError(t, dispatcher.Schedule(Request{Title: "Focus"}))
	fake.Advance(0)

	require.Len(t, sender.sent, 1)
	assert.True(t, strings.HasPrefix(sender.sent[0].ID, idPrefix))
}

func TestCancelAllIsIdempotent(t *testing.T) {
	sender := &recordingSender{}
	dispatcher, fake := newTestDispatcher(sender, Granted)

	require.NoError(t, dispatcher.Schedule(Request{Title: "Focus", FireDelay: time.Minute}))
	require.NoError(t, dispatcher.Schedule(Request{Title: "Long Break", FireDelay: time.Hour}))

	dispatcher.CancelAll()
	dispatcher.CancelAll()

	assert.Zero(t, dispatcher.Pending())
	assert.Zero(t, fake.Pending())
	fake.Advance(2 * time.Hour)
	assert.Empty(t, sender.titles())
}

func TestScheduleDeniedWithoutPermission(t *testing.T) {
	dispatcher, _ := newTestDispatcher(&recordingSender{}, Denied)

	assert.False(t, dispatcher.Authorized())
	granted, err := dispatcher.RequestPermission()
	require.NoError(t, err)
	assert.False(t, granted)
	assert.ErrorIs(t, dispatcher.Schedule(Request{Title: "Focus"}), ErrPermissionDenied)
	assert.Zero(t, dispatcher.Pending())
}

func TestToggleSwitchesPermission(t *testing.T) {
	toggle := NewToggle(false)
	dispatcher, _ := newTestDispatcher(&recordingSender{}, toggle)
	assert.False(t, dispatcher.Authorized())

	toggle.Set(true)
	assert.True(t, dispatcher.Authorized())
	require.NoError(t, dispatcher.Schedule(Request{Title: "Focus", FireDelay: time.Second}))
	dispatcher.CancelAll()
}

func TestSendFailureIsDropped(t *testing.T) {
	sender := &recordingSender{err: errors.New("bus closed")}
	dispatcher, fake := newTestDispatcher(sender, Granted)

	require.NoError(t, dispatcher.Schedule(Request{Title: "Focus", FireDelay: time.Second}))
	fake.Advance(time.Second)

	assert.Equal(t, []string{"Focus"}, sender.titles())
	assert.Zero(t, dispatcher.Pending())
}

func TestDispatcherWithSystemClock(t *testing.T) {
	sender := &recordingSender{ch: make(chan Request, 1)}
	dispatcher := NewDispatcher(sender, Options{})

	require.NoError(t, dispatcher.Schedule(Request{Title: "Focus", FireDelay: 10 * time.Millisecond}))

	select {
	case request := <-sender.ch:
		assert.Equal(t, "Focus", request.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestWriterSender(t *testing.T) {
	var buf bytes.Buffer
	sender := NewWriterSender(&buf, true)
	sender.now = func() time.Time { return time.Date(2026, 3, 1, 8, 25, 0, 0, time.UTC) }

	require.NoError(t, sender.Send(Request{Title: "Short Break", Body: "Take a short break for 5 minutes"}))
	assert.Equal(t, "\a[08:25:00] Short Break: Take a short break for 5 minutes\n", buf.String())
}

func TestFyneSenderWithoutApp(t *testing.T) {
	assert.Error(t, FyneSender{}.Send(Request{Title: "Focus"}))
}
