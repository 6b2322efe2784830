package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"zone25/internal/core/clock"
	"zone25/internal/logx"
)

const idPrefix = "pomodoro-"

// ErrPermissionDenied is returned by Schedule when notifications are not allowed.
var ErrPermissionDenied = errors.New("notification permission denied")

// Request is a single delayed notification.
type Request struct {
	ID        string
	Title     string
	Body      string
	SoundID   string
	FireDelay time.Duration
}

// Sender delivers a notification immediately.
type Sender interface {
	Send(request Request) error
}

// Permission reports and requests the right to notify the user.
type Permission interface {
	Granted() bool
	Request() (bool, error)
}

// Dispatcher holds pending requests and hands each to its Sender once the
// delay has passed. Delivery failures are logged and dropped.
type Dispatcher struct {
	mu         sync.Mutex
	sender     Sender
	permission Permission
	clock      clock.Clock
	log        logx.Logger
	pending    map[string]clock.Timer
}

// Options configures a Dispatcher. Zero values select the system clock,
// a permission that is always granted and a no-op logger.
type Options struct {
	Clock      clock.Clock
	Permission Permission
	Logger     logx.Logger
}

// NewDispatcher creates a dispatcher delivering through sender.
func NewDispatcher(sender Sender, options Options) *Dispatcher {
	if options.Clock == nil {
		options.Clock = clock.System
	}
	if options.Permission == nil {
		options.Permission = Granted
	}
	if options.Logger.IsZero() {
		options.Logger = logx.Nop()
	}
	return &Dispatcher{
		sender:     sender,
		permission: options.Permission,
		clock:      options.Clock,
		log:        options.Logger,
		pending:    make(map[string]clock.Timer),
	}
}

// RequestPermission asks the user for permission to notify.
func (dispatcher *Dispatcher) RequestPermission() (bool, error) {
	return dispatcher.permission.Request()
}

// Authorized reports whether notifications may currently be scheduled.
func (dispatcher *Dispatcher) Authorized() bool {
	return dispatcher.permission.Granted()
}

// Schedule queues request for delivery after its FireDelay.
// Requests without an ID get one.
func (dispatcher *Dispatcher) Schedule(request Request) error {
	if !dispatcher.Authorized() {
		return ErrPermissionDenied
	}
	if request.ID == "" {
		request.ID = idPrefix + uuid.NewString()
	}
	if request.FireDelay < 0 {
		request.FireDelay = 0
	}

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if previous, ok := dispatcher.pending[request.ID]; ok {
		previous.Stop()
	}
	dispatcher.pending[request.ID] = dispatcher.clock.AfterFunc(request.FireDelay, func() {
		dispatcher.deliver(request)
	})
	return nil
}

// CancelAll stops every pending request. Calling it again is a no-op.
func (dispatcher *Dispatcher) CancelAll() {
	dispatcher.mu.Lock()
	pending := dispatcher.pending
	dispatcher.pending = make(map[string]clock.Timer)
	dispatcher.mu.Unlock()

	for _, timer := range pending {
		timer.Stop()
	}
	if len(pending) > 0 {
		dispatcher.log.Debug("cancelled pending notifications", logx.Int("count", len(pending)))
	}
}

// Pending returns the number of requests still waiting to fire.
func (dispatcher *Dispatcher) Pending() int {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return len(dispatcher.pending)
}

func (dispatcher *Dispatcher) deliver(request Request) {
	dispatcher.mu.Lock()
	if _, ok := dispatcher.pending[request.ID]; !ok {
		dispatcher.mu.Unlock()
		return
	}
	delete(dispatcher.pending, request.ID)
	dispatcher.mu.Unlock()

	if err := dispatcher.sender.Send(request); err != nil {
		dispatcher.log.Warn("notification delivery failed",
			logx.String("id", request.ID),
			logx.String("title", request.Title),
			logx.Err(err),
		)
		return
	}
	dispatcher.log.Info("notification delivered",
		logx.String("id", request.ID),
		logx.String("title", request.Title),
		logx.String("sound", request.SoundID),
	)
}
