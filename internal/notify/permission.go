package notify

import "sync/atomic"

// Granted is a permission that is always given. Desktop notifications need no prompt.
var Granted Permission = fixedPermission(true)

// Denied is a permission that is never given.
var Denied Permission = fixedPermission(false)

type fixedPermission bool

func (permission fixedPermission) Granted() bool { return bool(permission) }

func (permission fixedPermission) Request() (bool, error) { return bool(permission), nil }

// Toggle is a permission the user can switch at runtime, e.g. from a config file.
type Toggle struct {
	granted atomic.Bool
}

// NewToggle returns a Toggle in the given state.
func NewToggle(granted bool) *Toggle {
	toggle := &Toggle{}
	toggle.granted.Store(granted)
	return toggle
}

func (toggle *Toggle) Granted() bool { return toggle.granted.Load() }

// Request reports the current state; a denied toggle stays denied until Set.
func (toggle *Toggle) Request() (bool, error) { return toggle.granted.Load(), nil }

// Set switches the permission.
func (toggle *Toggle) Set(granted bool) { toggle.granted.Store(granted) }
