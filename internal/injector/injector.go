// Package injector presses and releases keys on the host.
//
// The real implementation is per platform (Linux uses a uinput virtual
// keyboard). Unsupported platforms return ErrUnavailable from New; the
// Recording injector works everywhere and backs tests and dry runs.
package injector

import (
	"errors"
	"sync"

	"vpiano/internal/notation"
)

// ErrUnavailable is returned when key injection is not supported on this
// platform or the required device cannot be opened.
var ErrUnavailable = errors.New("injector: key injection not available on this platform")

// New creates the platform key injector. The caller must Close it when
// playback is finished so the virtual device is torn down.
func New() (Keyboard, error) {
	return newPlatformKeyboard()
}

// Keyboard is a closable key injector.
type Keyboard interface {
	Press(k notation.Key) error
	Release(k notation.Key) error
	Close() error
}

// Op is one recorded injection call.
type Op struct {
	Key     notation.Key
	Release bool
}

// Recording is a Keyboard that records calls instead of touching the
// host. It is safe for concurrent use.
type Recording struct {
	mu  sync.Mutex
	ops []Op
}

// NewRecording creates an empty recording injector.
func NewRecording() *Recording {
	return &Recording{}
}

// Press records a press.
func (r *Recording) Press(k notation.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Key: k})
	return nil
}

// Release records a release.
func (r *Recording) Release(k notation.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Key: k, Release: true})
	return nil
}

// Close is a no-op.
func (r *Recording) Close() error { return nil }

// Ops returns a copy of the recorded calls in order.
func (r *Recording) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}
