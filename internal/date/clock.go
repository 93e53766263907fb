// Package date parses formatted date strings strictly and provides a current
// time that tests can freeze.
//
// The package-level functions share one process-wide frozen time stack. Every
// call is guarded by a mutex, but the stack itself is global: goroutines or
// parallel tests that freeze time see each other's frozen instants. Code that
// needs isolation should create its own Stack and depend on the Clock or
// Provider interface.
package date

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tartampluch/go-date/internal/config"
)

// Clock abstracts time.Now() to allow deterministic testing.
type Clock interface {
	Now() time.Time
}

// Provider is a Clock whose current instant can be overridden.
type Provider interface {
	Clock
	Freeze(instant time.Time)
	Unfreeze() (time.Time, error)
	IsFrozen() bool
}

// Stack is a Clock backed by a last-in-first-out stack of frozen instants.
// While the stack is empty, Now reports the source clock.
type Stack struct {
	mu       sync.Mutex
	source   clockwork.Clock
	instants []time.Time
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithSource replaces the real clock consulted while nothing is frozen.
func WithSource(c clockwork.Clock) StackOption {
	return func(s *Stack) {
		if c != nil {
			s.source = c
		}
	}
}

// NewStack creates an empty (live) Stack.
func NewStack(opts ...StackOption) *Stack {
	s := &Stack{source: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the most recently frozen instant, or the source time when live.
func (s *Stack) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.instants); n > 0 {
		return s.instants[n-1]
	}
	return s.source.Now()
}

// At applies modifier to Now.
func (s *Stack) At(modifier string) (time.Time, error) {
	return Modify(s.Now(), modifier)
}

// Freeze pushes instant, shadowing any previous freeze until it is popped.
func (s *Stack) Freeze(instant time.Time) {
	s.mu.Lock()
	s.instants = append(s.instants, instant)
	depth := len(s.instants)
	s.mu.Unlock()

	slog.Debug(config.MsgFrozen,
		config.LogKeyComponent, config.CompClock,
		config.LogKeyInstant, instant,
		config.LogKeyDepth, depth,
	)
}

// Unfreeze pops and returns the most recently frozen instant.
// It returns ErrEmptyStack when nothing is frozen.
func (s *Stack) Unfreeze() (time.Time, error) {
	s.mu.Lock()
	n := len(s.instants)
	if n == 0 {
		s.mu.Unlock()
		return time.Time{}, ErrEmptyStack
	}
	top := s.instants[n-1]
	s.instants[n-1] = time.Time{}
	s.instants = s.instants[:n-1]
	s.mu.Unlock()

	slog.Debug(config.MsgUnfrozen,
		config.LogKeyComponent, config.CompClock,
		config.LogKeyInstant, top,
		config.LogKeyDepth, n-1,
	)
	return top, nil
}

// IsFrozen reports whether at least one instant is frozen.
func (s *Stack) IsFrozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instants) > 0
}

// Depth returns the number of frozen instants.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instants)
}

// Reset drops every frozen instant, returning the stack to live mode.
func (s *Stack) Reset() {
	s.mu.Lock()
	dropped := len(s.instants)
	s.instants = nil
	s.mu.Unlock()

	slog.Debug(config.MsgStackReset,
		config.LogKeyComponent, config.CompClock,
		config.LogKeyDepth, dropped,
	)
}

var std = NewStack()

// Default returns the process-wide Stack used by the package-level functions.
func Default() *Stack { return std }

// Now returns the current instant of the process-wide Stack.
func Now() time.Time { return std.Now() }

// At applies modifier to Now, e.g. "tomorrow 08:00" or "-8 minutes".
func At(modifier string) (time.Time, error) { return std.At(modifier) }

// Freeze overrides the current instant. Multiple calls stack.
// Use this only in tests.
func Freeze(instant time.Time) { std.Freeze(instant) }

// Unfreeze removes the most recent freeze. Once the stack is empty, time
// flows as usual again.
func Unfreeze() (time.Time, error) { return std.Unfreeze() }

// IsFrozen reports whether the process-wide Stack is frozen.
func IsFrozen() bool { return std.IsFrozen() }

// Reset clears the process-wide Stack. Intended for TestMain.
func Reset() { std.Reset() }
