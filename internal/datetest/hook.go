// Package datetest freezes the date package clock around Go tests.
//
// Frozen instants live on a shared stack. Tests that call t.Parallel() while
// freezing the process-wide clock observe each other's instants; give such
// tests their own date.Stack through Hook.Provider instead.
package datetest

import (
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tartampluch/go-date/internal/config"
	"github.com/tartampluch/go-date/internal/date"
)

// Hook freezes time for tests carrying a marker tag, such as
// "freezeTime" or "freezeTime yesterday 08:00".
type Hook struct {
	// Marker is the tag name to look for. Defaults to config.DefaultFreezeMarker.
	Marker string

	// Provider receives Freeze/Unfreeze calls. Defaults to date.Default().
	Provider date.Provider

	// Source is the real clock modifiers are evaluated against.
	Source clockwork.Clock

	// pending records, per unmatched Start, whether it froze. End pops it,
	// so nested Start/End pairs on one Hook each undo only their own freeze.
	mu      sync.Mutex
	pending []bool
}

// NewHook creates a Hook for the given marker (empty for the default).
func NewHook(marker string) *Hook {
	return &Hook{Marker: marker}
}

func (h *Hook) marker() string {
	if h.Marker == "" {
		return config.DefaultFreezeMarker
	}
	return h.Marker
}

func (h *Hook) provider() date.Provider {
	if h.Provider == nil {
		return date.Default()
	}
	return h.Provider
}

func (h *Hook) source() clockwork.Clock {
	if h.Source == nil {
		return clockwork.NewRealClock()
	}
	return h.Source
}

// Start inspects tags and freezes time if one of them carries the marker.
// Only the first matching tag applies. It reports whether time was frozen.
// Every Start must be paired with an End.
func (h *Hook) Start(t testing.TB, tags ...string) bool {
	t.Helper()
	froze := h.freeze(t, tags)

	h.mu.Lock()
	h.pending = append(h.pending, froze)
	h.mu.Unlock()
	return froze
}

// End unfreezes time if the matching Start froze it.
func (h *Hook) End(t testing.TB) {
	t.Helper()

	h.mu.Lock()
	n := len(h.pending)
	if n == 0 {
		h.mu.Unlock()
		return
	}
	froze := h.pending[n-1]
	h.pending = h.pending[:n-1]
	h.mu.Unlock()

	if froze {
		h.unfreeze(t)
	}
}

// Run freezes like Start and registers the matching unfreeze as a cleanup
// of t. It does not touch the Start/End bookkeeping, so one Hook can serve
// a test and its subtests.
func (h *Hook) Run(t testing.TB, tags ...string) bool {
	t.Helper()
	if !h.freeze(t, tags) {
		return false
	}
	t.Cleanup(func() { h.unfreeze(t) })
	return true
}

func (h *Hook) freeze(t testing.TB, tags []string) bool {
	t.Helper()

	modifier, ok := h.lookup(tags)
	if !ok {
		slog.Debug(config.MsgHookSkipped,
			config.LogKeyComponent, config.CompHook,
			config.LogKeyTest, t.Name(),
			config.LogKeyMarker, h.marker(),
		)
		return false
	}

	instant, err := date.Modify(h.source().Now(), modifier)
	if err != nil {
		t.Fatalf("%s: %v", config.ErrFreezeModifier, err)
		return false
	}

	h.provider().Freeze(instant)

	slog.Debug(config.MsgHookFrozen,
		config.LogKeyComponent, config.CompHook,
		config.LogKeyTest, t.Name(),
		config.LogKeyModifier, modifier,
		config.LogKeyInstant, instant,
	)
	return true
}

func (h *Hook) unfreeze(t testing.TB) {
	t.Helper()
	if _, err := h.provider().Unfreeze(); err != nil {
		t.Fatalf("%s: %v", config.ErrUnfreeze, err)
	}
}

// lookup returns the modifier of the first tag naming the marker.
// A leading "@" is accepted, as in annotation syntax.
func (h *Hook) lookup(tags []string) (string, bool) {
	marker := h.marker()
	for _, tag := range tags {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), config.TagPrefix)
		name, modifier, _ := strings.Cut(tag, " ")
		if name == marker {
			return strings.TrimSpace(modifier), true
		}
	}
	return "", false
}

// FreezeTime freezes the process-wide clock for the rest of t. An empty
// modifier freezes the real current instant. The frozen instant is returned.
func FreezeTime(t testing.TB, modifier string) time.Time {
	t.Helper()
	h := &Hook{}
	h.Run(t, config.DefaultFreezeMarker+" "+modifier)
	return date.Now()
}

// FreezeAt freezes the process-wide clock at instant for the rest of t.
func FreezeAt(t testing.TB, instant time.Time) {
	t.Helper()
	date.Freeze(instant)
	t.Cleanup(func() {
		if _, err := date.Unfreeze(); err != nil {
			t.Errorf("%s: %v", config.ErrUnfreeze, err)
		}
	})
}
