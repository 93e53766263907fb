package datetest_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-date/internal/date"
	"github.com/tartampluch/go-date/internal/datetest"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockTB records fatal failures instead of stopping the goroutine.
type MockTB struct {
	testing.TB
	mock.Mock
	cleanups []func()
}

func (m *MockTB) Helper()                        {}
func (m *MockTB) Name() string                   { return "MockTB" }
func (m *MockTB) Cleanup(f func())               { m.cleanups = append(m.cleanups, f) }
func (m *MockTB) Fatalf(format string, _ ...any) { m.Called(format) }

// reference is "now" for the injected real clock: June 15th, 2025, 10:00 UTC.
var reference = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newHook(marker string) (*datetest.Hook, *date.Stack) {
	stack := date.NewStack()
	h := datetest.NewHook(marker)
	h.Provider = stack
	h.Source = clockwork.NewFakeClockAt(reference)
	return h, stack
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestHook_NoMarker(t *testing.T) {
	h, stack := newHook("")

	assert.False(t, h.Run(t))
	assert.False(t, h.Run(t, "skip", "freezeTimeout tomorrow"))
	assert.False(t, stack.IsFrozen())
}

func TestHook_FreezesCurrentInstant(t *testing.T) {
	h, stack := newHook("")

	t.Run("annotated", func(t *testing.T) {
		require.True(t, h.Run(t, "freezeTime"))
		assert.True(t, stack.IsFrozen())
		assert.Equal(t, reference, stack.Now())
		assert.Equal(t, stack.Now(), stack.Now(), "Frozen time does not move")
	})

	assert.False(t, stack.IsFrozen(), "Cleanup must unfreeze after the test")
}

func TestHook_FreezesToModifier(t *testing.T) {
	h, stack := newHook("")

	t.Run("annotated", func(t *testing.T) {
		require.True(t, h.Run(t, "@freezeTime yesterday 08:00"))
		assert.Equal(t, time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC), stack.Now())
	})

	assert.False(t, stack.IsFrozen())
}

func TestHook_FirstMatchingTagWins(t *testing.T) {
	h, stack := newHook("")

	t.Run("annotated", func(t *testing.T) {
		h.Run(t, "other", "freezeTime 2001-01-01 00:00", "freezeTime 2002-01-01 00:00")
		assert.Equal(t, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), stack.Now())
		assert.Equal(t, 1, stack.Depth())
	})
}

func TestHook_CustomMarker(t *testing.T) {
	h, stack := newHook("clock")

	t.Run("annotated", func(t *testing.T) {
		require.True(t, h.Run(t, "freezeTime 2001-01-01", "clock tomorrow"))
		assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), stack.Now())
	})
}

// TestHook_MethodInsideClass mirrors method-level metadata overriding
// class-level metadata: the inner freeze shadows the outer one.
func TestHook_MethodInsideClass(t *testing.T) {
	stack := date.NewStack()
	source := clockwork.NewFakeClockAt(reference)
	class := &datetest.Hook{Provider: stack, Source: source}

	t.Run("class", func(t *testing.T) {
		class.Run(t, "freezeTime 2001-01-01 00:00")

		t.Run("method", func(t *testing.T) {
			method := &datetest.Hook{Provider: stack, Source: source}
			method.Run(t, "freezeTime 2002-01-01 00:00")
			assert.Equal(t, 2002, stack.Now().Year())
			assert.Equal(t, 2, stack.Depth())
		})

		assert.Equal(t, 2001, stack.Now().Year(), "Inner cleanup restores the outer freeze")
	})

	assert.False(t, stack.IsFrozen())
}

// TestHook_SharedAcrossSubtests reuses one Hook for a test and its subtests,
// the way a suite registers a single hook.
func TestHook_SharedAcrossSubtests(t *testing.T) {
	h, stack := newHook("")

	t.Run("class", func(t *testing.T) {
		require.True(t, h.Run(t, "freezeTime 2001-01-01 00:00"))

		t.Run("untagged method", func(t *testing.T) {
			assert.False(t, h.Run(t))
			assert.Equal(t, 2001, stack.Now().Year())
		})

		t.Run("tagged method", func(t *testing.T) {
			require.True(t, h.Run(t, "freezeTime 2002-01-01 00:00"))
			assert.Equal(t, 2002, stack.Now().Year())
			assert.Equal(t, 2, stack.Depth())
		})

		assert.Equal(t, 1, stack.Depth(), "Subtests undo only their own freeze")
		assert.Equal(t, 2001, stack.Now().Year())
	})

	assert.False(t, stack.IsFrozen(), "The outer freeze must not leak")
}

func TestHook_NestedStartEnd(t *testing.T) {
	h, stack := newHook("")

	require.True(t, h.Start(t, "freezeTime 2001-01-01 00:00"))
	assert.False(t, h.Start(t))
	h.End(t)
	assert.Equal(t, 1, stack.Depth(), "An inner End without a freeze keeps the outer one")

	require.True(t, h.Start(t, "freezeTime 2002-01-01 00:00"))
	h.End(t)
	assert.Equal(t, 2001, stack.Now().Year())

	h.End(t)
	assert.False(t, stack.IsFrozen())
}

func TestHook_StartEndPair(t *testing.T) {
	h, stack := newHook("")

	require.True(t, h.Start(t, "freezeTime +1 hour"))
	assert.Equal(t, reference.Add(time.Hour), stack.Now())

	h.End(t)
	assert.False(t, stack.IsFrozen())

	// A second End is a no-op: the hook only undoes its own freeze.
	h.End(t)
	assert.False(t, stack.IsFrozen())
}

func TestHook_EndWithoutFreeze(t *testing.T) {
	h, stack := newHook("")
	stack.Freeze(reference)

	assert.False(t, h.Start(t))
	h.End(t)

	assert.True(t, stack.IsFrozen(), "End must not pop a freeze it did not push")
}

func TestHook_InvalidModifierFails(t *testing.T) {
	h, stack := newHook("")
	tb := new(MockTB)
	tb.On("Fatalf", mock.Anything).Return().Once()

	assert.False(t, h.Start(tb, "freezeTime whenever"))
	assert.False(t, stack.IsFrozen())
	tb.AssertExpectations(t)
}

func TestHook_UnbalancedUnfreezeFails(t *testing.T) {
	h, stack := newHook("")
	tb := new(MockTB)
	tb.On("Fatalf", mock.Anything).Return().Once()

	require.True(t, h.Run(tb, "freezeTime"))
	require.Len(t, tb.cleanups, 1)

	// Someone else popped the freeze behind the hook's back.
	stack.Reset()
	tb.cleanups[0]()

	tb.AssertExpectations(t)
}

func TestFreezeTime_ProcessWide(t *testing.T) {
	require.False(t, date.IsFrozen())

	t.Run("empty modifier", func(t *testing.T) {
		before := time.Now()
		frozen := datetest.FreezeTime(t, "")
		assert.True(t, date.IsFrozen())
		assert.WithinDuration(t, before, frozen, time.Second)
		assert.Equal(t, frozen, date.Now())
	})
	assert.False(t, date.IsFrozen())

	t.Run("modifier", func(t *testing.T) {
		frozen := datetest.FreezeTime(t, "yesterday 08:00")
		y, m, d := time.Now().AddDate(0, 0, -1).Date()
		assert.Equal(t, time.Date(y, m, d, 8, 0, 0, 0, time.Local), frozen)
	})
	assert.False(t, date.IsFrozen())
}

func TestFreezeAt_ProcessWide(t *testing.T) {
	instant := time.Date(2017, 11, 28, 14, 5, 10, 0, time.UTC)

	t.Run("frozen", func(t *testing.T) {
		datetest.FreezeAt(t, instant)
		assert.Equal(t, instant, date.Now())

		parsed, err := date.ParseOptional("", "Y-m-d")
		require.NoError(t, err)
		y, m, d := instant.In(time.Local).Date()
		assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, time.Local), parsed)
	})

	assert.False(t, date.IsFrozen())
}
