package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTracker returns a tracker with a controllable clock
func newTestTracker(config TrackerConfig) (*AttemptTracker, *time.Time) {
	t := NewAttemptTracker(config)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t.now = func() time.Time { return current }
	return t, &current
}

func TestTracker_FreshClientHasFullBudget(t *testing.T) {
	tracker, _ := newTestTracker(DefaultTrackerConfig())

	adm := tracker.CheckAdmission("1.2.3.4")
	assert.True(t, adm.Allowed)
	assert.Equal(t, 5, adm.RemainingAttempts)
	assert.True(t, adm.LockedUntil.IsZero())
}

func TestTracker_LockoutAfterMaxAttempts(t *testing.T) {
	tracker, clock := newTestTracker(DefaultTrackerConfig())
	key := "1.2.3.4"

	for i := 0; i < 5; i++ {
		adm := tracker.CheckAdmission(key)
		require.True(t, adm.Allowed, "attempt %d should be admitted", i+1)
		tracker.RecordOutcome(key, false)
	}

	adm := tracker.CheckAdmission(key)
	require.False(t, adm.Allowed)
	assert.Equal(t, 0, adm.RemainingAttempts)
	assert.Equal(t, clock.Add(15*time.Minute), adm.LockedUntil)
	assert.Equal(t, 900, tracker.RetryAfterSeconds(adm))
}

func TestTracker_LockoutExpires(t *testing.T) {
	tracker, clock := newTestTracker(DefaultTrackerConfig())
	key := "1.2.3.4"

	for i := 0; i < 5; i++ {
		tracker.RecordOutcome(key, false)
	}
	require.False(t, tracker.CheckAdmission(key).Allowed)

	// Just before the deadline: still locked
	*clock = clock.Add(15*time.Minute - time.Second)
	assert.False(t, tracker.CheckAdmission(key).Allowed)

	// Past the deadline the window has also long elapsed, so the budget
	// restores in full
	*clock = clock.Add(2 * time.Second)
	adm := tracker.CheckAdmission(key)
	assert.True(t, adm.Allowed)
	assert.Equal(t, 5, adm.RemainingAttempts)
}

func TestTracker_SuccessResetsRecord(t *testing.T) {
	tracker, _ := newTestTracker(DefaultTrackerConfig())
	key := "1.2.3.4"

	tracker.RecordOutcome(key, false)
	tracker.RecordOutcome(key, false)
	tracker.RecordOutcome(key, false)
	tracker.RecordOutcome(key, true)

	// The next failure is a first offense
	tracker.RecordOutcome(key, false)
	adm := tracker.CheckAdmission(key)
	assert.True(t, adm.Allowed)
	assert.Equal(t, 4, adm.RemainingAttempts)
}

func TestTracker_WindowGapRestoresBudget(t *testing.T) {
	cfg := DefaultTrackerConfig()
	tracker, clock := newTestTracker(cfg)
	key := "1.2.3.4"

	tracker.RecordOutcome(key, false)

	// 6 minutes later (> 5 minute window) a failure counts as the first again
	*clock = clock.Add(6 * time.Minute)
	tracker.RecordOutcome(key, false)

	adm := tracker.CheckAdmission(key)
	assert.True(t, adm.Allowed)
	assert.Equal(t, 4, adm.RemainingAttempts)
}

func TestTracker_WindowGapOnCheckDiscardsRecord(t *testing.T) {
	tracker, clock := newTestTracker(DefaultTrackerConfig())
	key := "1.2.3.4"

	for i := 0; i < 4; i++ {
		tracker.RecordOutcome(key, false)
	}
	assert.Equal(t, 1, tracker.CheckAdmission(key).RemainingAttempts)

	*clock = clock.Add(5*time.Minute + time.Second)
	adm := tracker.CheckAdmission(key)
	assert.True(t, adm.Allowed)
	assert.Equal(t, 5, adm.RemainingAttempts)
}

func TestTracker_LockoutNotExtendedWhileLocked(t *testing.T) {
	tracker, clock := newTestTracker(DefaultTrackerConfig())
	key := "1.2.3.4"

	for i := 0; i < 5; i++ {
		tracker.RecordOutcome(key, false)
	}
	first := tracker.CheckAdmission(key)
	require.False(t, first.Allowed)

	// Attempts while locked are rejected at admission and never recorded,
	// so the deadline stays put
	*clock = clock.Add(time.Minute)
	second := tracker.CheckAdmission(key)
	require.False(t, second.Allowed)
	assert.Equal(t, first.LockedUntil, second.LockedUntil)
}

func TestTracker_ClientKeysAreIsolated(t *testing.T) {
	tracker, _ := newTestTracker(DefaultTrackerConfig())

	for i := 0; i < 5; i++ {
		tracker.RecordOutcome("1.2.3.4", false)
	}
	require.False(t, tracker.CheckAdmission("1.2.3.4").Allowed)

	adm := tracker.CheckAdmission("5.6.7.8")
	assert.True(t, adm.Allowed)
	assert.Equal(t, 5, adm.RemainingAttempts)
}

func TestTracker_RetryAfterFallbackWithoutDeadline(t *testing.T) {
	tracker, _ := newTestTracker(DefaultTrackerConfig())

	assert.Equal(t, 60, tracker.RetryAfterSeconds(Admission{Allowed: false}))
}

func TestTracker_ConcurrentRecordingDoesNotCorruptState(t *testing.T) {
	tracker := NewAttemptTracker(TrackerConfig{
		MaxAttempts:     1000,
		AttemptWindow:   time.Hour,
		LockoutDuration: time.Hour,
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.RecordOutcome("1.2.3.4", false)
				tracker.CheckAdmission("1.2.3.4")
				tracker.RecordOutcome("5.6.7.8", j%2 == 0)
			}
		}()
	}
	wg.Wait()

	// All 800 failures land inside the window, so the exact count survives
	adm := tracker.CheckAdmission("1.2.3.4")
	assert.Equal(t, 200, adm.RemainingAttempts)
}
