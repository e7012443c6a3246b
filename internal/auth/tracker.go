package auth

import (
	"sync"
	"time"
)

// TrackerConfig holds the lockout policy for the login gate
type TrackerConfig struct {
	MaxAttempts     int
	AttemptWindow   time.Duration
	LockoutDuration time.Duration
}

// DefaultTrackerConfig returns the stock policy: 5 attempts in a 5 minute
// window, 15 minute lockout.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MaxAttempts:     5,
		AttemptWindow:   5 * time.Minute,
		LockoutDuration: 15 * time.Minute,
	}
}

// attemptRecord tracks failed logins for a single client key. A record only
// exists while the client has at least one failure on the books; success
// deletes it outright.
type attemptRecord struct {
	count       int
	lastAttempt time.Time
	lockedUntil time.Time
}

// Admission is the result of an admission check against the tracker
type Admission struct {
	Allowed           bool
	RemainingAttempts int
	// LockedUntil is zero unless an active lockout produced the denial
	LockedUntil time.Time
}

// AttemptTracker enforces the login lockout policy. State is in-memory and
// resets on process restart; this is a documented property of the service,
// not an oversight. Construct one per server and inject it into the login
// handler so tests can own their own instance.
//
// The window is a reset-on-gap scheme: the attempt budget restores whenever
// the most recent failure is older than AttemptWindow, rather than keeping a
// rolling log of timestamps. Bursts spanning a window boundary can therefore
// reset early. Kept for simplicity; the lockout is the real backstop.
type AttemptTracker struct {
	mu       sync.Mutex
	attempts map[string]*attemptRecord
	config   TrackerConfig

	// now is swappable for tests
	now func() time.Time
}

// NewAttemptTracker creates a tracker with the given policy
func NewAttemptTracker(config TrackerConfig) *AttemptTracker {
	return &AttemptTracker{
		attempts: make(map[string]*attemptRecord),
		config:   config,
		now:      time.Now,
	}
}

// CheckAdmission reports whether a login attempt from the client may proceed.
// Expired records are reclaimed here lazily; there is no background sweep.
// Never returns an error: a denial carries the lockout deadline (when one
// exists) for Retry-After computation.
func (t *AttemptTracker) CheckAdmission(clientKey string) Admission {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	rec, ok := t.attempts[clientKey]
	if !ok {
		return Admission{Allowed: true, RemainingAttempts: t.config.MaxAttempts}
	}

	if now.Before(rec.lockedUntil) {
		return Admission{Allowed: false, RemainingAttempts: 0, LockedUntil: rec.lockedUntil}
	}

	// The window resets on the age of the single most recent failure
	if now.Sub(rec.lastAttempt) > t.config.AttemptWindow {
		delete(t.attempts, clientKey)
		return Admission{Allowed: true, RemainingAttempts: t.config.MaxAttempts}
	}

	remaining := t.config.MaxAttempts - rec.count
	if remaining < 0 {
		remaining = 0
	}
	return Admission{Allowed: remaining > 0, RemainingAttempts: remaining}
}

// RecordOutcome records the result of a credential check. Success deletes the
// client's record entirely; failure increments the counter and arms the
// lockout when the counter reaches MaxAttempts. Attempts rejected at
// admission must not be recorded, which is what keeps an active lockout from
// being extended.
func (t *AttemptTracker) RecordOutcome(clientKey string, success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if success {
		delete(t.attempts, clientKey)
		return
	}

	now := t.now()

	rec, ok := t.attempts[clientKey]
	if !ok || now.Sub(rec.lastAttempt) > t.config.AttemptWindow {
		t.attempts[clientKey] = &attemptRecord{count: 1, lastAttempt: now}
		return
	}

	rec.count++
	rec.lastAttempt = now
	if rec.count >= t.config.MaxAttempts {
		rec.lockedUntil = now.Add(t.config.LockoutDuration)
	}
}

// RetryAfterSeconds converts an admission denial into the wait the caller
// should be told. Falls back to 60s when the denial has no lockout deadline.
func (t *AttemptTracker) RetryAfterSeconds(adm Admission) int {
	if adm.LockedUntil.IsZero() {
		return 60
	}
	secs := int(adm.LockedUntil.Sub(t.now()).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}
