package enrichment

import (
	"sync"
	"time"
)

// Outcome is the result of a remote generation attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeError
	OutcomeQuotaExceeded
)

// ThrottleConfig bounds how often the remote provider is consulted.
type ThrottleConfig struct {
	MinInterval          time.Duration
	QuotaCooldown        time.Duration
	ErrorCooldown        time.Duration
	MaxConsecutiveErrors int
}

// ThrottleStatus is a point-in-time view of the throttle.
type ThrottleStatus struct {
	Enabled           bool       `json:"enabled"`
	Available         bool       `json:"available"`
	ConsecutiveErrors int        `json:"consecutive_errors"`
	DisabledReason    string     `json:"disabled_reason,omitempty"`
	DisabledUntil     *time.Time `json:"disabled_until,omitempty"`
	LastAttempt       *time.Time `json:"last_attempt,omitempty"`
}

// Throttle serializes all access to the remote-provider bookkeeping: last
// attempt time, consecutive error count and the temporary disable window.
type Throttle struct {
	cfg ThrottleConfig
	now func() time.Time

	mu                sync.Mutex
	lastAttempt       time.Time
	consecutiveErrors int
	disabledUntil     time.Time
	disabledReason    string
}

// NewThrottle constructs a throttle reading time from now.
func NewThrottle(cfg ThrottleConfig, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	if cfg.MaxConsecutiveErrors <= 0 {
		cfg.MaxConsecutiveErrors = 5
	}
	return &Throttle{cfg: cfg, now: now}
}

// ShouldAttemptRemote reports whether a remote call may start now. A true
// result reserves the slot, so concurrent callers cannot both pass the
// minimum interval check.
func (t *Throttle) ShouldAttemptRemote() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if !t.disabledUntil.IsZero() {
		if now.Before(t.disabledUntil) {
			return false
		}
		t.disabledUntil = time.Time{}
		t.disabledReason = ""
		t.consecutiveErrors = 0
	}
	if !t.lastAttempt.IsZero() && now.Sub(t.lastAttempt) < t.cfg.MinInterval {
		return false
	}
	t.lastAttempt = now
	return true
}

// RecordOutcome updates the error bookkeeping after an attempt.
func (t *Throttle) RecordOutcome(outcome Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	switch outcome {
	case OutcomeSuccess:
		t.consecutiveErrors = 0
	case OutcomeQuotaExceeded:
		t.consecutiveErrors++
		t.disable(now.Add(t.cfg.QuotaCooldown), "quota_exceeded")
	default:
		t.consecutiveErrors++
		if t.consecutiveErrors >= t.cfg.MaxConsecutiveErrors {
			t.disable(now.Add(t.cfg.ErrorCooldown), "too_many_errors")
		}
	}
}

// disable never shortens an existing window.
func (t *Throttle) disable(until time.Time, reason string) {
	if until.After(t.disabledUntil) {
		t.disabledUntil = until
		t.disabledReason = reason
	}
}

// Status snapshots the throttle without reserving a slot.
func (t *Throttle) Status() ThrottleStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	st := ThrottleStatus{
		Enabled:           true,
		Available:         t.disabledUntil.IsZero() || !now.Before(t.disabledUntil),
		ConsecutiveErrors: t.consecutiveErrors,
	}
	if !st.Available {
		until := t.disabledUntil
		st.DisabledUntil = &until
		st.DisabledReason = t.disabledReason
	}
	if !t.lastAttempt.IsZero() {
		last := t.lastAttempt
		st.LastAttempt = &last
	}
	return st
}
