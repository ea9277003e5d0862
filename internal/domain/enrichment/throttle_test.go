package enrichment

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestThrottle() (*Throttle, *manualClock) {
	clock := &manualClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	th := NewThrottle(ThrottleConfig{
		MinInterval:          30 * time.Second,
		QuotaCooldown:        24 * time.Hour,
		ErrorCooldown:        time.Hour,
		MaxConsecutiveErrors: 3,
	}, clock.Now)
	return th, clock
}

func TestThrottleMinInterval(t *testing.T) {
	th, clock := newTestThrottle()

	require.True(t, th.ShouldAttemptRemote())
	require.False(t, th.ShouldAttemptRemote())

	clock.Advance(29 * time.Second)
	require.False(t, th.ShouldAttemptRemote())

	clock.Advance(time.Second)
	require.True(t, th.ShouldAttemptRemote())
}

func TestThrottleQuotaCooldown(t *testing.T) {
	th, clock := newTestThrottle()

	require.True(t, th.ShouldAttemptRemote())
	th.RecordOutcome(OutcomeQuotaExceeded)

	st := th.Status()
	require.False(t, st.Available)
	require.Equal(t, "quota_exceeded", st.DisabledReason)
	require.NotNil(t, st.DisabledUntil)

	clock.Advance(23 * time.Hour)
	require.False(t, th.ShouldAttemptRemote())

	clock.Advance(time.Hour)
	require.True(t, th.ShouldAttemptRemote())
	require.Equal(t, 0, th.Status().ConsecutiveErrors)
}

func TestThrottleConsecutiveErrors(t *testing.T) {
	th, clock := newTestThrottle()

	for i := 0; i < 2; i++ {
		require.True(t, th.ShouldAttemptRemote())
		th.RecordOutcome(OutcomeError)
		clock.Advance(time.Minute)
	}
	require.True(t, th.Status().Available)

	require.True(t, th.ShouldAttemptRemote())
	th.RecordOutcome(OutcomeError)
	require.False(t, th.Status().Available)
	require.Equal(t, "too_many_errors", th.Status().DisabledReason)

	clock.Advance(time.Hour)
	require.True(t, th.ShouldAttemptRemote())
}

func TestThrottleSuccessResetsErrors(t *testing.T) {
	th, clock := newTestThrottle()

	require.True(t, th.ShouldAttemptRemote())
	th.RecordOutcome(OutcomeError)
	clock.Advance(time.Minute)
	require.True(t, th.ShouldAttemptRemote())
	th.RecordOutcome(OutcomeSuccess)

	require.Equal(t, 0, th.Status().ConsecutiveErrors)
}

func TestThrottleConcurrentCallersGetOneSlot(t *testing.T) {
	th, _ := newTestThrottle()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if th.ShouldAttemptRemote() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, allowed)
}
