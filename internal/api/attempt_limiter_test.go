package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterSlidingWindow(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter()
	key := "user-1"
	window := time.Minute
	now := time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

	limiter.record(key, now.Add(-2*time.Minute), window)
	if limiter.tooManyRecent(key, now, 1, window) {
		t.Fatal("expected old attempt to be pruned from active window")
	}

	limiter.record(key, now.Add(-30*time.Second), window)
	if !limiter.tooManyRecent(key, now, 1, window) {
		t.Fatal("expected one recent attempt to hit limit 1")
	}
	if limiter.tooManyRecent("user-2", now, 1, window) {
		t.Fatal("expected keys to be counted separately")
	}

	if limiter.tooManyRecent(key, now.Add(time.Minute), 1, window) {
		t.Fatal("expected attempt to expire once the window passed")
	}
}
