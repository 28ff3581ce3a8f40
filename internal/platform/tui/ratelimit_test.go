package tui

import (
	"net"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, perMinute float64, burst int) (*IPRateLimiter, *time.Time) {
	t.Helper()
	rl := NewIPRateLimiter(RateLimitConfig{
		SessionsPerMinute: perMinute,
		Burst:             burst,
		CleanupInterval:   time.Minute,
	})
	t.Cleanup(rl.Stop)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiterAllow(t *testing.T) {
	rl, now := newTestLimiter(t, 60, 2)

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("burst sessions should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third session within the burst window should be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("another address has its own budget")
	}

	*now = now.Add(time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Error("one session per second should be refilled")
	}

	allowed, rejected := rl.Stats()
	if allowed != 4 || rejected != 1 {
		t.Errorf("Stats() = %d, %d, expected 4, 1", allowed, rejected)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl, now := newTestLimiter(t, 60, 1)
	rl.Allow("10.0.0.1")

	*now = now.Add(time.Minute)
	rl.Allow("10.0.0.2")

	*now = now.Add(time.Minute + 30*time.Second)
	rl.cleanup()

	if _, ok := rl.limiters.Load("10.0.0.1"); ok {
		t.Error("stale limiter was not removed")
	}
	if _, ok := rl.limiters.Load("10.0.0.2"); !ok {
		t.Error("recent limiter was removed")
	}
}

func TestRemoteIP(t *testing.T) {
	tests := []struct {
		addr     net.Addr
		expected string
	}{
		{&net.TCPAddr{IP: net.ParseIP("192.168.1.7"), Port: 51234}, "192.168.1.7"},
		{&net.TCPAddr{IP: net.ParseIP("::1"), Port: 22}, "::1"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := remoteIP(tt.addr); got != tt.expected {
			t.Errorf("remoteIP(%v) = %q, expected %q", tt.addr, got, tt.expected)
		}
	}
}
