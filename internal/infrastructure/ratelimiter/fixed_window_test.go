package ratelimiter

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewFixedWindowRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}

	ok, retry := rl.Allow("1.2.3.4")
	if ok {
		t.Fatal("fourth request should have been denied")
	}
	if retry <= 0 || retry > time.Minute {
		t.Errorf("expected retry-after within the window, got %v", retry)
	}

	// Other sources have their own window.
	if ok, _ := rl.Allow("5.6.7.8"); !ok {
		t.Error("a different source must not be affected")
	}
}

func TestWindowResets(t *testing.T) {
	rl := NewFixedWindowRateLimiter(1, 20*time.Millisecond)
	defer rl.Close()

	if ok, _ := rl.Allow("1.2.3.4"); !ok {
		t.Fatal("first request should have been allowed")
	}
	if ok, _ := rl.Allow("1.2.3.4"); ok {
		t.Fatal("second request in the same window should have been denied")
	}

	time.Sleep(30 * time.Millisecond)

	if ok, _ := rl.Allow("1.2.3.4"); !ok {
		t.Error("request after the window reset should have been allowed")
	}
}
