package middleware

import (
	"testing"
	"time"
)

func TestCheckUserLimit(t *testing.T) {
	rl := NewRateLimiter(3, 10, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.CheckUserLimit(100) {
			t.Fatalf("request %d blocked below the limit", i+1)
		}
	}
	if rl.CheckUserLimit(100) {
		t.Error("request above the limit allowed")
	}

	// A different user has their own window.
	if !rl.CheckUserLimit(200) {
		t.Error("unrelated user blocked")
	}
}

func TestCheckIPLimit(t *testing.T) {
	rl := NewRateLimiter(10, 2, time.Minute)

	if !rl.CheckIPLimit("1.2.3.4") || !rl.CheckIPLimit("1.2.3.4") {
		t.Fatal("requests below the limit blocked")
	}
	if rl.CheckIPLimit("1.2.3.4") {
		t.Error("request above the limit allowed")
	}
	if !rl.CheckIPLimit("5.6.7.8") {
		t.Error("unrelated IP blocked")
	}
}

func TestWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 1, 10*time.Millisecond)

	if !rl.CheckUserLimit(100) {
		t.Fatal("first request blocked")
	}
	if rl.CheckUserLimit(100) {
		t.Fatal("second request allowed inside window")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.CheckUserLimit(100) {
		t.Error("request blocked after window reset")
	}
}

func TestReset(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Minute)

	rl.CheckUserLimit(100)
	rl.Reset()
	if !rl.CheckUserLimit(100) {
		t.Error("request blocked after Reset()")
	}
}
