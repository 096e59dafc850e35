package ratelimit

import "testing"

func TestLimiterBurstThenDeny(t *testing.T) {
	l := New(3, 0.001)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d inside burst denied", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatalf("request past burst allowed")
	}
}

func TestLimiterKeysIndependent(t *testing.T) {
	l := New(1, 0.001)

	if !l.Allow("a") {
		t.Fatalf("first request for a denied")
	}
	if l.Allow("a") {
		t.Fatalf("second request for a allowed")
	}
	if !l.Allow("b") {
		t.Fatalf("first request for b denied")
	}
}

func TestLimiterSanitizesParams(t *testing.T) {
	l := New(0, -1)
	if !l.Allow("k") {
		t.Fatalf("sanitized limiter denied first request")
	}
}
