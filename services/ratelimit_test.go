package services

import (
	"testing"
	"time"

	"github.com/shamim-001/portfolio-backend/errs"
)

func TestMemoryRateLimiterBudget(t *testing.T) {
	limiter := NewMemoryRateLimiter(5, time.Hour)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("Allow() call %d = false, want true", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("Allow() 6th call = true, want false")
	}

	// other keys have their own budget
	if !limiter.Allow("5.6.7.8") {
		t.Error("Allow() for fresh key = false, want true")
	}

	// budget refills over time
	now = now.Add(2 * time.Hour)
	if !limiter.Allow("1.2.3.4") {
		t.Error("Allow() after window = false, want true")
	}
}

func TestMemoryRateLimiterEvictsIdleKeys(t *testing.T) {
	limiter := NewMemoryRateLimiter(5, time.Minute)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("1.2.3.4")
	now = now.Add(time.Hour)
	limiter.Allow("5.6.7.8")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.buckets["1.2.3.4"]; ok {
		t.Error("idle key was not evicted")
	}
	if _, ok := limiter.buckets["5.6.7.8"]; !ok {
		t.Error("active key was evicted")
	}
}

func TestLoginGuardLockout(t *testing.T) {
	guard := NewLoginGuard()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if err := guard.Check("1.2.3.4"); err != nil {
			t.Fatalf("Check() attempt %d error = %v", i+1, err)
		}
	}

	// budget spent: locked out
	err := guard.Check("1.2.3.4")
	if !errs.IsTooManyRequests(err) {
		t.Fatalf("Check() 6th attempt error = %v, want too many requests", err)
	}

	// still locked inside the lockout window
	now = now.Add(10 * time.Minute)
	if err := guard.Check("1.2.3.4"); err == nil {
		t.Fatal("Check() during lockout returned nil")
	}

	// lockout expires
	now = now.Add(10 * time.Minute)
	if err := guard.Check("1.2.3.4"); err != nil {
		t.Errorf("Check() after lockout error = %v", err)
	}
}

func TestLoginGuardWindowReset(t *testing.T) {
	guard := NewLoginGuard()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if err := guard.Check("1.2.3.4"); err != nil {
			t.Fatalf("Check() attempt %d error = %v", i+1, err)
		}
	}

	// window passes before the budget is exceeded
	now = now.Add(2 * time.Minute)
	if err := guard.Check("1.2.3.4"); err != nil {
		t.Errorf("Check() after window error = %v", err)
	}
}

func TestLoginGuardReset(t *testing.T) {
	guard := NewLoginGuard()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		_ = guard.Check("1.2.3.4")
	}
	guard.Reset("1.2.3.4")

	if err := guard.Check("1.2.3.4"); err != nil {
		t.Errorf("Check() after Reset() error = %v", err)
	}
}
