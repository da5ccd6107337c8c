package services

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/shamim-001/portfolio-backend/errs"
)

// RateLimiter answers whether a keyed caller may proceed. Keys are client
// IPs here, but the interface leaves room for swapping in a shared store
// for multi-instance deployments; the in-memory implementation below is
// single-instance only.
type RateLimiter interface {
	Allow(key string) bool
}

type bucketEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryRateLimiter keeps a token bucket per key in process memory. Idle
// keys are evicted so the map does not grow without bound.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// NewMemoryRateLimiter admits at most events requests per key within per,
// with the full budget available in a burst.
func NewMemoryRateLimiter(events int, per time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		buckets: make(map[string]*bucketEntry),
		limit:   rate.Every(per / time.Duration(events)),
		burst:   events,
		idleTTL: 2 * per,
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictIdle(now)

	entry, ok := l.buckets[key]
	if !ok {
		entry = &bucketEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (l *MemoryRateLimiter) evictIdle(now time.Time) {
	for key, entry := range l.buckets {
		if now.Sub(entry.lastSeen) > l.idleTTL {
			delete(l.buckets, key)
		}
	}
}

type loginAttempts struct {
	count     int
	windowAt  time.Time
	lockUntil time.Time
}

// LoginGuard tracks failed login attempts per key and locks a key out
// once its attempt budget inside the window is spent.
type LoginGuard struct {
	mu          sync.Mutex
	attempts    map[string]*loginAttempts
	maxAttempts int
	window      time.Duration
	lockoutFor  time.Duration
	now         func() time.Time
}

func NewLoginGuard() *LoginGuard {
	return &LoginGuard{
		attempts:    make(map[string]*loginAttempts),
		maxAttempts: 5,
		window:      time.Minute,
		lockoutFor:  15 * time.Minute,
		now:         time.Now,
	}
}

// Check admits one more login attempt for key, or returns a rate-limit
// error if the key is locked out or has spent its budget.
func (g *LoginGuard) Check(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	attempts, ok := g.attempts[key]
	if !ok {
		attempts = &loginAttempts{windowAt: now}
		g.attempts[key] = attempts
	}

	if now.Before(attempts.lockUntil) {
		remaining := int(math.Round(attempts.lockUntil.Sub(now).Minutes()))
		if remaining < 1 {
			remaining = 1
		}
		return errs.NewAccountLockedError(remaining)
	}

	if now.Sub(attempts.windowAt) > g.window {
		attempts.count = 0
		attempts.windowAt = now
	}

	if attempts.count >= g.maxAttempts {
		attempts.lockUntil = now.Add(g.lockoutFor)
		return errs.NewTooManyRequestsError("Too many login attempts. Temporarily locked for security reasons.")
	}

	attempts.count++
	return nil
}

// Reset clears the failure history for key after a successful login.
func (g *LoginGuard) Reset(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.attempts, key)
}
