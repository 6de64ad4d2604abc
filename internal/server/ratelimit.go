package server

import (
	"sync"
	"time"

	"github.com/riverwalkmud/samud/internal/config"
)

// LoginRateLimiter locks an IP out after repeated failed logins. Each
// lockout doubles the previous one up to a configured ceiling, so password
// guessing gets expensive fast.
type LoginRateLimiter struct {
	mu          sync.Mutex
	byIP        map[string]*loginHistory
	maxAttempts int
	baseLockout time.Duration
	maxLockout  time.Duration
	stopSweep   chan struct{}
}

type loginHistory struct {
	failures    int
	lockedUntil time.Time
	lockouts    int // drives the exponential backoff
}

// NewLoginRateLimiter builds a limiter from the rate_limit section of the
// server config. Zero values fall back to 5 attempts, 30s base lockout,
// 300s cap. Call Stop when done to release the sweep goroutine.
func NewLoginRateLimiter(cfg config.RateLimitConfig) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		byIP:        make(map[string]*loginHistory),
		maxAttempts: cfg.MaxAttempts,
		baseLockout: time.Duration(cfg.LockoutSeconds) * time.Second,
		maxLockout:  time.Duration(cfg.MaxLockoutSeconds) * time.Second,
		stopSweep:   make(chan struct{}),
	}
	if rl.maxAttempts == 0 {
		rl.maxAttempts = 5
	}
	if rl.baseLockout == 0 {
		rl.baseLockout = 30 * time.Second
	}
	if rl.maxLockout == 0 {
		rl.maxLockout = 300 * time.Second
	}

	go rl.sweepLoop()
	return rl
}

// Stop shuts down the background sweep goroutine.
func (rl *LoginRateLimiter) Stop() {
	close(rl.stopSweep)
}

// IsLocked reports whether ip is inside a lockout window, and for how much
// longer.
func (rl *LoginRateLimiter) IsLocked(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	h, ok := rl.byIP[ip]
	if !ok {
		return false, 0
	}
	if time.Now().Before(h.lockedUntil) {
		return true, time.Until(h.lockedUntil)
	}
	return false, 0
}

// RecordFailure counts a failed login for ip. When the failure count reaches
// the threshold the IP is locked out and the method reports the lockout
// duration. Failures during an active lockout do not extend it.
func (rl *LoginRateLimiter) RecordFailure(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	h, ok := rl.byIP[ip]
	if !ok {
		h = &loginHistory{}
		rl.byIP[ip] = h
	}

	if time.Now().Before(h.lockedUntil) {
		return true, time.Until(h.lockedUntil)
	}

	h.failures++
	if h.failures < rl.maxAttempts {
		return false, 0
	}

	h.lockouts++
	lockout := rl.baseLockout
	for i := 1; i < h.lockouts; i++ {
		// Stop doubling once the next step would pass the cap.
		if lockout >= rl.maxLockout/2 {
			lockout = rl.maxLockout
			break
		}
		lockout *= 2
	}
	if lockout > rl.maxLockout {
		lockout = rl.maxLockout
	}

	h.lockedUntil = time.Now().Add(lockout)
	h.failures = 0
	return true, lockout
}

// RecordSuccess clears the history for ip after a successful login.
func (rl *LoginRateLimiter) RecordSuccess(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.byIP, ip)
}

// GetAttempts reports the failed login count for ip in the current round.
func (rl *LoginRateLimiter) GetAttempts(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if h, ok := rl.byIP[ip]; ok {
		return h.failures
	}
	return 0
}

func (rl *LoginRateLimiter) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopSweep:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops IPs whose lockout expired over ten minutes ago and that have
// no failures in the current round.
func (rl *LoginRateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, h := range rl.byIP {
		if h.lockedUntil.Before(cutoff) && h.failures == 0 {
			delete(rl.byIP, ip)
		}
	}
}
