package tui

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/ssh"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/orb-dash/internal/metrics"
)

// RateLimitConfig configures the per-IP session limiter.
type RateLimitConfig struct {
	SessionsPerMinute float64       // new sessions allowed per minute per IP
	Burst             int           // sessions allowed back to back
	CleanupInterval   time.Duration // how often idle limiters are dropped
}

// DefaultRateLimitConfig allows short reconnect bursts but stops floods.
var DefaultRateLimitConfig = RateLimitConfig{
	SessionsPerMinute: 10,
	Burst:             5,
	CleanupInterval:   5 * time.Minute,
}

// UnlimitedRateLimitConfig lets every session through.
var UnlimitedRateLimitConfig = RateLimitConfig{}

// limit converts the per-minute rate; a non-positive rate means no limit.
func (c RateLimitConfig) limit() rate.Limit {
	if c.SessionsPerMinute <= 0 {
		return rate.Inf
	}
	return rate.Limit(c.SessionsPerMinute / 60)
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// IPRateLimiter limits how often one IP may open SSH sessions.
type IPRateLimiter struct {
	limiters sync.Map // map[string]*ipLimiterEntry
	config   RateLimitConfig
	metrics  *metrics.Metrics
	stopChan chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewIPRateLimiter creates a limiter and starts its cleanup loop.
// Call Stop to end the loop.
func NewIPRateLimiter(cfg RateLimitConfig, m *metrics.Metrics) *IPRateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultRateLimitConfig.CleanupInterval
	}
	rl := &IPRateLimiter{
		config:   cfg,
		metrics:  m,
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the cleanup loop.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopChan)
	})
}

func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := rl.now().UnixNano()

	if v, ok := rl.limiters.Load(ip); ok {
		e := v.(*ipLimiterEntry)
		e.lastSeen.Store(now)
		return e.limiter
	}

	entry := &ipLimiterEntry{
		limiter: rate.NewLimiter(rl.config.limit(), rl.config.Burst),
	}
	entry.lastSeen.Store(now)

	actual, _ := rl.limiters.LoadOrStore(ip, entry)
	return actual.(*ipLimiterEntry).limiter
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// cleanup drops limiters unused for two cleanup intervals.
func (rl *IPRateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.config.CleanupInterval * 2).UnixNano()
	rl.limiters.Range(func(k, v any) bool {
		if v.(*ipLimiterEntry).lastSeen.Load() < cutoff {
			rl.limiters.Delete(k)
		}
		return true
	})
}

// Allow reports whether ip may open another session now.
func (rl *IPRateLimiter) Allow(ip string) bool {
	return rl.getLimiter(ip).AllowN(rl.now(), 1)
}

// Middleware refuses sessions from IPs over their limit.
func (rl *IPRateLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if !rl.Allow(remoteIP(sess.RemoteAddr())) {
			rl.metrics.RecordRejected(metrics.RejectRateLimit)
			fmt.Fprintln(sess, "Too many sessions from your address, try again in a minute.")
			sess.Exit(1) //nolint:errcheck
			return
		}
		next(sess)
	}
}

// remoteIP strips the port from a network address.
func remoteIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
