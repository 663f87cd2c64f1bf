// Package ratelimit paces render attempts against the target host so the
// retry ladder never hammers the page it is scraping.
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter controls how often an attempt against a given URL may start.
type RateLimiter interface {
	// Wait blocks until an attempt for the given URL can proceed.
	// If the context is cancelled before the rate limit allows, an error is returned.
	Wait(ctx context.Context, urlStr string) error

	// Allow checks if an attempt for the given URL can proceed immediately
	// without blocking.
	Allow(urlStr string) bool
}

// HostLimiter provides per-host token-bucket limiting. The pipeline only ever
// targets one host, but keying by host keeps reruns against alternate URLs
// (e.g. a staging copy of the shop page) independent.
type HostLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	perHost  rate.Limit
	burst    int
}

// NewHostLimiter creates a limiter with the specified per-host rate.
func NewHostLimiter(attemptsPerSecond float64, burst int) *HostLimiter {
	if attemptsPerSecond <= 0 {
		attemptsPerSecond = 0.2
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(attemptsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the attempt for the given URL can proceed.
func (hl *HostLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	host := extractHost(urlStr)
	if host == "" {
		// Invalid URL, let it proceed (will fail elsewhere)
		return nil
	}
	return hl.getLimiter(host).Wait(ctx)
}

// Allow checks if an attempt can proceed immediately without blocking.
func (hl *HostLimiter) Allow(urlStr string) bool {
	host := extractHost(urlStr)
	if host == "" {
		return true
	}
	return hl.getLimiter(host).Allow()
}

func (hl *HostLimiter) getLimiter(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	if l, ok := hl.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(hl.perHost, hl.burst)
	hl.limiters[host] = l
	return l
}

func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
