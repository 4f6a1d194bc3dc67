package ratelimit

import (
	"sync"
	"time"

	"dualnews/internal/logger"
)

// Limiter enforces daily request caps per translation backend plus an
// overall cap across all backends. A cap of 0 means unlimited.
type Limiter struct {
	mu        sync.Mutex
	counts    map[string]int
	limits    map[string]int
	total     int
	maxTotal  int
	resetTime time.Time

	cacheHits   int
	cacheMisses int
}

func New(limits map[string]int, maxTotal int) *Limiter {
	l := &Limiter{
		counts:    make(map[string]int),
		limits:    make(map[string]int, len(limits)),
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(24 * time.Hour),
	}
	for service, limit := range limits {
		l.limits[service] = limit
	}
	return l
}

// Allow reports whether one more request to service fits under its cap and
// the total cap, and counts the request if it does.
func (l *Limiter) Allow(service string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if limit := l.limits[service]; limit > 0 && l.counts[service] >= limit {
		logger.Warn("rate limit reached", "service", service, "used", l.counts[service], "limit", limit)
		return false
	}
	if l.maxTotal > 0 && l.total >= l.maxTotal {
		logger.Warn("total translation rate limit reached", "used", l.total, "limit", l.maxTotal)
		return false
	}

	l.counts[service]++
	l.total++
	l.cacheMisses++
	return true
}

// RecordCacheHit accounts for a translation served from cache instead of a
// backend request.
func (l *Limiter) RecordCacheHit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cacheHits++
}

// CacheHitRate returns the cache hit percentage across this reset window.
func (l *Limiter) CacheHitRate() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hitRateLocked()
}

func (l *Limiter) hitRateLocked() float64 {
	total := l.cacheHits + l.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(l.cacheHits) / float64(total) * 100
}

// GetStats returns current usage per service.
func (l *Limiter) GetStats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := map[string]interface{}{
		"total_used":     l.total,
		"total_limit":    l.maxTotal,
		"cache_hits":     l.cacheHits,
		"cache_misses":   l.cacheMisses,
		"cache_hit_rate": l.hitRateLocked(),
		"reset_time":     l.resetTime,
	}
	for service, limit := range l.limits {
		stats[service+"_used"] = l.counts[service]
		stats[service+"_limit"] = limit
	}
	return stats
}

// checkReset clears counters once the daily window has passed.
func (l *Limiter) checkReset() {
	if time.Now().Before(l.resetTime) {
		return
	}
	logger.Info("resetting translation rate limiter counters",
		"total_used", l.total, "cache_hit_rate", l.hitRateLocked())

	l.counts = make(map[string]int)
	l.total = 0
	l.cacheHits = 0
	l.cacheMisses = 0
	l.resetTime = time.Now().Add(24 * time.Hour)
}
