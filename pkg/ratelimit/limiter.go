package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

/*
Limiter keeps one bucket per client key, so a single noisy client cannot
use up the chat backend for everyone. Idle buckets are dropped by Sweep.
*/
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*Bucket
	rate     int64
	interval time.Duration
	now      func() time.Time
}

type LimiterOption func(*Limiter)

// NewLimiter allows rate requests per interval for each key.
func NewLimiter(rate int64, interval time.Duration, options ...LimiterOption) *Limiter {
	limiter := &Limiter{
		buckets:  make(map[string]*Bucket),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}

	for _, option := range options {
		option(limiter)
	}

	return limiter
}

// Allow takes a token from key's bucket, creating it on first use.
func (limiter *Limiter) Allow(key string) (bool, time.Duration) {
	limiter.mu.Lock()

	bucket, ok := limiter.buckets[key]
	if !ok {
		bucket = newBucket(limiter.rate, limiter.interval, limiter.now)
		limiter.buckets[key] = bucket
	}

	limiter.mu.Unlock()

	if bucket.Allow() {
		return true, 0
	}

	return false, bucket.WaitTime()
}

// Sweep forgets every client whose bucket has refilled.
func (limiter *Limiter) Sweep() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	removed := 0

	for key, bucket := range limiter.buckets {
		if bucket.Full() {
			delete(limiter.buckets, key)
			removed++
		}
	}

	return removed
}

// Run sweeps once per interval until ctx is done.
func (limiter *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(limiter.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Sweep(); removed > 0 {
				log.Debug("rate limiter sweep", "removed", removed)
			}
		}
	}
}

// Len returns the number of tracked clients.
func (limiter *Limiter) Len() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.buckets)
}

func WithClock(now func() time.Time) LimiterOption {
	return func(limiter *Limiter) {
		limiter.now = now
	}
}
