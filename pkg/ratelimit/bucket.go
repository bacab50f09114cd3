package ratelimit

import (
	"sync"
	"time"
)

// Bucket is a token bucket that refills continuously.
type Bucket struct {
	mu       sync.Mutex
	rate     float64 // tokens per second
	capacity float64
	tokens   float64
	last     time.Time
	now      func() time.Time
}

// NewBucket allows rate operations per interval, starting full.
func NewBucket(rate int64, interval time.Duration) *Bucket {
	return newBucket(rate, interval, time.Now)
}

func newBucket(rate int64, interval time.Duration, now func() time.Time) *Bucket {
	if rate <= 0 || interval <= 0 {
		panic("rate and interval must be positive")
	}

	return &Bucket{
		rate:     float64(rate) / interval.Seconds(),
		capacity: float64(rate),
		tokens:   float64(rate),
		last:     now(),
		now:      now,
	}
}

// Allow takes a token if one is available.
func (bucket *Bucket) Allow() bool {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.refill()

	if bucket.tokens < 1.0 {
		return false
	}

	bucket.tokens--

	return true
}

// WaitTime returns how long until the next token is available.
func (bucket *Bucket) WaitTime() time.Duration {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.refill()

	if bucket.tokens >= 1.0 {
		return 0
	}

	return time.Duration((1.0 - bucket.tokens) / bucket.rate * float64(time.Second))
}

// Full reports whether the bucket has refilled completely, which means its
// client has been idle for at least one interval.
func (bucket *Bucket) Full() bool {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.refill()

	return bucket.tokens >= bucket.capacity
}

func (bucket *Bucket) refill() {
	now := bucket.now()
	elapsed := now.Sub(bucket.last).Seconds()
	bucket.last = now

	bucket.tokens = min(bucket.capacity, bucket.tokens+elapsed*bucket.rate)
}
