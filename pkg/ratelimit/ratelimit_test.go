package ratelimit

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestBucket(t *testing.T) {
	Convey("Given a bucket with capacity 2 per second", t, func() {
		c := &clock{t: time.Unix(0, 0)}
		bucket := newBucket(2, time.Second, c.now)

		So(bucket.Allow(), ShouldBeTrue)
		So(bucket.Allow(), ShouldBeTrue)

		Convey("The third call should be limited", func() {
			So(bucket.Allow(), ShouldBeFalse)
			So(bucket.WaitTime(), ShouldEqual, 500*time.Millisecond)
		})

		Convey("Half a second later one token is back", func() {
			c.advance(500 * time.Millisecond)

			So(bucket.Allow(), ShouldBeTrue)
			So(bucket.Allow(), ShouldBeFalse)
		})

		Convey("A long idle period never overfills it", func() {
			c.advance(time.Hour)

			So(bucket.Full(), ShouldBeTrue)
			So(bucket.Allow(), ShouldBeTrue)
			So(bucket.Allow(), ShouldBeTrue)
			So(bucket.Allow(), ShouldBeFalse)
		})
	})

	Convey("Given a non-positive rate", t, func() {
		So(func() { NewBucket(0, time.Second) }, ShouldPanic)
	})
}

func TestLimiter(t *testing.T) {
	Convey("Given a limiter of one request per minute", t, func() {
		c := &clock{t: time.Unix(0, 0)}
		limiter := NewLimiter(1, time.Minute, WithClock(c.now))

		ok, _ := limiter.Allow("10.0.0.1")
		So(ok, ShouldBeTrue)

		Convey("Each client should have its own bucket", func() {
			ok, wait := limiter.Allow("10.0.0.1")
			So(ok, ShouldBeFalse)
			So(wait, ShouldEqual, time.Minute)

			ok, _ = limiter.Allow("10.0.0.2")
			So(ok, ShouldBeTrue)
			So(limiter.Len(), ShouldEqual, 2)
		})

		Convey("Idle clients should be swept", func() {
			c.advance(2 * time.Minute)

			So(limiter.Sweep(), ShouldEqual, 1)
			So(limiter.Len(), ShouldEqual, 0)
		})
	})
}
