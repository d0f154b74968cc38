//go:build !tinygo

package hal

import "time"

type hostClock struct {
	now   func() time.Time
	sleep func(time.Duration)
}

func newHostClock() *hostClock {
	return &hostClock{now: time.Now, sleep: time.Sleep}
}

func (c *hostClock) Now() time.Time { return c.now() }

func (c *hostClock) Stall(d time.Duration) {
	if d <= 0 {
		return
	}
	c.sleep(d)
}
