//go:build tinygo

package hal

import "time"

type tinyGoClock struct{}

func (tinyGoClock) Now() time.Time { return time.Now() }

func (tinyGoClock) Stall(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
