package clock

import "time"

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (realClock) Sleep(d time.Duration)                  { time.Sleep(d) }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := time.AfterFunc(d, f)
	return &Timer{stopFunc: t.Stop}
}

// Scaled returns a real Clock whose durations run factor times faster.
// Now advances at the same accelerated rate from the moment Scaled is
// called. A factor <= 1 returns Real().
func Scaled(factor float64) Clock {
	if factor <= 1 {
		return Real()
	}
	return &scaledClock{factor: factor, origin: time.Now()}
}

type scaledClock struct {
	factor float64
	origin time.Time
}

func (c *scaledClock) Now() time.Time {
	elapsed := time.Since(c.origin)
	return c.origin.Add(time.Duration(float64(elapsed) * c.factor))
}

func (c *scaledClock) scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) / c.factor)
}

func (c *scaledClock) After(d time.Duration) <-chan time.Time {
	out := make(chan time.Time, 1)
	time.AfterFunc(c.scale(d), func() { out <- c.Now() })
	return out
}

func (c *scaledClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := time.AfterFunc(c.scale(d), f)
	return &Timer{stopFunc: t.Stop}
}

func (c *scaledClock) Sleep(d time.Duration) {
	time.Sleep(c.scale(d))
}
