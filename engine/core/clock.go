package core

import "time"

// fpsSmoothing keeps 90% of the previous estimate per frame.
const fpsSmoothing = 0.9

// Ticker is what the Clock drives once per frame.
type Ticker interface {
	Update(dt float64)
	Render()
}

// Clock turns host frame callbacks into update/render ticks and keeps an
// exponentially smoothed frame-rate estimate. One Tick is wholly synchronous:
// nothing in it suspends or spans frames.
type Clock struct {
	last time.Time
	fps  float64
	subs []func(fps float64)
}

func NewClock() *Clock { return &Clock{} }

// OnFPS registers a subscriber for the smoothed frame rate. Subscribers are
// called synchronously at the end of every tick.
func (c *Clock) OnFPS(fn func(fps float64)) {
	c.subs = append(c.subs, fn)
}

// FPS returns the current smoothed estimate.
func (c *Clock) FPS() float64 { return c.fps }

// Tick advances t by the wall-clock delta since the previous tick, renders,
// then refreshes the frame-rate estimate. The first tick uses a zero delta.
func (c *Clock) Tick(now time.Time, t Ticker) {
	var dt float64
	if !c.last.IsZero() {
		dt = now.Sub(c.last).Seconds()
	}
	c.last = now

	t.Update(dt)
	t.Render()

	if dt > 0 {
		instant := 1 / dt
		if c.fps == 0 {
			c.fps = instant
		} else {
			c.fps = c.fps*fpsSmoothing + instant*(1-fpsSmoothing)
		}
		for _, fn := range c.subs {
			fn(c.fps)
		}
	}
}
