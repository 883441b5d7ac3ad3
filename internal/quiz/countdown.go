package quiz

import (
	"fmt"
	"sync"
)

// Listener receives countdown notifications.
type Listener interface {
	// OnTimeUpdate is called after every tick with the remaining seconds.
	OnTimeUpdate(remaining int)
	// OnTimeUp is called exactly once when the countdown reaches zero.
	OnTimeUp()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Update func(remaining int)
	Up     func()
}

func (f ListenerFuncs) OnTimeUpdate(remaining int) {
	if f.Update != nil {
		f.Update(remaining)
	}
}

func (f ListenerFuncs) OnTimeUp() {
	if f.Up != nil {
		f.Up()
	}
}

// Countdown is a one-second resolution timer driven by explicit ticks. The
// owner supplies the clock (a tea.Tick loop, a time.Ticker) and calls Tick
// once per second. Each Start or Reset bumps the generation so ticks issued
// for an earlier run can be recognized and dropped.
type Countdown struct {
	mu         sync.Mutex
	initial    int
	remaining  int
	running    bool
	expired    bool
	generation uint64
	listener   Listener
}

// NewCountdown creates a stopped countdown of initial seconds.
func NewCountdown(initial int, l Listener) *Countdown {
	if l == nil {
		l = ListenerFuncs{}
	}
	return &Countdown{initial: initial, remaining: initial, listener: l}
}

// Start begins counting down and returns the run's generation. A countdown
// whose initial value is already zero or less fires OnTimeUp immediately.
func (c *Countdown) Start() uint64 {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.remaining = c.initial
	c.expired = false
	c.running = c.remaining > 0
	fire := !c.running
	if fire {
		c.remaining = 0
		c.expired = true
	}
	c.mu.Unlock()

	if fire {
		c.listener.OnTimeUp()
	}
	return gen
}

// Tick advances a running countdown by one second. Ticks from another
// generation, after Stop or after expiry are ignored; Tick reports whether
// the tick was applied.
func (c *Countdown) Tick(gen uint64) bool {
	c.mu.Lock()
	if !c.running || gen != c.generation {
		c.mu.Unlock()
		return false
	}
	c.remaining--
	remaining := c.remaining
	up := remaining <= 0
	if up {
		c.running = false
		c.expired = true
	}
	c.mu.Unlock()

	c.listener.OnTimeUpdate(remaining)
	if up {
		c.listener.OnTimeUp()
	}
	return true
}

// Reset changes the duration and restarts the countdown.
func (c *Countdown) Reset(initial int) uint64 {
	c.mu.Lock()
	c.initial = initial
	c.mu.Unlock()
	return c.Start()
}

// Stop halts the countdown. Pending ticks become stale.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.generation++
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Running reports whether the countdown is active.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Expired reports whether the countdown reached zero.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Generation returns the current run's generation.
func (c *Countdown) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// FormatClock renders seconds as HH:MM:SS. Negative values render as zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
