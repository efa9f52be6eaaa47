package timex

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Countdown counts down from a fixed number of seconds on a one-second
// cadence and closes a completion channel exactly once per run.
//
// Reset restarts the countdown under a new generation: a tick still in
// flight from a superseded run observes the generation change and exits
// without firing into the new run. Stop cancels without completing.
type Countdown struct {
	mu        sync.Mutex
	total     int
	remaining int
	gen       int
	done      chan struct{}
	completed bool
	running   bool
	interval  time.Duration // tick cadence; shortened only in tests
}

// NewCountdown creates a stopped countdown of the given number of seconds.
func NewCountdown(seconds int) *Countdown {
	return NewCountdownWithInterval(seconds, time.Second)
}

// NewCountdownWithInterval creates a stopped countdown with an explicit tick
// cadence.
func NewCountdownWithInterval(seconds int, interval time.Duration) *Countdown {
	return &Countdown{
		total:     seconds,
		remaining: seconds,
		done:      make(chan struct{}),
		interval:  interval,
	}
}

// Start begins ticking. Starting a running or already completed countdown is
// a no-op; use Reset to rearm. The run also ends when ctx is cancelled.
func (c *Countdown) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || c.completed {
		return
	}
	c.running = true
	go c.run(ctx, c.gen)
}

// Reset restarts the countdown from the full duration under a new
// generation and swaps in a fresh completion channel.
func (c *Countdown) Reset(ctx context.Context) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.remaining = c.total
	c.completed = false
	c.done = make(chan struct{})
	c.running = true
	c.mu.Unlock()
	go c.run(ctx, gen)
}

// Stop cancels the current run without firing completion. Idempotent.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.running = false
}

// Done returns the completion channel of the current run. It is closed
// exactly once, when the countdown reaches zero.
func (c *Countdown) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Completed reports whether the current run has reached zero.
func (c *Countdown) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// Remaining returns the seconds left in the current run.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) run(ctx context.Context, gen int) {
	c.mu.Lock()
	interval := c.interval
	c.mu.Unlock()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			if gen == c.gen {
				c.running = false
			}
			c.mu.Unlock()
			return
		case <-t.C:
			c.mu.Lock()
			if gen != c.gen {
				c.mu.Unlock()
				return
			}
			c.remaining--
			if c.remaining <= 0 {
				c.remaining = 0
				c.completed = true
				c.running = false
				close(c.done)
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()
		}
	}
}

// FormatMMSS renders a second count as "m:ss" for prompt display.
func FormatMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
