// Package clock is the game clock driving tick cadence. It is the sole
// scheduler: the engines have no internal timers and every callback runs
// synchronously on the clock's goroutine, so ticks never overlap.
package clock

import (
	"context"
	"sync"
	"time"
)

type Time struct {
	Day    int
	Hour   int
	Minute int
}

type Clock struct {
	mu    sync.Mutex
	now   Time
	limit int
	ended bool

	onMinute    []func(minute int)
	onHour      []func(hour int)
	onDay       []func(day int)
	onSkip      []func(days int)
	onTimeLimit []func()
}

// New starts at startDay (the seeded history already covers days 0 through
// startDay) and ends the game when day reaches limitDays.
func New(startDay, limitDays int) *Clock {
	return &Clock{now: Time{Day: startDay}, limit: limitDays}
}

func (c *Clock) OnMinute(fn func(minute int)) { c.onMinute = append(c.onMinute, fn) }
func (c *Clock) OnHour(fn func(hour int))     { c.onHour = append(c.onHour, fn) }
func (c *Clock) OnDay(fn func(day int))       { c.onDay = append(c.onDay, fn) }
func (c *Clock) OnSkip(fn func(days int))     { c.onSkip = append(c.onSkip, fn) }
func (c *Clock) OnTimeLimit(fn func())        { c.onTimeLimit = append(c.onTimeLimit, fn) }

func (c *Clock) Now() Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ended
}

// AdvanceMinutes moves game time forward minute by minute, firing callbacks
// in order. Advancing stops once the time limit ends the game.
func (c *Clock) AdvanceMinutes(n int) {
	for i := 0; i < n; i++ {
		if !c.advanceMinute() {
			return
		}
	}
}

func (c *Clock) advanceMinute() bool {
	c.mu.Lock()
	if c.ended {
		c.mu.Unlock()
		return false
	}
	c.now.Minute++
	minuteRolled := c.now.Minute
	hourRolled, dayRolled := -1, -1
	if c.now.Minute >= 60 {
		c.now.Minute = 0
		c.now.Hour++
		hourRolled = c.now.Hour
	}
	if c.now.Hour >= 24 {
		c.now.Hour = 0
		c.now.Day++
		dayRolled = c.now.Day
		if c.now.Day >= c.limit {
			c.ended = true
		}
	}
	ended := c.ended
	c.mu.Unlock()

	for _, fn := range c.onMinute {
		fn(minuteRolled)
	}
	if hourRolled >= 0 {
		for _, fn := range c.onHour {
			fn(hourRolled)
		}
	}
	if ended {
		for _, fn := range c.onTimeLimit {
			fn()
		}
		return false
	}
	if dayRolled >= 0 {
		for _, fn := range c.onDay {
			fn(dayRolled)
		}
	}
	return true
}

// SkipDays jumps the calendar forward. Skip callbacks receive the full count
// so collaborators can batch their own day loops; a skip that crosses the
// time limit ends the game after the batch completes.
func (c *Clock) SkipDays(days int) {
	if days <= 0 {
		return
	}
	c.mu.Lock()
	if c.ended {
		c.mu.Unlock()
		return
	}
	c.now.Day += days
	if c.now.Day >= c.limit {
		c.ended = true
	}
	ended := c.ended
	c.mu.Unlock()

	for _, fn := range c.onSkip {
		fn(days)
	}
	if ended {
		for _, fn := range c.onTimeLimit {
			fn()
		}
	}
}

// Run fires one game minute per interval until the context is canceled or
// the time limit ends the game.
func (c *Clock) Run(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.AdvanceMinutes(1)
			if c.Ended() {
				return nil
			}
		}
	}
}
