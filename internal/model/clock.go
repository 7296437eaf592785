package model

import (
	"sync"
	"time"
)

// ThinkClock accumulates how long each side has spent thinking. It does not
// enforce a time control; it only reports elapsed time.
type ThinkClock struct {
	mu      sync.Mutex
	elapsed map[PieceColor]time.Duration
	running PieceColor
	since   time.Time
	active  bool
}

// ClockState is the wire form of the clock.
type ClockState struct {
	WhiteMs int64 `json:"whiteMs"`
	BlackMs int64 `json:"blackMs"`
}

func NewThinkClock() *ThinkClock {
	return &ThinkClock{
		elapsed: map[PieceColor]time.Duration{White: 0, Black: 0},
	}
}

// Start begins charging time to color, settling the previously running side
// first.
func (c *ThinkClock) Start(color PieceColor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.active {
		c.elapsed[c.running] += now.Sub(c.since)
	}
	c.running = color
	c.since = now
	c.active = true
}

// Stop settles the running side and pauses the clock.
func (c *ThinkClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		c.elapsed[c.running] += time.Since(c.since)
		c.active = false
	}
}

// Elapsed reports the total think time charged to color so far.
func (c *ThinkClock) Elapsed(color PieceColor) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.elapsed[color]
	if c.active && c.running == color {
		d += time.Since(c.since)
	}
	return d
}

func (c *ThinkClock) State() ClockState {
	return ClockState{
		WhiteMs: c.Elapsed(White).Milliseconds(),
		BlackMs: c.Elapsed(Black).Milliseconds(),
	}
}
