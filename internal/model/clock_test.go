package model

import (
	"testing"
	"time"
)

func TestThinkClockAccumulates(t *testing.T) {
	c := NewThinkClock()
	c.Start(White)
	time.Sleep(20 * time.Millisecond)
	c.Start(Black)
	time.Sleep(20 * time.Millisecond)
	c.Stop()

	if c.Elapsed(White) < 10*time.Millisecond {
		t.Errorf("white elapsed = %v, want at least 10ms", c.Elapsed(White))
	}
	if c.Elapsed(Black) < 10*time.Millisecond {
		t.Errorf("black elapsed = %v, want at least 10ms", c.Elapsed(Black))
	}

	// stopped clock no longer advances
	frozen := c.Elapsed(Black)
	time.Sleep(10 * time.Millisecond)
	if c.Elapsed(Black) != frozen {
		t.Error("stopped clock should not advance")
	}
}

func TestThinkClockState(t *testing.T) {
	c := NewThinkClock()
	state := c.State()
	if state.WhiteMs != 0 || state.BlackMs != 0 {
		t.Errorf("fresh clock state = %+v", state)
	}
}
