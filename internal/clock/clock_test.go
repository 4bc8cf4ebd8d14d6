package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	c := &RealClock{}
	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("RealClock.Now() = %v, want between %v and %v", got, before, after)
	}
	if got.Location() != time.UTC {
		t.Errorf("RealClock.Now() location = %v, want UTC", got.Location())
	}
}

func TestFakeClock_Now(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	c := NewFakeClock(fixed)
	if !c.Now().Equal(fixed) {
		t.Errorf("FakeClock.Now() = %v, want %v", c.Now(), fixed)
	}
	if !c.Now().Equal(c.Now()) {
		t.Error("FakeClock.Now() should not advance")
	}
}
