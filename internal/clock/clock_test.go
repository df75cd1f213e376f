package clock

import (
	"testing"
	"time"
)

type fakeDevice struct {
	now     time.Duration
	running bool
}

func (d *fakeDevice) Now() time.Duration { return d.now }
func (d *fakeDevice) Running() bool      { return d.running }

func TestAudioClockEpoch(t *testing.T) {
	dev := &fakeDevice{now: 3 * time.Second, running: true}
	c := NewAudioClock(dev)

	if c.Now() != 0 || c.Active() {
		t.Fatal("expected resting clock before Start")
	}

	c.Start(100 * time.Millisecond)
	if got := c.Now(); got != -100*time.Millisecond {
		t.Errorf("expected -100ms during lead-in, got %v", got)
	}
	if got := c.At(0); got != 3100*time.Millisecond {
		t.Errorf("expected song zero at 3.1s device time, got %v", got)
	}

	dev.now += time.Second
	if got := c.Now(); got != 900*time.Millisecond {
		t.Errorf("expected 900ms, got %v", got)
	}

	c.Stop()
	if c.Now() != 0 || c.Active() {
		t.Error("expected resting clock after Stop")
	}

	c.Start(0)
	if got := c.Now(); got != 0 {
		t.Errorf("expected fresh epoch after restart, got %v", got)
	}
}

func TestAudioClockUnavailable(t *testing.T) {
	dev := &fakeDevice{now: time.Second}
	c := NewAudioClock(dev)
	c.Start(0)
	if c.Active() {
		t.Fatal("clock started on a suspended device")
	}
	dev.running = true
	c.Start(0)
	if !c.Active() {
		t.Fatal("clock did not start once the device resumed")
	}
}

func TestManualMonotonic(t *testing.T) {
	m := NewManual()
	m.Start(0)
	m.Set(500 * time.Millisecond)
	m.Set(200 * time.Millisecond)
	if got := m.Now(); got != 500*time.Millisecond {
		t.Errorf("expected time to stay at 500ms, got %v", got)
	}
	m.Advance(-time.Second)
	if got := m.Now(); got != 500*time.Millisecond {
		t.Errorf("negative advance moved the clock to %v", got)
	}
}
