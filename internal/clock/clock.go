// Package clock provides the single authoritative playback clock shared by
// audio scheduling and judgment.
package clock

import (
	"sync"
	"time"
)

// Source reports song time. Song time is rooted at an epoch fixed by Start
// and never decreases while the source is active.
type Source interface {
	// Start fixes the epoch leadIn after the current device time. It is a
	// no-op while the device is unavailable.
	Start(leadIn time.Duration)
	Stop()
	Active() bool
	// Now returns song time, zero while inactive. It is negative during the lead-in.
	Now() time.Duration
	// At converts song time to the device time at which it sounds.
	At(song time.Duration) time.Duration
}

// Device is a monotonic hardware clock such as an audio.Deck
type Device interface {
	Now() time.Duration
	Running() bool
}

// AudioClock derives song time from the samples an audio device has rendered
type AudioClock struct {
	mu     sync.RWMutex
	dev    Device
	epoch  time.Duration
	active bool
}

func NewAudioClock(dev Device) *AudioClock {
	return &AudioClock{dev: dev}
}

func (c *AudioClock) Start(leadIn time.Duration) {
	if !c.dev.Running() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch = c.dev.Now() + leadIn
	c.active = true
}

func (c *AudioClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.epoch = 0
}

func (c *AudioClock) Active() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

func (c *AudioClock) Now() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.active {
		return 0
	}
	return c.dev.Now() - c.epoch
}

func (c *AudioClock) At(song time.Duration) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch + song
}
