package clock

import (
	"sync"
	"time"
)

// Manual is a controllable Source for tests and replays
type Manual struct {
	mu          sync.RWMutex
	device      time.Duration
	epoch       time.Duration
	active      bool
	unavailable bool
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Start(leadIn time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return
	}
	m.epoch = m.device + leadIn
	m.active = true
}

func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
	m.epoch = 0
}

func (m *Manual) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

func (m *Manual) Now() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.active {
		return 0
	}
	return m.device - m.epoch
}

func (m *Manual) At(song time.Duration) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.epoch + song
}

// Advance moves device time forward, negative values are ignored
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.device += d
}

// Set moves device time so that Now reports song. Time never moves backwards.
func (m *Manual) Set(song time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if target := m.epoch + song; target > m.device {
		m.device = target
	}
}

// SetAvailable simulates a suspended or resumed audio device
func (m *Manual) SetAvailable(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = !ok
}
