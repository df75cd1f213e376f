package audio

import (
	"container/heap"
	"sync"
	"time"

	"github.com/faiface/beep"
)

type cue struct {
	start int
	seq   uint64
	s     beep.Streamer
}

// cueQueue is ordered by start sample, then by scheduling order
type cueQueue []cue

func (q cueQueue) Len() int { return len(q) }
func (q cueQueue) Less(i, j int) bool {
	if q[i].start == q[j].start {
		return q[i].seq < q[j].seq
	}
	return q[i].start < q[j].start
}
func (q cueQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *cueQueue) Push(x interface{}) { *q = append(*q, x.(cue)) }
func (q *cueQueue) Pop() interface{} {
	old := *q
	c := old[len(old)-1]
	old[len(old)-1] = cue{}
	*q = old[:len(old)-1]
	return c
}

// Deck mixes voices that start at exact sample positions. The number of
// samples it has rendered is the hardware clock of the game.
type Deck struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	pos     int
	seq     uint64
	cues    cueQueue
	mixer   beep.Mixer
	running bool
}

// NewDeck returns a suspended deck, Resume must be called before it advances
func NewDeck(rate beep.SampleRate) *Deck {
	return &Deck{rate: rate}
}

func (d *Deck) SampleRate() beep.SampleRate {
	return d.rate
}

// Position is the number of samples rendered so far
func (d *Deck) Position() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos
}

// Now is the device time of the next sample to be rendered
func (d *Deck) Now() time.Duration {
	return d.rate.D(d.Position())
}

func (d *Deck) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *Deck) Resume() {
	d.mu.Lock()
	d.running = true
	d.mu.Unlock()
}

func (d *Deck) Suspend() {
	d.mu.Lock()
	d.running = false
	d.mu.Unlock()
}

// Schedule starts s at device time at. Times already rendered start with the
// next sample.
func (d *Deck) Schedule(at time.Duration, s beep.Streamer) {
	start := d.rate.N(at)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	heap.Push(&d.cues, cue{start: start, seq: d.seq, s: s})
}

// Pending reports cues that have not started yet
func (d *Deck) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cues)
}

// Voices reports the voices currently sounding
func (d *Deck) Voices() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mixer.Len()
}

// Clear drops every pending and sounding voice
func (d *Deck) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cues = d.cues[:0]
	d.mixer.Clear()
}

func (d *Deck) Stream(samples [][2]float64) (n int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}

	for off := 0; off < len(samples); {
		for len(d.cues) > 0 && d.cues[0].start <= d.pos {
			c := heap.Pop(&d.cues).(cue)
			d.mixer.Add(c.s)
		}

		end := len(samples)
		if len(d.cues) > 0 {
			if next := off + d.cues[0].start - d.pos; next < end {
				end = next
			}
		}

		d.mixer.Stream(samples[off:end])
		d.pos += end - off
		off = end
	}
	return len(samples), true
}

func (d *Deck) Err() error {
	return nil
}
