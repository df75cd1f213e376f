// Package schedule turns the note timeline and the song tempo into
// synthesized sound slightly ahead of the clock.
package schedule

import (
	"context"
	"time"

	"git.lost.host/meutraa/duel/internal/clock"
	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/synth"
)

const (
	DefaultPeriod = 25 * time.Millisecond
	DefaultWindow = 100 * time.Millisecond

	noteLength = 150 * time.Millisecond
)

// PlaybackState is the scheduler cursor, reset on every start and stop
type PlaybackState struct {
	BPM      float64
	NextNote int           // Index of the first note not yet voiced
	NextBeat time.Duration // Song time of the next beat not yet voiced
	Beat     int           // Index of NextBeat
}

// Scheduler voices every note and beat whose time falls before now + Window.
// It only reads the timeline, note flags belong to the judge.
type Scheduler struct {
	// Window must be at least the tick period or sound gaps occur
	Window time.Duration

	clock    clock.Source
	synth    synth.Synthesizer
	timeline *game.Timeline
	pattern  Pattern
	state    PlaybackState
}

// New creates an idle scheduler, timeline may be nil for a beat-only loop
func New(c clock.Source, s synth.Synthesizer, timeline *game.Timeline, bpm float64, pattern Pattern) *Scheduler {
	return &Scheduler{
		Window:   DefaultWindow,
		clock:    c,
		synth:    s,
		timeline: timeline,
		pattern:  pattern,
		state:    PlaybackState{BPM: bpm},
	}
}

func (s *Scheduler) State() PlaybackState {
	return s.state
}

// Tick voices everything due within the window. Falling behind is not an
// error, late sounds start as soon as the deck allows.
func (s *Scheduler) Tick() {
	if !s.clock.Active() {
		return
	}
	horizon := s.clock.Now() + s.Window

	if s.timeline != nil {
		for s.state.NextNote < s.timeline.Len() {
			note := s.timeline.At(s.state.NextNote)
			if note.Time >= horizon {
				break
			}
			s.voice(note)
			s.state.NextNote++
		}
	}

	spb := game.BeatLength(s.state.BPM)
	if spb <= 0 || s.pattern == nil {
		return
	}
	for s.state.NextBeat < horizon {
		s.pattern.Beat(s.synth, s.clock.At(s.state.NextBeat), s.state.Beat, spb)
		s.state.NextBeat += spb
		s.state.Beat++
	}
}

func (s *Scheduler) voice(note *game.Note) {
	wave := synth.Square
	if note.Owner == game.Opponent {
		wave = synth.Sawtooth
	}
	s.synth.EmitTone(
		s.clock.At(note.Time),
		synth.Frequency(note.Direction, note.Owner),
		wave,
		noteLength,
	)
}

// Reset rewinds both cursors so a restart never reuses stale offsets
func (s *Scheduler) Reset() {
	s.state = PlaybackState{BPM: s.state.BPM}
}

// Run ticks every period until ctx is done, then resets
func (s *Scheduler) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	defer s.Reset()

	s.Tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}
