package schedule

import (
	"time"

	"git.lost.host/meutraa/duel/internal/synth"
)

// Pattern voices one beat of backing track at device time at
type Pattern interface {
	Beat(s synth.Synthesizer, at time.Duration, index int, spb time.Duration)
}

type PatternFunc func(s synth.Synthesizer, at time.Duration, index int, spb time.Duration)

func (f PatternFunc) Beat(s synth.Synthesizer, at time.Duration, index int, spb time.Duration) {
	f(s, at, index, spb)
}

// GamePattern alternates kick and snare on the beat with hats on beats and halves
var GamePattern = PatternFunc(func(s synth.Synthesizer, at time.Duration, index int, spb time.Duration) {
	if index%2 == 0 {
		s.EmitPercussion(at, synth.Kick)
	} else {
		s.EmitPercussion(at, synth.Snare)
	}
	s.EmitPercussion(at, synth.Hat)
	s.EmitPercussion(at+spb/2, synth.Hat)
})

const MenuBPM = 102

// MenuPattern is the slow loop behind the menus
var MenuPattern = PatternFunc(func(s synth.Synthesizer, at time.Duration, index int, spb time.Duration) {
	s.EmitTone(at, 110, synth.Sine, 300*time.Millisecond)
	s.EmitPercussion(at, synth.Hat)
	if index%2 == 0 {
		s.EmitPercussion(at, synth.Kick)
	} else {
		s.EmitTone(at, 165, synth.Sine, 100*time.Millisecond)
	}
})
