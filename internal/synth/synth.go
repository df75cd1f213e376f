// Package synth renders procedural tones and percussion onto the audio deck.
// Every event is fire-and-forget: once emitted it cannot be cancelled.
package synth

import (
	"time"

	"git.lost.host/meutraa/duel/internal/game"
)

type Waveform uint8

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

type Percussion uint8

const (
	Kick Percussion = iota
	Snare
	Hat
	percussionCount
)

func (p Percussion) String() string {
	switch p {
	case Kick:
		return "kick"
	case Snare:
		return "snare"
	case Hat:
		return "hat"
	}
	return "unknown"
}

// SFX are menu sounds, always played immediately
type SFX uint8

const (
	Scroll SFX = iota
	Confirm
	Back
)

// Synthesizer emits sounds at absolute device times, which must not lie in the past
type Synthesizer interface {
	EmitTone(at time.Duration, freq float64, wave Waveform, dur time.Duration)
	EmitPercussion(at time.Duration, kind Percussion)
}

const (
	PlayerBase   = 440.0
	OpponentBase = 220.0
)

var ladder = [...]float64{1, 1.125, 1.25, 1.5}

// Frequency maps a lane to its tone, player lanes sound an octave above the opponent
func Frequency(dir game.Direction, owner game.Owner) float64 {
	base := PlayerBase
	if owner == game.Opponent {
		base = OpponentBase
	}
	if int(dir) >= len(ladder) {
		return base
	}
	return base * ladder[dir]
}
