package synth

import (
	"math/rand"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Target is where voices are scheduled, normally an audio.Deck
type Target interface {
	SampleRate() beep.SampleRate
	Now() time.Duration
	Schedule(at time.Duration, s beep.Streamer)
}

const (
	toneGain  = 0.4
	toneFloor = 0.01
	toneTail  = 100 * time.Millisecond
	sfxGain   = 0.2
)

func drumLength(kind Percussion) time.Duration {
	if kind == Hat {
		return 50 * time.Millisecond
	}
	return 100 * time.Millisecond
}

func drumGain(kind Percussion) float64 {
	if kind == Hat {
		return 0.3
	}
	return 0.8
}

// Engine is the procedural synthesizer. Percussion is rendered once at
// construction so nothing is generated on the scheduling path.
type Engine struct {
	target Target
	rate   beep.SampleRate
	kit    [percussionCount]*beep.Buffer
}

// New renders the drum kit, seed makes the noise reproducible
func New(target Target, seed int64) *Engine {
	e := &Engine{
		target: target,
		rate:   target.SampleRate(),
	}
	rng := rand.New(rand.NewSource(seed))
	for k := Percussion(0); k < percussionCount; k++ {
		e.kit[k] = renderDrum(k, e.rate, rng)
	}
	return e
}

func (e *Engine) EmitTone(at time.Duration, freq float64, wave Waveform, dur time.Duration) {
	e.target.Schedule(at, e.tone(freq, wave, dur))
}

func (e *Engine) tone(freq float64, wave Waveform, dur time.Duration) beep.Streamer {
	return newVoice(
		e.rate,
		wave,
		constant(freq),
		expRamp(toneGain, toneFloor, dur.Seconds()),
		e.rate.N(dur+toneTail),
	)
}

func (e *Engine) EmitPercussion(at time.Duration, kind Percussion) {
	if kind >= percussionCount {
		return
	}
	buf := e.kit[kind]
	e.target.Schedule(at, &effects.Gain{
		Streamer: buf.Streamer(0, buf.Len()),
		Gain:     drumGain(kind) - 1,
	})
}

// EmitSFX plays a menu sound now
func (e *Engine) EmitSFX(kind SFX) {
	var v *voice
	switch kind {
	case Scroll:
		v = newVoice(e.rate, Sine, expRamp(800, 1200, 0.05), expRamp(sfxGain, toneFloor, 0.05), e.rate.N(60*time.Millisecond))
	case Confirm:
		v = newVoice(e.rate, Square, step(440, 554, 0.05), linRamp(sfxGain, toneFloor, 0.2), e.rate.N(210*time.Millisecond))
	case Back:
		v = newVoice(e.rate, Triangle, linRamp(300, 100, 0.1), expRamp(sfxGain, toneFloor, 0.1), e.rate.N(110*time.Millisecond))
	default:
		return
	}
	e.target.Schedule(e.target.Now(), v)
}

// KitLength reports the pre-rendered length of a drum in samples
func (e *Engine) KitLength(kind Percussion) int {
	if kind >= percussionCount {
		return 0
	}
	return e.kit[kind].Len()
}
