package synth

import (
	"math"
	"math/rand"

	"github.com/faiface/beep"
)

// curve maps seconds since the voice started to a value
type curve func(t float64) float64

func constant(v float64) curve {
	return func(float64) float64 { return v }
}

// expRamp glides exponentially from a to b over d seconds, then holds b
func expRamp(a, b, d float64) curve {
	return func(t float64) float64 {
		if t >= d {
			return b
		}
		return a * math.Pow(b/a, t/d)
	}
}

func linRamp(a, b, d float64) curve {
	return func(t float64) float64 {
		if t >= d {
			return b
		}
		return a + (b-a)*t/d
	}
}

// step holds a until t reaches at, then b
func step(a, b, at float64) curve {
	return func(t float64) float64 {
		if t < at {
			return a
		}
		return b
	}
}

// voice is a single oscillator with frequency and gain automation
type voice struct {
	wave     Waveform
	freq     curve
	gain     curve
	rate     beep.SampleRate
	phase    float64
	position int
	length   int
}

func newVoice(rate beep.SampleRate, wave Waveform, freq, gain curve, length int) *voice {
	return &voice{
		wave:   wave,
		freq:   freq,
		gain:   gain,
		rate:   rate,
		length: length,
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.position >= v.length {
		return 0, false
	}
	sr := float64(v.rate)
	for i := range samples {
		if v.position >= v.length {
			return i, true
		}
		t := float64(v.position) / sr
		val := oscillate(v.wave, v.phase) * v.gain(t)
		samples[i] = [2]float64{val, val}

		v.phase += v.freq(t) / sr
		v.phase -= math.Floor(v.phase)
		v.position++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// oscillate evaluates wave at phase in [0, 1)
func oscillate(wave Waveform, phase float64) float64 {
	switch wave {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2 * (phase - 0.5)
	case Triangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	}
	return math.Sin(2 * math.Pi * phase)
}

// renderDrum pre-renders a fixed length drum hit at unity gain
func renderDrum(kind Percussion, rate beep.SampleRate, rng *rand.Rand) *beep.Buffer {
	length := rate.N(drumLength(kind))
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	i := 0
	buf.Append(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= length {
			return 0, false
		}
		for j := range samples {
			if i >= length {
				return j, true
			}
			x := float64(i)
			var v float64
			switch kind {
			case Kick:
				v = math.Sin(x*0.01) * math.Exp(-x*0.005)
			case Snare:
				v = (rng.Float64()*2 - 1) * math.Exp(-x*0.01)
			default:
				v = (rng.Float64()*2 - 1) * math.Exp(-x*0.05)
			}
			samples[j] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	}))
	return buf
}
