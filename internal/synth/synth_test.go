package synth

import (
	"math"
	"testing"
	"time"

	"git.lost.host/meutraa/duel/internal/audio"
	"git.lost.host/meutraa/duel/internal/game"
	"github.com/faiface/beep"
)

func TestFrequencyLadder(t *testing.T) {
	expected := map[game.Direction][2]float64{
		game.Left:  {440, 220},
		game.Down:  {495, 247.5},
		game.Up:    {550, 275},
		game.Right: {660, 330},
	}
	seen := map[float64]bool{}
	for dir, f := range expected {
		p, o := Frequency(dir, game.Player), Frequency(dir, game.Opponent)
		if p != f[0] || o != f[1] {
			t.Errorf("%v: got %v/%v, expected %v/%v", dir, p, o, f[0], f[1])
		}
		if p != 2*o {
			t.Errorf("%v: player frequency is not double the opponent", dir)
		}
		if seen[p] || seen[o] {
			t.Errorf("%v: frequency collision", dir)
		}
		seen[p], seen[o] = true, true
	}
}

func TestKitLengths(t *testing.T) {
	deck := audio.NewDeck(beep.SampleRate(44100))
	e := New(deck, 1)
	if got := e.KitLength(Kick); got != 4410 {
		t.Errorf("kick: expected 4410 samples, got %v", got)
	}
	if got := e.KitLength(Snare); got != 4410 {
		t.Errorf("snare: expected 4410 samples, got %v", got)
	}
	if got := e.KitLength(Hat); got != 2205 {
		t.Errorf("hat: expected 2205 samples, got %v", got)
	}
}

func TestToneLengthAndDecay(t *testing.T) {
	rate := beep.SampleRate(1000)
	e := &Engine{rate: rate}
	s := e.tone(100, Square, 150*time.Millisecond)

	buf := make([][2]float64, 400)
	n, _ := s.Stream(buf)
	if n != 250 {
		t.Fatalf("expected 250 samples including tail, got %v", n)
	}
	if math.Abs(buf[0][0]) != toneGain {
		t.Errorf("expected attack at %v, got %v", toneGain, buf[0][0])
	}
	if math.Abs(buf[200][0]) > toneFloor+1e-9 {
		t.Errorf("expected tail at floor, got %v", buf[200][0])
	}
	if _, ok := s.Stream(buf); ok {
		t.Error("drained tone reported ok")
	}
}

func TestEmitToneSchedulesOnDeck(t *testing.T) {
	deck := audio.NewDeck(beep.SampleRate(1000))
	deck.Resume()
	e := New(deck, 1)

	e.EmitTone(20*time.Millisecond, 250, Sine, 50*time.Millisecond)
	e.EmitPercussion(10*time.Millisecond, Kick)
	if deck.Pending() != 2 {
		t.Fatalf("expected 2 pending cues, got %v", deck.Pending())
	}

	buf := make([][2]float64, 30)
	deck.Stream(buf)
	if deck.Pending() != 0 || deck.Voices() != 2 {
		t.Errorf("expected both voices sounding, got %v pending %v sounding", deck.Pending(), deck.Voices())
	}
	for i := 0; i < 10; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("sound before the first cue at sample %v", i)
		}
	}
}

func TestOscillateRange(t *testing.T) {
	for _, w := range []Waveform{Sine, Square, Sawtooth, Triangle} {
		for p := 0.0; p < 1; p += 0.01 {
			v := oscillate(w, p)
			if v < -1 || v > 1 {
				t.Fatalf("wave %v out of range at phase %v: %v", w, p, v)
			}
		}
	}
}
