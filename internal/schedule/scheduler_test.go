package schedule

import (
	"context"
	"testing"
	"time"

	"git.lost.host/meutraa/duel/internal/clock"
	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/synth"
)

type event struct {
	at   time.Duration
	freq float64
	wave synth.Waveform
	kind synth.Percussion
	drum bool
}

type recorder struct {
	events []event
}

func (r *recorder) EmitTone(at time.Duration, freq float64, wave synth.Waveform, dur time.Duration) {
	r.events = append(r.events, event{at: at, freq: freq, wave: wave})
}

func (r *recorder) EmitPercussion(at time.Duration, kind synth.Percussion) {
	r.events = append(r.events, event{at: at, kind: kind, drum: true})
}

func (r *recorder) tones() []event {
	var ts []event
	for _, e := range r.events {
		if !e.drum {
			ts = append(ts, e)
		}
	}
	return ts
}

func (r *recorder) drums(kind synth.Percussion) []time.Duration {
	var ds []time.Duration
	for _, e := range r.events {
		if e.drum && e.kind == kind {
			ds = append(ds, e.at)
		}
	}
	return ds
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func testTimeline() *game.Timeline {
	return game.NewTimeline([]game.Note{
		{ID: "o1", Time: ms(0), Direction: game.Left, Owner: game.Opponent},
		{ID: "p1", Time: ms(50), Direction: game.Up, Owner: game.Player},
		{ID: "p2", Time: ms(150), Direction: game.Right, Owner: game.Player},
		{ID: "p3", Time: ms(400), Direction: game.Down, Owner: game.Player},
	})
}

func TestTickWindow(t *testing.T) {
	c := clock.NewManual()
	c.Advance(time.Second)
	c.Start(0)
	r := &recorder{}
	s := New(c, r, testTimeline(), 0, GamePattern)

	s.Tick()
	tones := r.tones()
	if len(tones) != 2 {
		t.Fatalf("expected 2 notes inside the first window, got %v", len(tones))
	}
	if tones[0].at != time.Second || tones[0].wave != synth.Sawtooth || tones[0].freq != synth.OpponentBase {
		t.Errorf("unexpected opponent voice %+v", tones[0])
	}
	if tones[1].at != time.Second+ms(50) || tones[1].wave != synth.Square || tones[1].freq != 550 {
		t.Errorf("unexpected player voice %+v", tones[1])
	}

	// Nothing new until the window moves
	s.Tick()
	if len(r.tones()) != 2 {
		t.Fatal("notes were voiced twice")
	}

	c.Set(ms(60))
	s.Tick()
	if len(r.tones()) != 3 || s.State().NextNote != 3 {
		t.Fatalf("expected third note once it entered the window, state %+v", s.State())
	}
}

func TestTickDoesNotTouchFlags(t *testing.T) {
	c := clock.NewManual()
	c.Start(0)
	tl := testTimeline()
	s := New(c, &recorder{}, tl, 120, GamePattern)
	c.Set(ms(1000))
	s.Tick()
	for _, n := range tl.Notes() {
		if n.Resolved() {
			t.Errorf("scheduler resolved note %v", n.ID)
		}
	}
}

func TestBeatPattern(t *testing.T) {
	c := clock.NewManual()
	c.Start(0)
	r := &recorder{}
	// 120 BPM is a beat every 500ms
	s := New(c, r, nil, 120, GamePattern)

	for now := 0; now <= 1500; now += 25 {
		c.Set(ms(now))
		s.Tick()
	}

	kicks := r.drums(synth.Kick)
	snares := r.drums(synth.Snare)
	hats := r.drums(synth.Hat)

	if len(kicks) != 2 || kicks[0] != 0 || kicks[1] != ms(1000) {
		t.Errorf("unexpected kicks %v", kicks)
	}
	if len(snares) != 2 || snares[0] != ms(500) || snares[1] != ms(1500) {
		t.Errorf("unexpected snares %v", snares)
	}
	expectedHats := []time.Duration{0, ms(250), ms(500), ms(750), ms(1000), ms(1250), ms(1500), ms(1750)}
	if len(hats) != len(expectedHats) {
		t.Fatalf("expected %v hats, got %v", len(expectedHats), hats)
	}
	for i, h := range hats {
		if h != expectedHats[i] {
			t.Errorf("hat %v: got %v, expected %v", i, h, expectedHats[i])
		}
	}
}

func TestInactiveClockIsNoop(t *testing.T) {
	c := clock.NewManual()
	r := &recorder{}
	s := New(c, r, testTimeline(), 120, GamePattern)
	s.Tick()
	if len(r.events) != 0 {
		t.Fatal("scheduled audio without an active clock")
	}

	// Once available, scheduling resumes from the cursor without backfill
	c.Start(0)
	c.Set(ms(350))
	s.Tick()
	if s.State().NextNote != 4 {
		t.Errorf("expected cursor to catch up, got %+v", s.State())
	}
}

func TestZeroBPMSkipsBeats(t *testing.T) {
	c := clock.NewManual()
	c.Start(0)
	r := &recorder{}
	s := New(c, r, nil, 0, GamePattern)
	s.Tick()
	if len(r.events) != 0 {
		t.Errorf("expected no beats at 0 BPM, got %v", len(r.events))
	}
}

func TestReset(t *testing.T) {
	c := clock.NewManual()
	c.Start(0)
	s := New(c, &recorder{}, testTimeline(), 120, GamePattern)
	c.Set(ms(2000))
	s.Tick()
	s.Reset()
	st := s.State()
	if st.NextNote != 0 || st.NextBeat != 0 || st.Beat != 0 || st.BPM != 120 {
		t.Errorf("reset left stale state %+v", st)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c := clock.NewManual()
	c.Start(0)
	r := &recorder{}
	s := New(c, r, nil, MenuBPM, MenuPattern)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if s.State().NextBeat != 0 {
		t.Error("Run did not reset on exit")
	}
}
