package score

import (
	"errors"
	"sort"
	"time"

	"git.lost.host/meutraa/duel/internal/clock"
	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/judge"
)

// FrameStep is the frame period used when re-judging a performance
const FrameStep = time.Millisecond

var ErrWrongSong = errors.New("replay was recorded against a different song")

func sortInputs(inputs []game.Input) []game.Input {
	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].Time < inputs[j].Time
	})
	return inputs
}

// Replay re-judges recorded inputs against a fresh copy of the song on a
// manual clock and returns the final state and every judgement made.
// Inputs recorded during the lead-in keep their negative song time.
func Replay(song *game.Song, settings game.Settings, inputs []game.Input, cfg judge.Config) (game.State, []judge.Result) {
	inputs = sortInputs(append([]game.Input(nil), inputs...))
	start := time.Duration(0)
	if len(inputs) > 0 && inputs[0].Time < 0 {
		start = inputs[0].Time
	}

	c := clock.NewManual()
	c.Start(-start)

	results := []judge.Result{}
	e := judge.New(c, game.NewTimeline(song.Notes), song.BPM, settings, cfg, judge.Hooks{
		Judgement: func(r judge.Result) {
			results = append(results, r)
		},
	})

	now := start
	step := func(until time.Duration) {
		for ; now <= until && e.Status() == game.Playing; now += FrameStep {
			c.Set(now)
			e.Frame()
		}
		c.Set(until)
	}

	for _, in := range inputs {
		if e.Status() != game.Playing {
			break
		}
		step(in.Time)
		if in.Released {
			e.KeyUp(in.Direction)
		} else {
			e.KeyDown(in.Direction)
		}
	}

	grace := cfg.Grace
	if grace == 0 {
		grace = judge.DefaultGrace
	}
	step(e.Timeline().End() + grace + FrameStep)
	return e.State(), results
}
