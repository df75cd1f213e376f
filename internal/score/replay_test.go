package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/duel/internal/fixtures"
	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/judge"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func upSong() *game.Song {
	song := &game.Song{ID: "up", Name: "Up", BPM: 120, Difficulty: game.Normal}
	for _, at := range []int{0, 500, 1000, 1500} {
		song.Notes = append(song.Notes, game.Note{Time: ms(at), Direction: game.Up, Owner: game.Player})
	}
	song.Notes = append(song.Notes, game.Note{Time: ms(250), Direction: game.Left, Owner: game.Opponent})
	return song
}

func press(dir game.Direction, at int) []game.Input {
	return []game.Input{
		{Direction: dir, Time: ms(at)},
		{Direction: dir, Time: ms(at + 20), Released: true},
	}
}

func TestReplayPerfect(t *testing.T) {
	var inputs []game.Input
	for _, at := range []int{0, 500, 1000, 1500} {
		inputs = append(inputs, press(game.Up, at)...)
	}
	state, results := Replay(upSong(), game.DefaultSettings(), inputs, judge.Config{})
	if state.Score != 1400 || state.Health != 74 || state.Combo != 4 || state.Status != game.Won {
		t.Errorf("unexpected state %+v", state)
	}
	if len(results) != 4 {
		t.Errorf("expected 4 judgements, got %v", len(results))
	}
}

func TestReplayNoInput(t *testing.T) {
	state, results := Replay(upSong(), game.DefaultSettings(), nil, judge.Config{})
	if state.Health != 30 || state.MissCount != 4 || state.Status != game.Won {
		t.Errorf("unexpected state %+v", state)
	}
	for _, r := range results {
		if r.Kind != judge.Miss {
			t.Errorf("unexpected judgement %v", r.Kind)
		}
	}
}

func TestReplayMatcherPolicy(t *testing.T) {
	song := &game.Song{BPM: 120, Notes: []game.Note{
		{Time: ms(1000), Direction: game.Left, Owner: game.Player},
		{Time: ms(1100), Direction: game.Left, Owner: game.Player},
	}}
	inputs := append(press(game.Left, 1090), press(game.Left, 1200)...)

	first, _ := Replay(song, game.DefaultSettings(), inputs, judge.Config{Matcher: judge.FirstByTime})
	nearest, _ := Replay(song, game.DefaultSettings(), inputs, judge.Config{Matcher: judge.NearestByAccuracy})

	// First by time takes the early note late, then the second press lands on the other
	if first.Score != 50+200 || first.MissCount != 0 {
		t.Errorf("unexpected first-by-time state %+v", first)
	}
	// Nearest takes the later note, leaving the early one to expire and the second press as a ghost
	if nearest.Score != 350-10 || nearest.MissCount != 2 {
		t.Errorf("unexpected nearest state %+v", nearest)
	}
}

func TestEncodeDecode(t *testing.T) {
	song := upSong()
	var inputs []game.Input
	inputs = append(inputs, press(game.Up, 500)...)
	inputs = append(inputs, press(game.Left, 100)...)

	code, err := Encode(song, inputs)
	if nil != err {
		t.Fatal(err)
	}
	decoded, err := Decode(song, code)
	if nil != err {
		t.Fatal(err)
	}
	if len(decoded) != 4 || decoded[0].Direction != game.Left || decoded[0].Time != ms(100) {
		t.Errorf("unexpected decoded inputs %v", decoded)
	}

	a, _ := Replay(song, game.DefaultSettings(), inputs, judge.Config{})
	b, _ := Replay(song, game.DefaultSettings(), decoded, judge.Config{})
	if a != b {
		t.Errorf("replay of decoded inputs differs: %+v %+v", a, b)
	}

	other := upSong()
	other.BPM = 121
	if _, err := Decode(other, code); err != ErrWrongSong {
		t.Errorf("expected ErrWrongSong, got %v", err)
	}
	if _, err := Decode(song, "!!"); nil == err {
		t.Error("expected error for garbage code")
	}
}

func TestReplayFixture(t *testing.T) {
	song, err := fixtures.GetSong()
	if nil != err {
		t.Fatal(err)
	}
	var inputs []game.Input
	for _, n := range song.Notes {
		if n.Owner == game.Player {
			// 60ms late is a good
			inputs = append(inputs, press(n.Direction, int(n.Time/time.Millisecond)+60)...)
		}
	}
	state, results := Replay(song, game.DefaultSettings(), inputs, judge.Config{})
	if state.Status != game.Won || state.Score != 4*200 || state.Health != 66 {
		t.Errorf("unexpected state %+v", state)
	}
	stats := NewStats(results)
	if stats.Counts[1] != 4 || stats.Mean != 60 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestReplayLeadIn(t *testing.T) {
	// Pressed during the lead-in, before song time zero
	state, results := Replay(upSong(), game.DefaultSettings(), press(game.Up, -100), judge.Config{})
	if len(results) == 0 || results[0].Kind != judge.Hit || results[0].Offset != ms(-100) || results[0].Judgement.Name != "bad" {
		t.Fatalf("unexpected lead-in judgement %+v", results)
	}
	if state.Score != 50 || state.MissCount != 3 {
		t.Errorf("unexpected state %+v", state)
	}

	late := &game.Song{BPM: 120, Notes: []game.Note{{Time: ms(120), Direction: game.Up, Owner: game.Player}}}
	state, results = Replay(late, game.DefaultSettings(), press(game.Up, -100), judge.Config{})
	if results[0].Kind != judge.Ghost || results[0].Time != ms(-100) {
		t.Errorf("expected a ghost tap at -100ms, got %+v", results[0])
	}
	if state.Score != 0 || state.MissCount != 2 {
		t.Errorf("unexpected state %+v", state)
	}
}
