package songs

import (
	"math/rand"
	"testing"
	"time"

	"git.lost.host/meutraa/duel/internal/fixtures"
	"git.lost.host/meutraa/duel/internal/game"
)

func TestGenerateDeterministic(t *testing.T) {
	meta := Weeks[0].Songs[1]
	a := Generate(meta, Weeks[0].Color, game.Hard, rand.New(rand.NewSource(7)))
	b := Generate(meta, Weeks[0].Color, game.Hard, rand.New(rand.NewSource(7)))
	if len(a.Notes) == 0 || len(a.Notes) != len(b.Notes) {
		t.Fatalf("expected equal non empty songs, got %v and %v notes", len(a.Notes), len(b.Notes))
	}
	for i := range a.Notes {
		if a.Notes[i] != b.Notes[i] {
			t.Fatalf("note %v differs: %+v %+v", i, a.Notes[i], b.Notes[i])
		}
	}
}

func TestGenerateStructure(t *testing.T) {
	meta := Meta{ID: "t", Name: "Test", BPM: 120}
	song := Generate(meta, "#fff", game.Expert, rand.New(rand.NewSource(1)))
	beat := game.BeatLength(120)

	if !game.NewTimeline(song.Notes).Sorted() {
		t.Fatal("generated notes are not sorted")
	}

	ids := map[string]game.Note{}
	for _, n := range song.Notes {
		if _, ok := ids[n.ID]; ok {
			t.Fatalf("duplicate id %v", n.ID)
		}
		ids[n.ID] = n
		if n.Time < StartTime || n.Time >= StartTime+SongBeats*beat {
			t.Errorf("note %v at %v outside the song", n.ID, n.Time)
		}
		if (n.Time-StartTime)%(beat/4) != 0 {
			t.Errorf("note %v at %v is off the sixteenth grid", n.ID, n.Time)
		}
	}

	opponent, player := 0, 0
	for _, n := range song.Notes {
		if n.Owner == game.Opponent {
			opponent++
			mirror, ok := ids["p-"+n.ID]
			if !ok {
				t.Errorf("opponent note %v has no player answer", n.ID)
				continue
			}
			if mirror.Time != n.Time+TurnBeats*beat || mirror.Direction != n.Direction || mirror.Owner != game.Player {
				t.Errorf("unexpected answer %+v to %+v", mirror, n)
			}
			// Opponent turns occupy the first half of every eight beats
			if ((n.Time-StartTime)/beat)%(2*TurnBeats) >= TurnBeats {
				t.Errorf("opponent note %v in the player turn", n.ID)
			}
		} else {
			player++
		}
	}
	if opponent != player {
		t.Errorf("expected mirrored turns, got %v opponent and %v player notes", opponent, player)
	}
}

func TestGenerateDensity(t *testing.T) {
	meta := Meta{BPM: 150}
	slots := float64(SongBeats / 2 * slotsPerBeat)
	for _, d := range game.Difficulties {
		song := Generate(meta, "", d, rand.New(rand.NewSource(int64(d))))
		got := float64(len(song.Notes)/2) / slots
		if got < d.Density()-0.12 || got > d.Density()+0.12 {
			t.Errorf("%v: density %.2f far from %.2f", d, got, d.Density())
		}
	}
}

func TestGenerateWithoutTempo(t *testing.T) {
	song := Generate(Meta{ID: "x"}, "", game.Normal, rand.New(rand.NewSource(1)))
	if len(song.Notes) != 0 {
		t.Error("expected no notes without a tempo")
	}
}

func TestCatalogue(t *testing.T) {
	if len(Weeks) != 5 || len(Freeplay()) != 15 {
		t.Fatalf("unexpected catalogue size %v weeks %v songs", len(Weeks), len(Freeplay()))
	}
	w, err := FindWeek("3")
	if nil != err || w.ID != "week3" {
		t.Errorf("unexpected week %v %v", w, err)
	}
	if _, err := FindWeek("week9"); nil == err {
		t.Error("expected error for unknown week")
	}
	w, m, err := FindSong("winter horrorland")
	if nil != err || m.BPM != 190 || w.ID != "week5" {
		t.Errorf("unexpected song %v %v %v", w, m, err)
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestParseChart(t *testing.T) {
	p := ChartParser{}
	songs, err := p.ParseString("fixture", fixtures.Chart)
	if nil != err {
		t.Fatal(err)
	}
	if len(songs) != 1 {
		t.Fatalf("expected only the dance-single chart, got %v", len(songs))
	}
	song := songs[0]
	if song.Name != "Fixture Steps" || song.BPM != 120 || song.Difficulty != game.Normal || song.ID != "fixture-medium" {
		t.Errorf("unexpected song %v %v %v %v", song.ID, song.Name, song.BPM, song.Difficulty)
	}

	expected := []game.Note{
		{Time: ms(100), Direction: game.Left, Owner: game.Player},
		{Time: ms(100), Direction: game.Left, Owner: game.Opponent},
		{Time: ms(600), Direction: game.Down, Owner: game.Player},
		{Time: ms(1100), Direction: game.Up, Owner: game.Player},
		{Time: ms(1600), Direction: game.Right, Owner: game.Player},
		{Time: ms(2100), Direction: game.Left, Owner: game.Player},
		{Time: ms(2100), Direction: game.Right, Owner: game.Opponent},
		{Time: ms(4100), Direction: game.Right, Owner: game.Player},
	}
	if len(song.Notes) != len(expected) {
		t.Fatalf("expected %v notes, got %v", len(expected), song.Notes)
	}
	for i, n := range song.Notes {
		e := expected[i]
		if n.Time != e.Time || n.Direction != e.Direction || n.Owner != e.Owner {
			t.Log("Note    ", i, n)
			t.Log("Expected", e)
			t.Fail()
		}
	}
}

func TestParseChartErrors(t *testing.T) {
	p := ChartParser{}
	if _, err := p.ParseString("x", "#TITLE:x;\n#OFFSET:abc;\n"); nil == err {
		t.Error("expected offset error")
	}
	if _, err := p.ParseString("x", "#TITLE:x;\n#OFFSET:0;\n"); nil == err {
		t.Error("expected missing tempo error")
	}
	if _, err := p.Parse("does-not-exist.sm"); nil == err {
		t.Error("expected read error")
	}
}

func TestTimeAt(t *testing.T) {
	bpms := []bpmChange{{0, 60}, {4, 120}, {8, 0}}
	tests := map[float64]time.Duration{
		0:  0,
		2:  2 * time.Second,
		4:  4 * time.Second,
		6:  5 * time.Second,
		10: 7 * time.Second,
	}
	for beat, expected := range tests {
		if got := timeAt(bpms, 0, beat); got != expected {
			t.Errorf("beat %v: got %v, expected %v", beat, got, expected)
		}
	}
}
