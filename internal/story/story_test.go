package story

import (
	"math/rand"
	"testing"

	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/songs"
)

func TestCompleteWeek(t *testing.T) {
	r := NewRun(&songs.Weeks[0], game.Easy, rand.New(rand.NewSource(3)))
	played := []string{}
	for {
		song, meta, ok := r.Next()
		if !ok {
			break
		}
		if song.Difficulty != game.Easy || song.Color != songs.Weeks[0].Color || song.BPM != meta.BPM {
			t.Errorf("unexpected song %v", song.Name)
		}
		played = append(played, song.Name)
		r.Record(1000, game.Won)
	}
	if len(played) != 3 || played[0] != "Bopeebo" || played[2] != "Dadbattle" {
		t.Errorf("unexpected songs %v", played)
	}
	if r.Total != 3000 || r.Status != game.Won || !r.Done() {
		t.Errorf("unexpected run %v %v", r.Total, r.Status)
	}
}

func TestGameOverEndsWeek(t *testing.T) {
	r := NewRun(&songs.Weeks[1], game.Hard, rand.New(rand.NewSource(3)))
	r.Next()
	r.Record(500, game.Won)
	r.Next()
	r.Record(200, game.GameOver)

	if _, _, ok := r.Next(); ok {
		t.Error("run continued after game over")
	}
	if r.Total != 500 || r.Status != game.GameOver {
		t.Errorf("unexpected run %v %v", r.Total, r.Status)
	}
	r.Record(900, game.Won)
	if len(r.Outcomes) != 2 || r.Total != 500 {
		t.Errorf("record after the end changed the run: %+v", r.Outcomes)
	}
	if i, n := r.Position(); i != 1 || n != 3 {
		t.Errorf("unexpected position %v/%v", i, n)
	}
}

func TestNextIsStable(t *testing.T) {
	r := NewRun(&songs.Weeks[2], game.Normal, rand.New(rand.NewSource(9)))
	a, _, _ := r.Next()
	b, _, _ := r.Next()
	if a != b {
		t.Error("next regenerated the current song")
	}

	week := songs.GenerateWeek(&songs.Weeks[2], game.Normal, rand.New(rand.NewSource(9)))
	if len(week) != 3 || len(week[0].Notes) != len(a.Notes) || week[0].Notes[0] != a.Notes[0] {
		t.Error("run songs differ from the generated week for the same seed")
	}
}
