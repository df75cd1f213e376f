// Package story plays the songs of a week in order, carrying the score
// from one song to the next.
package story

import (
	"math/rand"

	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/songs"
)

type Outcome struct {
	Song   string
	Score  int
	Status game.Status
}

type Run struct {
	Week       *songs.Week
	Difficulty game.Difficulty
	Total      int
	Status     game.Status
	Outcomes   []Outcome

	generated []*game.Song
	index     int
}

func NewRun(w *songs.Week, d game.Difficulty, rng *rand.Rand) *Run {
	r := &Run{Week: w, Difficulty: d, generated: songs.GenerateWeek(w, d, rng)}
	if len(w.Songs) == 0 {
		r.Status = game.Won
	}
	return r
}

// Next returns the current song of the week, or reports false once the run is over
func (r *Run) Next() (*game.Song, *songs.Meta, bool) {
	if r.Status.Terminal() {
		return nil, nil, false
	}
	meta := &r.Week.Songs[r.index]
	return r.generated[r.index], meta, true
}

// Record applies the ending of the song last returned by Next. A won song
// adds to the total and moves on, a lost song ends the run.
func (r *Run) Record(score int, status game.Status) {
	if r.Status.Terminal() {
		return
	}
	r.Outcomes = append(r.Outcomes, Outcome{Song: r.Week.Songs[r.index].Name, Score: score, Status: status})

	switch status {
	case game.Won:
		r.Total += score
		r.index++
		if r.index >= len(r.Week.Songs) {
			r.Status = game.Won
		}
	case game.GameOver:
		r.Status = game.GameOver
	}
}

func (r *Run) Done() bool {
	return r.Status.Terminal()
}

// Position is the 0 based index of the current song and the song count
func (r *Run) Position() (int, int) {
	return r.index, len(r.Week.Songs)
}
