// Package songs provides the playable songs: a procedural generator over a
// fixed catalogue, and StepMania chart import.
package songs

import (
	"math/rand"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
	"github.com/google/uuid"
)

const (
	SongBeats    = 128
	StartTime    = 2000 * time.Millisecond
	TurnBeats    = 4 // beats per opponent or player turn
	slotsPerBeat = 4
)

// pattern places notes on the sixteenth slots of beats, each slot filled
// with the difficulty's density
func pattern(start, beat time.Duration, beats int, d game.Difficulty, rng *rand.Rand) []game.Note {
	notes := []game.Note{}
	density := d.Density()
	for i := 0; i < beats; i++ {
		for j := 0; j < slotsPerBeat; j++ {
			if rng.Float64() >= density {
				continue
			}
			id, err := uuid.NewRandomFromReader(rng)
			if nil != err {
				// A math/rand source never fails
				panic(err)
			}
			notes = append(notes, game.Note{
				ID:        id.String(),
				Time:      start + time.Duration(i)*beat + time.Duration(j)*beat/slotsPerBeat,
				Direction: game.Directions[rng.Intn(len(game.Directions))],
				Owner:     game.Opponent,
			})
		}
	}
	return notes
}

// Generate builds a song of alternating turns: the opponent plays four beats
// and the player answers with the same notes four beats later. The same rng
// seed always produces the same song.
func Generate(meta Meta, color string, d game.Difficulty, rng *rand.Rand) *game.Song {
	song := &game.Song{
		ID:         meta.ID,
		Name:       meta.Name,
		BPM:        meta.BPM,
		Difficulty: d,
		Color:      color,
	}
	beat := game.BeatLength(meta.BPM)
	if beat <= 0 {
		return song
	}

	current := StartTime
	for bar := 0; bar < SongBeats/(2*TurnBeats); bar++ {
		opponent := pattern(current, beat, TurnBeats, d, rng)
		song.Notes = append(song.Notes, opponent...)
		for _, n := range opponent {
			n.ID = "p-" + n.ID
			n.Time += TurnBeats * beat
			n.Owner = game.Player
			song.Notes = append(song.Notes, n)
		}
		current += 2 * TurnBeats * beat
	}
	game.SortNotes(song.Notes)
	return song
}

// GenerateWeek generates every song of a week at one difficulty
func GenerateWeek(w *Week, d game.Difficulty, rng *rand.Rand) []*game.Song {
	songs := make([]*game.Song, len(w.Songs))
	for i, m := range w.Songs {
		songs[i] = Generate(m, w.Color, d, rng)
	}
	return songs
}
