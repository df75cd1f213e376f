// Package fixtures holds small songs shared by tests
package fixtures

import (
	_ "embed"
	"encoding/json"

	"git.lost.host/meutraa/duel/internal/game"
)

//go:embed song.json
var songData []byte

//go:embed chart.sm
var Chart string

// GetSong decodes a fresh copy of the fixture song on every call
func GetSong() (*game.Song, error) {
	var song game.Song
	if err := json.Unmarshal(songData, &song); nil != err {
		return nil, err
	}
	return &song, nil
}
