// Package score records the inputs of a performance and derives results
// from them after the fact.
package score

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
)

// Journal is an append only record of inputs, safe for concurrent use
type Journal struct {
	mu     sync.Mutex
	inputs []game.Input
}

func (j *Journal) Record(in game.Input) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inputs = append(j.inputs, in)
}

// Inputs returns a copy of everything recorded so far
func (j *Journal) Inputs() []game.Input {
	j.mu.Lock()
	defer j.mu.Unlock()
	ins := make([]game.Input, len(j.inputs))
	copy(ins, j.inputs)
	return ins
}

func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.inputs)
}

func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inputs = nil
}

// InputsCompact holds the press times of a single lane
type InputsCompact struct {
	Direction game.Direction
	Times     []time.Duration
}

// compactInputs groups presses by lane, releases are dropped
func compactInputs(inputs []game.Input) []InputsCompact {
	laneCount := 0
	for _, i := range inputs {
		if !i.Released && int(i.Direction) >= laneCount {
			laneCount = int(i.Direction) + 1
		}
	}
	ins := make([]InputsCompact, laneCount)
	for l := range ins {
		ins[l].Direction = game.Direction(l)
		ins[l].Times = []time.Duration{}
	}
	for _, i := range inputs {
		if i.Released {
			continue
		}
		ins[i.Direction].Times = append(ins[i.Direction].Times, i.Time)
	}
	return ins
}

// uncompactInputs expands lanes back to presses, each followed by its release
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins,
				game.Input{Direction: i.Direction, Time: t},
				game.Input{Direction: i.Direction, Time: t, Released: true},
			)
		}
	}
	return ins
}

// History is a shareable replay of one performance of a song
type History struct {
	Sum    string
	Inputs []InputsCompact
}

// Sum identifies a song by its notes so a history is never applied to the wrong chart
func Sum(song *game.Song) string {
	h := sha256.New()
	fmt.Fprintf(h, "%v|%v|", song.BPM, song.Difficulty)
	for _, n := range song.Notes {
		fmt.Fprintf(h, "%d:%v:%v|", n.Time, n.Direction, n.Owner)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Encode produces a replay code for the inputs of a performance of song
func Encode(song *game.Song, inputs []game.Input) (string, error) {
	data, err := json.Marshal(History{Sum: Sum(song), Inputs: compactInputs(inputs)})
	if nil != err {
		return "", fmt.Errorf("unable to marshal inputs: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reverses Encode, failing when the code belongs to another song
func Decode(song *game.Song, code string) ([]game.Input, error) {
	data, err := base64.RawURLEncoding.DecodeString(code)
	if nil != err {
		return nil, fmt.Errorf("unable to decode replay: %w", err)
	}
	var h History
	if err := json.Unmarshal(data, &h); nil != err {
		return nil, fmt.Errorf("unable to unmarshal replay: %w", err)
	}
	if h.Sum != Sum(song) {
		return nil, ErrWrongSong
	}
	return sortInputs(uncompactInputs(h.Inputs)), nil
}
