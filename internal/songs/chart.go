package songs

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
)

// Parser loads every playable chart from a file
type Parser interface {
	Parse(file string) ([]*game.Song, error)
}

// ChartParser reads StepMania .sm files. Only four lane dance-single charts
// are imported. Taps, hold heads and roll heads become player notes, and the
// opponent plays each of them one measure earlier.
type ChartParser struct{}

type bpmChange struct {
	StartingBeat float64
	Value        float64
}

const chartType = "dance-single"

var chartDifficulties = map[string]game.Difficulty{
	"beginner":  game.Easy,
	"easy":      game.Easy,
	"medium":    game.Normal,
	"hard":      game.Hard,
	"challenge": game.Expert,
	"edit":      game.Expert,
}

type chartSection struct {
	name       string
	difficulty game.Difficulty
	notes      string
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note
func isTap(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4'
}

func (p *ChartParser) Parse(file string) ([]*game.Song, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart: %w", err)
	}
	id := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return p.ParseString(id, string(data))
}

func (p *ChartParser) ParseString(id, data string) ([]*game.Song, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]

	charts := []chartSection{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		if strings.TrimSuffix(strings.TrimSpace(lines[1]), ":") != chartType {
			continue
		}
		name := strings.TrimSuffix(strings.TrimSpace(lines[3]), ":")
		d, ok := chartDifficulties[strings.ToLower(name)]
		if !ok {
			d = game.Normal
		}
		charts = append(charts, chartSection{name: name, difficulty: d, notes: lines[6]})
	}

	title := id
	offset := 0.0
	bpms := []bpmChange{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		switch {
		case strings.HasPrefix(mdl, "TITLE:"):
			if t := strings.TrimSuffix(strings.TrimPrefix(mdl, "TITLE:"), ";"); t != "" {
				title = t
			}
		case strings.HasPrefix(mdl, "OFFSET:"):
			mdl = strings.TrimSuffix(strings.TrimPrefix(mdl, "OFFSET:"), ";")
			offs, err := strconv.ParseFloat(strings.TrimSpace(mdl), 64)
			if nil != err {
				return nil, fmt.Errorf("invalid offset: %w", err)
			}
			offset = -offs
		case strings.HasPrefix(mdl, "BPMS:"):
			mdl = strings.TrimPrefix(mdl, "BPMS:")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			for _, bpm := range strings.Split(strings.TrimSuffix(mdl, ";"), ",") {
				as := strings.Split(strings.TrimSpace(bpm), "=")
				if len(as) != 2 {
					return nil, fmt.Errorf("invalid bpm %q", bpm)
				}
				sb, err := strconv.ParseFloat(as[0], 64)
				if nil != err {
					return nil, fmt.Errorf("invalid bpm beat: %w", err)
				}
				value, err := strconv.ParseFloat(as[1], 64)
				if nil != err {
					return nil, fmt.Errorf("invalid bpm value: %w", err)
				}
				bpms = append(bpms, bpmChange{StartingBeat: sb, Value: value})
			}
		}
	}
	if len(bpms) == 0 || bpms[0].Value <= 0 {
		return nil, fmt.Errorf("chart %v has no tempo", id)
	}

	songs := []*game.Song{}
	for _, chart := range charts {
		song := &game.Song{
			ID:         fmt.Sprintf("%v-%v", id, strings.ToLower(chart.name)),
			Name:       title,
			BPM:        bpms[0].Value,
			Difficulty: chart.difficulty,
		}

		currentBeat := 0.0
		for _, block := range strings.Split(chart.notes, "\n,") {
			lines := []string{}
			for _, l := range strings.Split(block, "\n") {
				if strings.HasPrefix(l, " ") || strings.Contains(l, "-") {
					continue
				}
				l = strings.TrimSpace(l)
				if len(l) > 3 {
					lines = append(lines, l)
				}
			}
			if len(lines) == 0 {
				continue
			}

			// Beat count is 4 per block
			beatsPerLine := 4.0 / float64(len(lines))
			for i, line := range lines {
				beat := currentBeat + float64(i)*beatsPerLine
				for lane := 0; lane < len(line) && lane < len(game.Directions); lane++ {
					if !isTap(line[lane]) {
						continue
					}
					n := game.Note{
						ID:        fmt.Sprintf("p-%v-%v", beat, lane),
						Time:      timeAt(bpms, offset, beat),
						Direction: game.Directions[lane],
						Owner:     game.Player,
					}
					song.Notes = append(song.Notes, n)
					if beat >= 4 {
						n.ID = n.ID[2:]
						n.Time = timeAt(bpms, offset, beat-4)
						n.Owner = game.Opponent
						song.Notes = append(song.Notes, n)
					}
				}
			}
			currentBeat += 4
		}

		game.SortNotes(song.Notes)
		songs = append(songs, song)
	}

	return songs, nil
}

// timeAt converts a beat position to song time through the tempo changes
func timeAt(bpms []bpmChange, offset, beat float64) time.Duration {
	seconds := offset
	prev := 0.0
	bpm := bpms[0].Value
	for _, change := range bpms[1:] {
		if change.StartingBeat >= beat {
			break
		}
		if change.Value <= 0 {
			continue
		}
		seconds += (change.StartingBeat - prev) * 60 / bpm
		prev, bpm = change.StartingBeat, change.Value
	}
	seconds += (beat - prev) * 60 / bpm
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
