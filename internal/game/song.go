package game

import "time"

type Song struct {
	ID         string
	Name       string
	BPM        float64
	Difficulty Difficulty
	Color      string
	Notes      []Note
}

// BeatLength is the duration of a single beat, zero for a song without tempo
func (s *Song) BeatLength() time.Duration {
	return BeatLength(s.BPM)
}

func BeatLength(bpm float64) time.Duration {
	if bpm <= 0 {
		return 0
	}
	return time.Duration(float64(time.Minute) / bpm)
}
