package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/judge"
)

// Stats summarises the timing of a performance
type Stats struct {
	Counts     []int // Hits per tier of game.Judgements
	Hits       int
	Misses     int
	Ghosts     int
	TotalError time.Duration // Sum of absolute hit error
	Mean       float64       // Mean signed hit error in ms, positive is late
	Stdev      float64       // Sample standard deviation of hit error in ms

	offsets []float64
}

func NewStats(results []judge.Result) *Stats {
	s := &Stats{Counts: make([]int, len(game.Judgements))}
	for _, r := range results {
		s.Add(r)
	}
	return s
}

func (s *Stats) Add(r judge.Result) {
	switch r.Kind {
	case judge.Miss:
		s.Misses++
		return
	case judge.Ghost:
		s.Ghosts++
		return
	case judge.Absorbed:
		return
	}

	s.Hits++
	s.Counts[r.Tier]++
	s.TotalError += r.Accuracy()
	s.offsets = append(s.offsets, float64(r.Offset)/float64(time.Millisecond))

	sum := 0.0
	for _, o := range s.offsets {
		sum += o
	}
	s.Mean = sum / float64(s.Hits)

	if s.Hits > 1 {
		s.Stdev = 0.0
		for _, o := range s.offsets {
			xi := o - s.Mean
			s.Stdev += xi * xi
		}
		s.Stdev /= float64(s.Hits - 1)
		s.Stdev = math.Sqrt(s.Stdev)
	}
}
