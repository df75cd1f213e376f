package game

import (
	"time"
)

// HitWindow is the tolerance either side of a note within which input counts
const HitWindow = 150 * time.Millisecond

type Judgement struct {
	Name   string
	Window time.Duration // accuracy must be strictly below this
	Score  int
	Health int
}

var Judgements = []Judgement{
	{Name: "sick", Window: 50 * time.Millisecond, Score: 350, Health: 6},
	{Name: "good", Window: 100 * time.Millisecond, Score: 200, Health: 4},
	{Name: "bad", Window: HitWindow, Score: 50, Health: 2},
}

// Judge returns the tier for an absolute accuracy inside the hit window
func Judge(accuracy time.Duration) (int, Judgement) {
	for i := 0; i < len(Judgements)-1; i++ {
		if accuracy < Judgements[i].Window {
			return i, Judgements[i]
		}
	}
	return len(Judgements) - 1, Judgements[len(Judgements)-1]
}
