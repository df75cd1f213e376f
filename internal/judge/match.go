package judge

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"git.lost.host/meutraa/duel/internal/game"
)

// Matcher picks the player note in lane dir that an input at t resolves,
// or nil when no unresolved note lies strictly within the hit window.
type Matcher func(tl *game.Timeline, dir game.Direction, t time.Duration) *game.Note

// candidates calls f for every unresolved player note in dir inside the window
// in ascending time order, stopping when f returns false.
func candidates(tl *game.Timeline, dir game.Direction, t time.Duration, f func(n *game.Note) bool) {
	notes := tl.Notes()
	start := sort.Search(len(notes), func(i int) bool {
		return notes[i].Time > t-game.HitWindow
	})
	for _, n := range notes[start:] {
		if n.Time >= t+game.HitWindow {
			return
		}
		if n.Owner != game.Player || n.Direction != dir || n.Resolved() {
			continue
		}
		if !f(n) {
			return
		}
	}
}

// FirstByTime resolves the earliest qualifying note
func FirstByTime(tl *game.Timeline, dir game.Direction, t time.Duration) *game.Note {
	var match *game.Note
	candidates(tl, dir, t, func(n *game.Note) bool {
		match = n
		return false
	})
	return match
}

// NearestByAccuracy resolves the closest qualifying note, the earlier one on a tie
func NearestByAccuracy(tl *game.Timeline, dir game.Direction, t time.Duration) *game.Note {
	var match *game.Note
	best := game.HitWindow
	candidates(tl, dir, t, func(n *game.Note) bool {
		if d := abs(n.Time - t); d < best {
			match, best = n, d
		}
		return true
	})
	return match
}

var matchers = map[string]Matcher{
	"first":   FirstByTime,
	"nearest": NearestByAccuracy,
}

func MatcherNames() []string {
	names := make([]string, 0, len(matchers))
	for name := range matchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func MatcherByName(name string) (Matcher, error) {
	if m, ok := matchers[strings.ToLower(name)]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("unknown matcher %q, expected one of %v", name, MatcherNames())
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
