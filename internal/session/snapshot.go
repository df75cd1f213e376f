package session

import (
	"time"

	"git.lost.host/meutraa/duel/internal/game"
	"git.lost.host/meutraa/duel/internal/judge"
)

// Snapshot is a consistent copy of everything presentation needs for a frame
type Snapshot struct {
	Song     *game.Song
	State    game.State
	Now      time.Duration
	Beat     int
	Player   judge.PoseEvent
	Opponent judge.PoseEvent
	Notes    []game.Note // Copies of the notes within the requested range
}

// Snapshot copies the running song's state, including the notes whose time
// lies within [now-behind, now+ahead]. It reports false when nothing is playing.
func (s *Session) Snapshot(behind, ahead time.Duration) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.current
	if r == nil {
		return Snapshot{State: s.last}, false
	}

	e := r.engine
	now := e.Now()
	snap := Snapshot{
		Song:     r.song,
		State:    e.State(),
		Now:      now,
		Beat:     e.Beat(),
		Player:   e.Pose(judge.PlayerActor),
		Opponent: e.Pose(judge.OpponentActor),
	}
	for _, n := range e.Timeline().Notes() {
		if n.Time < now-behind {
			continue
		}
		if n.Time > now+ahead {
			break
		}
		snap.Notes = append(snap.Notes, *n)
	}
	return snap, true
}
