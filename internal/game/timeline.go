package game

import (
	"sort"
	"time"
)

// Timeline is the single mutable note sequence of a session, sorted by time.
// Only note flags change after construction.
type Timeline struct {
	notes []*Note
}

// NewTimeline copies notes so that the caller's song is never mutated
func NewTimeline(notes []Note) *Timeline {
	ns := make([]*Note, len(notes))
	for i := range notes {
		n := notes[i]
		n.hit, n.missed = false, false
		ns[i] = &n
	}
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].Time < ns[j].Time
	})
	return &Timeline{notes: ns}
}

func (t *Timeline) Len() int {
	return len(t.notes)
}

func (t *Timeline) At(i int) *Note {
	return t.notes[i]
}

// Notes exposes the ordered notes, callers must not reorder the slice
func (t *Timeline) Notes() []*Note {
	return t.notes
}

// End is the time of the last note, zero for an empty timeline
func (t *Timeline) End() time.Duration {
	if len(t.notes) == 0 {
		return 0
	}
	return t.notes[len(t.notes)-1].Time
}

func (t *Timeline) Sorted() bool {
	for i := 1; i < len(t.notes); i++ {
		if t.notes[i].Time < t.notes[i-1].Time {
			return false
		}
	}
	return true
}

// Count returns the number of notes belonging to owner
func (t *Timeline) Count(owner Owner) int {
	c := 0
	for _, n := range t.notes {
		if n.Owner == owner {
			c++
		}
	}
	return c
}

// SortNotes orders notes by time, keeping the order of simultaneous notes
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})
}
