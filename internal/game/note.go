package game

import (
	"fmt"
	"strings"
	"time"
)

type Direction uint8

const (
	Left Direction = iota
	Down
	Up
	Right
)

// Directions in lane order
var Directions = [...]Direction{Left, Down, Up, Right}

var directionNames = [...]string{"left", "down", "up", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", d)
}

func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	dir, err := ParseDirection(string(b))
	if nil != err {
		return err
	}
	*d = dir
	return nil
}

type Owner uint8

const (
	Player Owner = iota
	Opponent
)

func (o Owner) String() string {
	if o == Opponent {
		return "opponent"
	}
	return "player"
}

func (o Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Owner) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "player":
		*o = Player
	case "opponent":
		*o = Opponent
	default:
		return fmt.Errorf("unknown owner %q", b)
	}
	return nil
}

type Note struct {
	ID        string
	Time      time.Duration // Offset from song start at which the note should be hit
	Direction Direction
	Owner     Owner

	// This is state, at most one of these ever becomes true
	hit    bool
	missed bool
}

func (n *Note) Hit() bool {
	return n.hit
}

func (n *Note) Missed() bool {
	return n.missed
}

func (n *Note) Resolved() bool {
	return n.hit || n.missed
}

// MarkHit flags the note as hit, it reports false if the note was already resolved
func (n *Note) MarkHit() bool {
	if n.Resolved() {
		return false
	}
	n.hit = true
	return true
}

// MarkMissed flags the note as missed, it reports false if the note was already resolved
func (n *Note) MarkMissed() bool {
	if n.Resolved() {
		return false
	}
	n.missed = true
	return true
}

// Input is a single lane press or release, relative to song start
type Input struct {
	Direction Direction
	Time      time.Duration
	Released  bool
}
