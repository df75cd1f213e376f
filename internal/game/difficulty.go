package game

import (
	"fmt"
	"strings"
)

type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
	Expert
)

var Difficulties = [...]Difficulty{Easy, Normal, Hard, Expert}

var difficultyNames = [...]string{"Easy", "Normal", "Hard", "Expert"}

// Probability of a note appearing in a 16th slot
var difficultyDensity = [...]float64{0.15, 0.35, 0.65, 0.90}

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return fmt.Sprintf("difficulty(%d)", d)
}

func (d Difficulty) Density() float64 {
	if int(d) < len(difficultyDensity) {
		return difficultyDensity[d]
	}
	return 0.2
}

func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return Difficulty(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if nil != err {
		return err
	}
	*d = v
	return nil
}
