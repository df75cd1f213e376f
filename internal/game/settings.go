package game

import (
	"fmt"
	"strings"
)

type Skin uint8

const (
	SkinNormal Skin = iota
	SkinCircle
	SkinFuturistic
	SkinCrystal
)

var skinNames = [...]string{"Normal", "Circle", "Futuristic", "Crystal"}

func (s Skin) String() string {
	if int(s) < len(skinNames) {
		return skinNames[s]
	}
	return skinNames[0]
}

func ParseSkin(s string) (Skin, error) {
	for i, name := range skinNames {
		if strings.EqualFold(s, name) {
			return Skin(i), nil
		}
	}
	return SkinNormal, fmt.Errorf("unknown skin %q", s)
}

// KeyBindings holds the raw key identifier for every lane
type KeyBindings [len(Directions)]string

// Direction matches key case-insensitively, unmapped keys report false
func (k KeyBindings) Direction(key string) (Direction, bool) {
	if key == "" {
		return 0, false
	}
	for i, bound := range k {
		if strings.EqualFold(bound, key) {
			return Direction(i), true
		}
	}
	return 0, false
}

type Settings struct {
	Keys KeyBindings

	// Lenient suppresses the ghost tap penalty, never the expired note penalty
	Lenient bool
	Skin    Skin
}

func DefaultSettings() Settings {
	return Settings{
		Keys: KeyBindings{"ArrowLeft", "ArrowDown", "ArrowUp", "ArrowRight"},
	}
}
