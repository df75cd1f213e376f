// Package input turns keyboard devices into named key events. Key names
// follow the browser KeyboardEvent.key convention so bindings read the same
// on every source: "ArrowLeft", "Enter", "Escape", "a".
package input

import (
	"time"
)

type Event struct {
	Key      string
	Pressed  bool
	Released bool
	Time     time.Time
}

// Source delivers key events until closed
type Source interface {
	Events() <-chan Event
	Close() error
}

const (
	KeyEscape = "Escape"
	KeyEnter  = "Enter"
	KeyUp     = "ArrowUp"
	KeyDown   = "ArrowDown"
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyQuit   = "Quit"

	eventBuffer = 128
)
