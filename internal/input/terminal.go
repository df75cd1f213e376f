package input

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
)

// Terminal reads keys from the controlling terminal. Terminals only report
// presses, so every press is followed by a synthetic release.
type Terminal struct {
	events chan Event
	once   sync.Once
}

func OpenTerminal() (*Terminal, error) {
	keys, err := keyboard.GetKeys(eventBuffer)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	t := &Terminal{events: make(chan Event, eventBuffer)}
	go t.read(keys)
	return t, nil
}

func (t *Terminal) read(keys <-chan keyboard.KeyEvent) {
	defer close(t.events)
	for key := range keys {
		if nil != key.Err {
			log.Println("unable to read key", key.Err)
			return
		}
		name := keyName(key.Key, key.Rune)
		if name == "" {
			continue
		}
		now := time.Now()
		t.events <- Event{Key: name, Pressed: true, Time: now}
		t.events <- Event{Key: name, Released: true, Time: now}
	}
}

func (t *Terminal) Events() <-chan Event {
	return t.events
}

func (t *Terminal) Close() error {
	var err error
	t.once.Do(func() {
		err = keyboard.Close()
	})
	return err
}

var terminalKeys = map[keyboard.Key]string{
	keyboard.KeyArrowLeft:  KeyLeft,
	keyboard.KeyArrowDown:  KeyDown,
	keyboard.KeyArrowUp:    KeyUp,
	keyboard.KeyArrowRight: KeyRight,
	keyboard.KeyEnter:      KeyEnter,
	keyboard.KeyEsc:        KeyEscape,
	keyboard.KeySpace:      " ",
	keyboard.KeyCtrlC:      KeyQuit,
}

func keyName(k keyboard.Key, r rune) string {
	if r != 0 {
		return string(r)
	}
	return terminalKeys[k]
}
