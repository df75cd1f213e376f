package input

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01 // EV_KEY

	valueRelease = 0
	valuePress   = 1
)

type keyEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Evdev reads a Linux input device directly, which unlike a terminal reports
// real key releases. Auto repeat events are ignored.
type Evdev struct {
	file   *os.File
	events chan Event
	once   sync.Once
}

func OpenEvdev(device string) (*Evdev, error) {
	file, err := os.Open(device)
	if nil != err {
		return nil, fmt.Errorf("unable to open input device: %w", err)
	}
	e := &Evdev{file: file, events: make(chan Event, eventBuffer)}
	go e.read()
	return e, nil
}

func (e *Evdev) read() {
	defer close(e.events)

	var ev keyEvent
	for {
		if err := binary.Read(e.file, binary.LittleEndian, &ev); nil != err {
			log.Println(err, "unable to read keyboard input")
			return
		}
		if ev.Type != evKey {
			continue
		}
		if ev.Value != valuePress && ev.Value != valueRelease {
			continue
		}
		name, ok := evdevKeys[ev.Code]
		if !ok {
			continue
		}
		sec, nsec := ev.Time.Unix()
		e.events <- Event{
			Key:      name,
			Pressed:  ev.Value == valuePress,
			Released: ev.Value == valueRelease,
			Time:     time.Unix(sec, nsec),
		}
	}
}

func (e *Evdev) Events() <-chan Event {
	return e.events
}

func (e *Evdev) Close() error {
	var err error
	e.once.Do(func() {
		err = e.file.Close()
	})
	return err
}

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
var evdevKeys = map[uint16]string{
	1:   KeyEscape,
	28:  KeyEnter,
	57:  " ",
	103: KeyUp,
	105: KeyLeft,
	106: KeyRight,
	108: KeyDown,
}

func init() {
	rows := []struct {
		first uint16
		keys  string
	}{
		{16, "qwertyuiop"},
		{30, "asdfghjkl"},
		{44, "zxcvbnm"},
	}
	for _, row := range rows {
		for i, c := range row.keys {
			evdevKeys[row.first+uint16(i)] = string(c)
		}
	}
}
