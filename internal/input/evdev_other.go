//go:build !linux

package input

import "errors"

var ErrUnsupported = errors.New("evdev input is only available on linux")

type Evdev struct{}

func OpenEvdev(device string) (*Evdev, error) {
	return nil, ErrUnsupported
}

func (e *Evdev) Events() <-chan Event {
	return nil
}

func (e *Evdev) Close() error {
	return nil
}
