package capture

import (
	"errors"
	"fmt"
)

// ErrNotRecording is returned when Stop is called outside of Recording
var ErrNotRecording = errors.New("no capture in progress")

// DeviceAccessError wraps a failure to acquire the audio input device
// (denied permission, missing device). The recorder stays Idle.
type DeviceAccessError struct {
	Err error
}

func (e *DeviceAccessError) Error() string {
	return fmt.Sprintf("microphone access failed: %v", e.Err)
}

func (e *DeviceAccessError) Unwrap() error {
	return e.Err
}
