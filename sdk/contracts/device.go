package contracts

import (
	"io"
	"time"
)

// Opener opens the byte stream behind a device path.
// Implementations return an error wrapping ErrDeviceUnavailable when the path cannot be opened.
type Opener func(path string) (io.ReadWriteCloser, error)

// Direction tells whether a traced frame was read from or written to the device.
type Direction uint8

const (
	// DirectionIn marks a frame read from the device.
	DirectionIn Direction = iota + 1
	// DirectionOut marks a frame written to the device.
	DirectionOut
)

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	default:
		return "unknown"
	}
}

// Tracer records raw frames exchanged with the device.
// Trace must not retain frame after returning.
type Tracer interface {
	Trace(at time.Time, dir Direction, frame []byte)
}
