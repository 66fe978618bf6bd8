// Package port opens the byte stream behind a control-surface device path.
//
// Two kinds of paths are understood:
//
//	/dev/midi2            raw MIDI character device, read and written unbuffered
//	coremidi:<endpoint>   CoreMIDI source and destination sharing <endpoint> (macOS only)
package port

import (
	"fmt"
	"io"
	"strings"

	"github.com/leandrodaf/launchboard/sdk/contracts"
)

// CoreMIDIPrefix selects the CoreMIDI bridge instead of a raw device file.
const CoreMIDIPrefix = "coremidi:"

// Open implements contracts.Opener.
func Open(path string) (io.ReadWriteCloser, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty device path", contracts.ErrDeviceUnavailable)
	}
	if name, ok := strings.CutPrefix(path, CoreMIDIPrefix); ok {
		return openCoreMIDI(name)
	}
	return openRaw(path)
}

var _ contracts.Opener = Open
