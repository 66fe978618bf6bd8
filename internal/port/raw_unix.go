//go:build unix

package port

import (
	"fmt"
	"io"
	"os"

	"github.com/leandrodaf/launchboard/sdk/contracts"
	"golang.org/x/sys/unix"
)

// openRaw opens a MIDI character device for reading and writing without any
// user-space buffering. O_NONBLOCK hands the descriptor to the runtime poller
// so that Close interrupts a pending Read.
func openRaw(path string) (io.ReadWriteCloser, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", contracts.ErrDeviceUnavailable, path, err)
	}
	f := os.NewFile(uintptr(fd), path)
	if f == nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: invalid descriptor", contracts.ErrDeviceUnavailable, path)
	}
	return f, nil
}
