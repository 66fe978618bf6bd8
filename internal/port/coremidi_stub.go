//go:build !darwin

package port

import (
	"fmt"
	"io"

	"github.com/leandrodaf/launchboard/sdk/contracts"
)

func openCoreMIDI(name string) (io.ReadWriteCloser, error) {
	return nil, fmt.Errorf("%w: CoreMIDI endpoint %q is only available on macOS", contracts.ErrDeviceUnavailable, name)
}
