//go:build !unix

package port

import (
	"fmt"
	"io"
	"os"

	"github.com/leandrodaf/launchboard/sdk/contracts"
)

func openRaw(path string) (io.ReadWriteCloser, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrDeviceUnavailable, err)
	}
	return f, nil
}
