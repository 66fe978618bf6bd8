package launch

import (
	"fmt"

	"github.com/leandrodaf/launchboard/internal/logger"
	"github.com/leandrodaf/launchboard/internal/port"
	"github.com/leandrodaf/launchboard/sdk/contracts"
)

// maxDataByte is the largest value a MIDI data byte can carry.
const maxDataByte = 0x7F

// applyDefaultOptions sets default values for BoardOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify BoardOptions.
//
// Returns:
//   - contracts.BoardOptions: The finalized board options with defaults applied.
//   - error: An error if a declared light address is not a valid MIDI data byte.
func applyDefaultOptions(opts ...contracts.Option) (contracts.BoardOptions, error) {
	options := &contracts.BoardOptions{}
	for _, opt := range opts {
		opt(options)
	}

	for _, id := range options.Lights {
		if id > maxDataByte {
			return contracts.BoardOptions{}, fmt.Errorf("light address %d exceeds MIDI data range", id)
		}
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.DevicePath == "" {
		options.DevicePath = contracts.DefaultDevicePath
	}
	if options.Opener == nil {
		options.Opener = port.Open
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
