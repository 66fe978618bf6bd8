package launch

import (
	"fmt"

	"github.com/leandrodaf/launchboard/sdk/contracts"
)

// Off is the colour that switches a feedback light off.
const Off byte = 0

// CommandWriter sends raw commands to a control surface. contracts.Device implements it.
type CommandWriter interface {
	Write(raw []byte) error
}

// LightCommand encodes the light-set command understood by Launch boards.
func LightCommand(color, lightID byte) []byte {
	return []byte{byte(contracts.NoteOn), lightID, color}
}

// SetColor sets the feedback light lightID to color. Every call writes, even
// when the light already shows color.
func SetColor(w CommandWriter, color, lightID byte) error {
	return w.Write(LightCommand(color, lightID))
}

// LightsOff switches off every light in ids, in order, and stops at the first failure.
func LightsOff(w CommandWriter, ids []byte) error {
	for _, id := range ids {
		if err := SetColor(w, Off, id); err != nil {
			return fmt.Errorf("switch off light %d: %w", id, err)
		}
	}
	return nil
}
