package launch

import (
	"testing"

	"github.com/leandrodaf/launchboard/internal/logger"
	"github.com/leandrodaf/launchboard/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLCXL2Inputs(t *testing.T) {
	tests := []struct {
		name  string
		get   func(int) (byte, error)
		index int
		want  byte
	}{
		{"first fader", LCXL2.Inputs.Fader, 0, 77},
		{"last fader", LCXL2.Inputs.Fader, 7, 84},
		{"first button", LCXL2.Inputs.Button, 0, 41},
		{"second row button", LCXL2.Inputs.Button, 8, 73},
		{"third row knob", LCXL2.Inputs.Knob, 16, 49},
		{"control", LCXL2.Inputs.Control, 3, 108},
		{"track select", LCXL2.Inputs.TrackSelect, 1, 107},
		{"send select", LCXL2.Inputs.SendSelect, 0, 104},
		{"knob light", LCXL2.Lights.Knob, 1, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.get(tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortcutUnknownControl(t *testing.T) {
	_, err := LCXL2.Inputs.Fader(8)
	assert.ErrorIs(t, err, contracts.ErrUnknownControl)

	_, err = LCXL2.Inputs.Button(-1)
	assert.ErrorIs(t, err, contracts.ErrUnknownControl)

	_, err = LCXL2.Lights.Fader(0)
	assert.ErrorIs(t, err, contracts.ErrUnknownControl, "faders have no light")
}

func TestShortcutRows(t *testing.T) {
	assert.Equal(t, []byte{14, 30, 46, 62, 78, 94, 110, 126}, LCXL2.Lights.Knobs(1))
	assert.Equal(t, []byte{73, 74, 75, 76, 89, 90, 91, 92}, LCXL2.Lights.Buttons(1))
	assert.Len(t, LCXL2.Lights.Knobs(-1), 24)
	assert.Nil(t, LCXL2.Lights.Buttons(2))

	row := LCXL2.Lights.Knobs(0)
	row[0] = 0
	assert.Equal(t, byte(13), LCXL2.Lights.Knobs(0)[0], "rows are copies")
}

func TestShortcutAllIsUnique(t *testing.T) {
	all := LCXL2.Lights.All()
	assert.Len(t, all, 45)

	seen := make(map[byte]bool)
	for _, id := range all {
		assert.False(t, seen[id], "duplicate light %d", id)
		seen[id] = true
	}
	assert.Equal(t, byte(13), all[0])
}

func TestNewLaunchControlXLClearsEveryLight(t *testing.T) {
	b, err := NewLaunchControlXL(contracts.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, LCXL2.Lights.All(), b.opts.Lights)

	b, err = NewLaunchControlXL(contracts.WithLogger(logger.NewNop()), contracts.WithLights(13))
	require.NoError(t, err)
	assert.Equal(t, []byte{13}, b.opts.Lights)
}
