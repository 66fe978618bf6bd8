package launch

import (
	"fmt"

	"github.com/leandrodaf/launchboard/sdk/contracts"
)

// Group names a family of controls on a board.
type Group string

// Control groups of the Launch Control XL.
const (
	GroupKnob        Group = "knob"         // GroupKnob is the three rows of rotary knobs.
	GroupFader       Group = "fader"        // GroupFader is the row of faders.
	GroupButton      Group = "button"       // GroupButton is the two rows of pads below the faders.
	GroupControl     Group = "control"      // GroupControl is the column of side buttons.
	GroupTrackSelect Group = "track_select" // GroupTrackSelect is the track left and right buttons.
	GroupSendSelect  Group = "send_select"  // GroupSendSelect is the send up and down buttons.
)

// groupOrder fixes the iteration order of All.
var groupOrder = []Group{GroupKnob, GroupFader, GroupButton, GroupControl, GroupTrackSelect, GroupSendSelect}

// rowSize is the number of controls in one row of knobs or buttons.
const rowSize = 8

// Shortcut resolves control indexes to the ids a board uses on the wire.
type Shortcut struct {
	groups map[Group][]byte
}

// NewShortcut builds a Shortcut from a static mapping table.
func NewShortcut(groups map[Group][]byte) Shortcut {
	copied := make(map[Group][]byte, len(groups))
	for g, ids := range groups {
		copied[g] = append([]byte(nil), ids...)
	}
	return Shortcut{groups: copied}
}

// ID returns the id of the index-th control of group.
func (s Shortcut) ID(group Group, index int) (byte, error) {
	ids := s.groups[group]
	if index < 0 || index >= len(ids) {
		return 0, fmt.Errorf("%w: %s%d", contracts.ErrUnknownControl, group, index)
	}
	return ids[index], nil
}

// Knob returns the id of the index-th knob, counted row by row.
func (s Shortcut) Knob(index int) (byte, error) { return s.ID(GroupKnob, index) }

// Fader returns the id of the index-th fader.
func (s Shortcut) Fader(index int) (byte, error) { return s.ID(GroupFader, index) }

// Button returns the id of the index-th pad, counted row by row.
func (s Shortcut) Button(index int) (byte, error) { return s.ID(GroupButton, index) }

// Control returns the id of the index-th side button.
func (s Shortcut) Control(index int) (byte, error) { return s.ID(GroupControl, index) }

// TrackSelect returns the id of the index-th track select button.
func (s Shortcut) TrackSelect(index int) (byte, error) { return s.ID(GroupTrackSelect, index) }

// SendSelect returns the id of the index-th send select button.
func (s Shortcut) SendSelect(index int) (byte, error) { return s.ID(GroupSendSelect, index) }

// Knobs returns the knob ids of row, or of every row when row is negative.
func (s Shortcut) Knobs(row int) []byte {
	return s.row(GroupKnob, row)
}

// Buttons returns the button ids of row, or of every row when row is negative.
func (s Shortcut) Buttons(row int) []byte {
	return s.row(GroupButton, row)
}

func (s Shortcut) row(group Group, row int) []byte {
	ids := s.groups[group]
	if row < 0 {
		return append([]byte(nil), ids...)
	}
	start := row * rowSize
	if start >= len(ids) {
		return nil
	}
	end := min(start+rowSize, len(ids))
	return append([]byte(nil), ids[start:end]...)
}

// All returns every id of the mapping once, group by group.
func (s Shortcut) All() []byte {
	seen := make(map[byte]bool)
	var out []byte
	for _, g := range groupOrder {
		for _, id := range s.groups[g] {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// BoardMapping pairs the light addresses of a board with its input ids.
// Both often differ for the same physical control.
type BoardMapping struct {
	Lights Shortcut
	Inputs Shortcut
}

// Status codes sent by Launch board buttons.
const (
	Pressed  = byte(contracts.NoteOn)  // Pressed is sent when a button goes down.
	Released = byte(contracts.NoteOff) // Released is sent when a button comes back up.
)

// LCXL2 is the Launch Control XL MK2 mapping in User Template mode.
var LCXL2 = BoardMapping{
	Lights: NewShortcut(map[Group][]byte{
		GroupKnob: {
			13, 29, 45, 61, 77, 93, 109, 125,
			14, 30, 46, 62, 78, 94, 110, 126,
			15, 31, 47, 63, 79, 95, 111, 127,
		},
		GroupButton: {
			41, 42, 43, 44, 57, 58, 59, 60,
			73, 74, 75, 76, 89, 90, 91, 92,
		},
		GroupControl:     {105, 106, 107, 108},
		GroupTrackSelect: {106, 107},
		GroupSendSelect:  {104, 105},
	}),
	Inputs: NewShortcut(map[Group][]byte{
		GroupKnob: {
			13, 14, 15, 16, 17, 18, 19, 20,
			29, 30, 31, 32, 33, 34, 35, 36,
			49, 50, 51, 52, 53, 54, 55, 56,
		},
		GroupFader: {77, 78, 79, 80, 81, 82, 83, 84},
		GroupButton: {
			41, 42, 43, 44, 57, 58, 59, 60,
			73, 74, 75, 76, 89, 90, 91, 92,
		},
		GroupControl:     {105, 106, 107, 108},
		GroupTrackSelect: {106, 107},
		GroupSendSelect:  {104, 105},
	}),
}

// NewLaunchControlXL creates a board for a Launch Control XL MK2 that switches
// every light off when it starts. opts may override any default, including the lights.
func NewLaunchControlXL(opts ...contracts.Option) (*Board, error) {
	defaults := []contracts.Option{contracts.WithLights(LCXL2.Lights.All()...)}
	return NewBoard(append(defaults, opts...)...)
}
