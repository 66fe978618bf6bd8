package contracts

import (
	"context"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MessageSize is the length in bytes of every message exchanged with a control surface.
const MessageSize = 3

// MIDICommand represents the status byte of a channel message on channel 0.
type MIDICommand byte

const (
	// NoteOff is the MIDI command for a Note Off event (0x80). Launch boards send it on button release.
	NoteOff MIDICommand = 0x80
	// NoteOn is the MIDI command for a Note On event (0x90). Launch boards send it on button press
	// and accept it as the light-set command.
	NoteOn MIDICommand = 0x90
	// ControlChange is the MIDI command sent by knobs and faders (0xB0).
	ControlChange MIDICommand = 0xB0
)

// Message is one parsed control-surface event.
type Message struct {
	Code  byte // Code is the status byte (e.g. 0x90 for a pressed button).
	Input byte // Input identifies the knob, fader or button that produced the event.
	Value byte // Value carries the position or velocity (0-127).
}

// ParseMessage builds a Message from the first three bytes of raw.
// It returns ErrMalformedMessage when fewer than three bytes are available.
func ParseMessage(raw []byte) (Message, error) {
	if len(raw) < MessageSize {
		return Message{}, fmt.Errorf("%w: got %d of %d bytes", ErrMalformedMessage, len(raw), MessageSize)
	}
	return Message{Code: raw[0], Input: raw[1], Value: raw[2]}, nil
}

// Bytes encodes the message back into its wire form.
func (m Message) Bytes() [MessageSize]byte {
	return [MessageSize]byte{m.Code, m.Input, m.Value}
}

// Command returns the status byte as a MIDICommand.
func (m Message) Command() MIDICommand {
	return MIDICommand(m.Code)
}

// String renders the message the way gomidi describes channel messages.
func (m Message) String() string {
	raw := m.Bytes()
	return gomidi.Message(raw[:]).String()
}

// Device is the handle given to handlers and animation tasks.
// Writes through a Device are serialised with every other writer of the same board.
type Device interface {
	// Write sends one raw command to the control surface.
	Write(raw []byte) error
	// SetColor sets the feedback light at lightID to color.
	SetColor(color, lightID byte) error
	// Spawn runs fn as a task of the current run. The task receives the run context
	// and its error, if any, fails the run.
	Spawn(fn func(ctx context.Context) error) error
}

// Handler reacts to a message that matched its filter.
type Handler func(ctx context.Context, msg Message, dev Device) error
