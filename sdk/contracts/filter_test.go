package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatches(t *testing.T) {
	pressed := Message{Code: 0x90, Input: 41, Value: 127}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches everything", Filter{}, true},
		{"code and input", NewFilter(Code(144), Input(41)), true},
		{"command", NewFilter(Command(NoteOn)), true},
		{"other code", NewFilter(Code(128)), false},
		{"other input", NewFilter(Code(144), Input(42)), false},
		{"value", NewFilter(Value(127)), true},
		{"all fields", NewFilter(Code(144), Input(41), Value(127)), true},
		{"all fields, wrong value", NewFilter(Code(144), Input(41), Value(0)), false},
		{"later constraint wins", NewFilter(Input(1), Input(41)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(pressed))
		})
	}
}

func TestFilterZeroValueConstraint(t *testing.T) {
	f := NewFilter(Value(0))
	assert.True(t, f.Declares(FieldValue))
	assert.False(t, f.Declares(FieldCode))
	assert.True(t, f.Matches(Message{Code: 0x80, Input: 41, Value: 0}))
	assert.False(t, f.Matches(Message{Code: 0x80, Input: 41, Value: 1}))
}

func TestEmptyFilterMatchesAnyMessage(t *testing.T) {
	var f Filter
	for code := 0; code < 256; code += 16 {
		for input := 0; input < 128; input += 13 {
			assert.True(t, f.Matches(Message{Code: byte(code), Input: byte(input), Value: byte(input)}))
		}
	}
}

func TestFilterString(t *testing.T) {
	assert.Equal(t, "*", Filter{}.String())
	assert.Equal(t, "code=128,input=41", NewFilter(Input(41), Code(128)).String())
}
