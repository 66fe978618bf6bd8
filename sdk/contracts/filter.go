package contracts

import (
	"fmt"
	"strings"
)

// MessageField names a Message field a Filter may constrain.
type MessageField uint8

const (
	// FieldCode constrains Message.Code.
	FieldCode MessageField = 1 << iota
	// FieldInput constrains Message.Input.
	FieldInput
	// FieldValue constrains Message.Value.
	FieldValue
)

// Filter is an equality predicate over a subset of Message fields.
// The zero Filter declares no field and matches every message.
type Filter struct {
	declared MessageField
	code     byte
	input    byte
	value    byte
}

// Constraint declares one field of a Filter.
type Constraint func(*Filter)

// Code requires Message.Code to equal code.
func Code(code byte) Constraint {
	return func(f *Filter) {
		f.declared |= FieldCode
		f.code = code
	}
}

// Command is Code for a MIDICommand.
func Command(cmd MIDICommand) Constraint {
	return Code(byte(cmd))
}

// Input requires Message.Input to equal input.
func Input(input byte) Constraint {
	return func(f *Filter) {
		f.declared |= FieldInput
		f.input = input
	}
}

// Value requires Message.Value to equal value.
func Value(value byte) Constraint {
	return func(f *Filter) {
		f.declared |= FieldValue
		f.value = value
	}
}

// NewFilter builds a Filter from the given constraints. A later constraint
// on the same field replaces an earlier one.
func NewFilter(constraints ...Constraint) Filter {
	var f Filter
	for _, c := range constraints {
		c(&f)
	}
	return f
}

// Declares reports whether the filter constrains field.
func (f Filter) Declares(field MessageField) bool {
	return f.declared&field != 0
}

// Matches reports whether every declared field of the filter equals the same field of msg.
func (f Filter) Matches(msg Message) bool {
	if f.Declares(FieldCode) && msg.Code != f.code {
		return false
	}
	if f.Declares(FieldInput) && msg.Input != f.input {
		return false
	}
	if f.Declares(FieldValue) && msg.Value != f.value {
		return false
	}
	return true
}

func (f Filter) String() string {
	if f.declared == 0 {
		return "*"
	}
	var parts []string
	if f.Declares(FieldCode) {
		parts = append(parts, fmt.Sprintf("code=%d", f.code))
	}
	if f.Declares(FieldInput) {
		parts = append(parts, fmt.Sprintf("input=%d", f.input))
	}
	if f.Declares(FieldValue) {
		parts = append(parts, fmt.Sprintf("value=%d", f.value))
	}
	return strings.Join(parts, ",")
}
