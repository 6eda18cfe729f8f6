// Package codec converts between Go strings and the terminator-delimited
// text forms the registry stores: single strings (REG_SZ, REG_EXPAND_SZ)
// and multi-strings (REG_MULTI_SZ).
//
// Every function takes the active character Width explicitly. Wide text is
// UTF-16LE with two-byte terminators; narrow text uses the ANSI code page
// (Windows-1252) with one-byte terminators.
package codec

import (
	"fmt"
	"strings"
)

// Width selects the character unit used on the wire.
type Width int

const (
	// Wide is UTF-16LE, two bytes per unit. It is the zero value.
	Wide Width = iota
	// Narrow is the single-byte ANSI code page.
	Narrow
)

// UnitSize returns the number of bytes per character unit.
func (w Width) UnitSize() int {
	if w == Narrow {
		return 1
	}
	return 2
}

// Terminator returns one terminator unit in this width.
func (w Width) Terminator() []byte {
	return make([]byte, w.UnitSize())
}

func (w Width) String() string {
	switch w {
	case Wide:
		return "wide"
	case Narrow:
		return "narrow"
	default:
		return fmt.Sprintf("Width(%d)", int(w))
	}
}

// ParseWidth accepts "wide"/"utf16" and "narrow"/"ansi" (case-insensitive).
func ParseWidth(s string) (Width, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wide", "utf16", "utf-16":
		return Wide, nil
	case "narrow", "ansi":
		return Narrow, nil
	default:
		return Wide, fmt.Errorf("codec: unknown width %q", s)
	}
}
