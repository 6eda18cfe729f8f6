// Package regtext reads and writes regedit "Version 5.00" text.
//
// ParseReg turns .reg input into a list of operations that a caller applies
// against a live registry; Writer produces .reg output one key at a time.
// String data inside operations is always UTF-16LE with terminators, the
// form .reg files carry in their hex(2)/hex(7) payloads, regardless of the
// width the caller later writes with.
package regtext

import "github.com/joshuapare/regkit/pkg/types"

// Op is one parsed .reg statement.
type Op interface{ isOp() }

// OpCreateKey is a [PATH] section header.
type OpCreateKey struct {
	Path string
}

// OpDeleteKey is a [-PATH] section header; it removes the whole subtree.
type OpDeleteKey struct {
	Path string
}

// OpSetValue is a "name"=data line.
type OpSetValue struct {
	Path string
	Name string // "" for the default value (@)
	Type types.RegType
	Data []byte
}

// OpDeleteValue is a "name"=- line.
type OpDeleteValue struct {
	Path string
	Name string
}

func (OpCreateKey) isOp()   {}
func (OpDeleteKey) isOp()   {}
func (OpSetValue) isOp()    {}
func (OpDeleteValue) isOp() {}

// ParseOptions controls ParseReg.
type ParseOptions struct {
	// InputEncoding forces the input encoding ("UTF-8", "UTF-16LE" or
	// "WINDOWS-1252"). Empty means detect from the BOM, falling back to
	// Windows-1252 when the input is not valid UTF-8.
	InputEncoding string
}

// ExportOptions controls Writer output.
type ExportOptions struct {
	// OutputEncoding is "UTF-8" (default) or "UTF-16LE", the encoding
	// regedit itself writes.
	OutputEncoding string
	// WithBOM prefixes UTF-16LE output with a byte order mark.
	WithBOM bool
}
