package codec

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/regkit/internal/buf"
	"github.com/joshuapare/regkit/pkg/types"
)

// ansi is the code page narrow text is stored in.
var ansi = charmap.Windows1252

// replacementByte is what the host substitutes for runes the code page lacks.
const replacementByte = '?'

// appendText appends s in width w without a terminator. Narrow encoding
// fails with types.ErrUnrepresentable unless lossy is set, in which case the
// rune is replaced the way the host's ANSI conversion does.
func appendText(dst []byte, w Width, s string, lossy bool) ([]byte, error) {
	if w == Wide {
		for _, u := range utf16.Encode([]rune(s)) {
			dst = buf.PutU16LE(dst, u)
		}
		return dst, nil
	}
	for _, r := range s {
		if r < utf8.RuneSelf {
			dst = append(dst, byte(r))
			continue
		}
		b, ok := ansi.EncodeRune(r)
		if !ok {
			if !lossy {
				return nil, &types.Error{Kind: types.ErrKindEncoding, Msg: "rune " + string(r) + " has no narrow form"}
			}
			b = replacementByte
		}
		dst = append(dst, b)
	}
	return dst, nil
}

// decodeUnits converts raw units of width w into a Go string. A trailing odd
// byte in wide data is ignored.
func decodeUnits(w Width, data []byte) string {
	if w == Wide {
		units := make([]uint16, len(data)/2)
		for i := range units {
			units[i] = buf.U16LE(data[i*2:])
		}
		return string(utf16.Decode(units))
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = ansi.DecodeByte(b)
	}
	return string(runes)
}

// isTerminator reports whether the unit at off is all zero bytes.
func isTerminator(w Width, data []byte, off int) bool {
	if w == Wide {
		return data[off] == 0 && data[off+1] == 0
	}
	return data[off] == 0
}

// EncodeString returns s in width w followed by one terminator unit, the
// wire form of REG_SZ and REG_EXPAND_SZ.
func EncodeString(w Width, s string) ([]byte, error) {
	out, err := appendText(make([]byte, 0, (len(s)+1)*w.UnitSize()), w, s, false)
	if err != nil {
		return nil, err
	}
	return append(out, w.Terminator()...), nil
}

// DecodeString returns the text in data up to the first terminator unit, or
// all of data when no terminator is present.
func DecodeString(w Width, data []byte) string {
	unit := w.UnitSize()
	end := len(data) - len(data)%unit
	for off := 0; off < end; off += unit {
		if isTerminator(w, data, off) {
			return decodeUnits(w, data[:off])
		}
	}
	return decodeUnits(w, data[:end])
}

// Transcode re-encodes every unit of data from one width to another,
// terminators included. Runes the narrow code page lacks become '?', which
// is how the host converts between its wide and ANSI entry points.
func Transcode(data []byte, from, to Width) []byte {
	if from == to {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}
	unit := from.UnitSize()
	text := decodeUnits(from, data[:len(data)-len(data)%unit])
	out, _ := appendText(make([]byte, 0, len(text)*to.UnitSize()), to, text, true)
	return out
}

// EncodeLen returns the number of units s occupies in width w, without a
// terminator.
func EncodeLen(w Width, s string) int {
	if w == Narrow {
		return utf8.RuneCountInString(s)
	}
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
