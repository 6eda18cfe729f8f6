package regtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/joshuapare/regkit/internal/buf"
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/pkg/types"
)

// Writer accumulates .reg output. Keys are written in the order Key is
// called; each value belongs to the most recent key.
type Writer struct {
	buf     bytes.Buffer
	started bool
}

// NewWriter returns a Writer with the header already written.
func NewWriter() *Writer {
	w := &Writer{}
	w.buf.WriteString(RegFileHeader + CRLF)
	return w
}

// Key starts a section for path.
func (w *Writer) Key(path string) {
	w.buf.WriteString(CRLF + KeyOpenBracket + path + KeyCloseBracket + CRLF)
	w.started = true
}

// Value writes one value line. String kinds carry UTF-16LE data.
func (w *Writer) Value(name string, kind types.RegType, data []byte) {
	var line strings.Builder
	if name == "" {
		line.WriteString(DefaultValuePrefix)
	} else {
		line.WriteString(Quote + escapeString(name) + Quote + ValueAssignment)
	}

	switch {
	case kind == types.REG_SZ && isPlainString(data):
		line.WriteString(Quote + escapeString(codec.DecodeString(codec.Wide, data)) + Quote)
	case kind == types.REG_DWORD && len(data) == 4:
		line.WriteString(DWORDPrefix)
		fmt.Fprintf(&line, DWORDHexFormat, buf.U32LE(data))
	case kind == types.REG_BINARY:
		writeHex(&line, HexPrefix, data)
	default:
		writeHex(&line, fmt.Sprintf(HexTypeFormat, uint32(kind)), data)
	}
	w.buf.WriteString(line.String())
	w.buf.WriteString(CRLF)
}

// Bytes returns the text written so far in the requested encoding.
func (w *Writer) Bytes(opts ExportOptions) ([]byte, error) {
	text := w.buf.Bytes()
	if w.started {
		text = append(text[:len(text):len(text)], CRLF...)
	}
	return encodeOutput(text, opts)
}

// isPlainString reports whether data is a single terminated string with no
// embedded terminator, so it can be written in quoted form.
func isPlainString(data []byte) bool {
	if len(data) < 2 || len(data)%2 != 0 {
		return false
	}
	for i := 0; i < len(data)-2; i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return false
		}
	}
	return data[len(data)-2] == 0 && data[len(data)-1] == 0
}

// writeHex writes prefix and data as comma-separated bytes, wrapping lines
// with a continuation backslash the way regedit does.
func writeHex(line *strings.Builder, prefix string, data []byte) {
	line.WriteString(prefix)
	col := line.Len()
	for i, b := range data {
		if i > 0 {
			line.WriteString(HexByteSeparator)
			col++
			if col >= HexLineWidth-4 {
				line.WriteString(LineContinuation + CRLF + "  ")
				col = 2
			}
		}
		fmt.Fprintf(line, HexByteFormat, b)
		col += 2
	}
}
