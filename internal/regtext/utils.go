package regtext

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// unescapeRegString unescapes a string from .reg format.
// .reg files escape backslashes as \\ and quotes as \"
func unescapeRegString(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, Backslash, EscapedBackslash)
	return strings.ReplaceAll(s, Quote, EscapedQuote)
}

// findClosingQuote finds the position of the closing quote in a line,
// accounting for escaped quotes (preceded by an odd number of backslashes).
// Returns -1 if no valid closing quote is found.
// The search starts at position 1 (assuming the opening quote is at position 0).
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		numBackslashes := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			numBackslashes++
		}
		if numBackslashes%2 == 1 {
			continue
		}
		return i
	}
	return -1
}

// parseHexKind extracts the kind from a hex(N): prefix. Plain hex: is
// REG_BINARY.
func parseHexKind(payload string) (types.RegType, error) {
	if strings.HasPrefix(payload, HexPrefix) {
		return types.REG_BINARY, nil
	}
	closeParen := strings.IndexByte(payload, ')')
	if !strings.HasPrefix(payload, HexTypedPrefix) || closeParen < len(HexTypedPrefix) {
		return 0, fmt.Errorf("regtext: malformed hex type in %q", payload)
	}
	n, err := strconv.ParseUint(payload[len(HexTypedPrefix):closeParen], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("regtext: malformed hex type in %q: %w", payload, err)
	}
	return types.RegType(n), nil
}

// parseHexBytes parses the comma-separated bytes after the colon of a hex
// payload. Whitespace, commas and continuation backslashes are skipped and
// single-digit bytes are accepted.
func parseHexBytes(payload []byte) ([]byte, error) {
	colonPos := bytes.IndexByte(payload, ':')
	if colonPos == -1 {
		return nil, fmt.Errorf("regtext: invalid hex data: missing colon")
	}
	payload = payload[colonPos+1:]
	result := make([]byte, 0, len(payload)/3+1)

	i := 0
	for i < len(payload) {
		for i < len(payload) && isHexSkipChar(payload[i]) {
			i++
		}
		if i >= len(payload) {
			break
		}
		hi := hexCharToNibble(payload[i])
		if hi == 0xFF {
			return nil, fmt.Errorf("regtext: invalid hex digit %q at position %d", payload[i], i)
		}
		i++
		if i >= len(payload) || isHexSkipChar(payload[i]) {
			result = append(result, hi)
			continue
		}
		lo := hexCharToNibble(payload[i])
		if lo == 0xFF {
			return nil, fmt.Errorf("regtext: invalid hex digit %q at position %d", payload[i], i)
		}
		i++
		result = append(result, hi<<4|lo)
	}
	return result, nil
}

// hexCharToNibble converts a hex character to its 4-bit value
// Returns 0xFF for invalid characters.
func hexCharToNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0xFF
	}
}

// isHexSkipChar returns true for characters to skip during hex parsing.
func isHexSkipChar(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' || c == '\\'
}
