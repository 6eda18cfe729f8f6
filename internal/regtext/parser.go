package regtext

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/internal/buf"
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/pkg/types"
)

// ParseReg converts .reg text into operations, in file order. Key paths are
// returned as written apart from ExpandRoot.
func ParseReg(data []byte, opts ParseOptions) ([]Op, error) {
	text, err := decodeInput(data, opts.InputEncoding)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxLineSize)

	var (
		ops        []Op
		current    string
		seenHeader bool
		pending    strings.Builder
		lineNo     int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), CR)
		trim := strings.TrimSpace(line)

		// hex data may continue over several lines ending in a backslash
		if pending.Len() > 0 || (strings.HasSuffix(trim, LineContinuation) && isHexLine(trim)) {
			pending.WriteString(trim)
			if strings.HasSuffix(trim, LineContinuation) {
				continue
			}
			trim = pending.String()
			pending.Reset()
		}

		if trim == "" || strings.HasPrefix(trim, CommentPrefix) {
			continue
		}
		if !seenHeader {
			if trim != RegFileHeader {
				return nil, errors.New("regtext: missing header")
			}
			seenHeader = true
			continue
		}
		if strings.HasPrefix(trim, KeyOpenBracket) {
			if !strings.HasSuffix(trim, KeyCloseBracket) {
				return nil, fmt.Errorf("regtext: line %d: malformed section %q", lineNo, trim)
			}
			section := strings.TrimSuffix(strings.TrimPrefix(trim, KeyOpenBracket), KeyCloseBracket)
			if strings.HasPrefix(section, DeleteKeyPrefix) {
				ops = append(ops, OpDeleteKey{Path: ExpandRoot(strings.TrimSpace(section[1:]))})
				current = ""
				continue
			}
			current = ExpandRoot(section)
			ops = append(ops, OpCreateKey{Path: current})
			continue
		}
		if current == "" {
			return nil, fmt.Errorf("regtext: line %d: value without section: %q", lineNo, trim)
		}
		op, err := parseValueLine(current, trim)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning .reg input: %w", err)
	}
	if !seenHeader {
		return nil, errors.New("regtext: missing header")
	}
	return ops, nil
}

// isHexLine reports whether a value line carries hex data.
func isHexLine(line string) bool {
	eq := strings.Index(line, "="+HexPrefix)
	if eq < 0 {
		eq = strings.Index(line, "="+HexTypedPrefix)
	}
	return eq >= 0
}

func parseValueLine(path, line string) (Op, error) {
	if strings.HasPrefix(line, DefaultValuePrefix) {
		return parseValue(path, "", line[len(DefaultValuePrefix):])
	}
	if !strings.HasPrefix(line, Quote) {
		return nil, fmt.Errorf("regtext: malformed value line %q", line)
	}
	end := findClosingQuote(line)
	if end < 0 {
		return nil, fmt.Errorf("regtext: unterminated value name in %q", line)
	}
	name := unescapeRegString(line[1:end])
	rest := strings.TrimSpace(line[end+1:])
	if !strings.HasPrefix(rest, ValueAssignment) {
		return nil, fmt.Errorf("regtext: missing '=' in %q", line)
	}
	return parseValue(path, name, rest[1:])
}

func parseValue(path, name, payload string) (Op, error) {
	payload = strings.TrimSpace(payload)
	switch {
	case payload == DeleteValueToken:
		return OpDeleteValue{Path: path, Name: name}, nil

	case strings.HasPrefix(payload, Quote):
		if len(payload) < 2 || !strings.HasSuffix(payload, Quote) {
			return nil, fmt.Errorf("regtext: unterminated string %q", payload)
		}
		data, err := codec.EncodeString(codec.Wide, unescapeRegString(payload[1:len(payload)-1]))
		if err != nil {
			return nil, err
		}
		return OpSetValue{Path: path, Name: name, Type: types.REG_SZ, Data: data}, nil

	case strings.HasPrefix(payload, DWORDPrefix):
		hexPart := payload[len(DWORDPrefix):]
		if len(hexPart) != DWORDHexLength {
			return nil, fmt.Errorf("regtext: invalid dword %q", payload)
		}
		n, err := strconv.ParseUint(hexPart, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("regtext: invalid dword %q: %w", payload, err)
		}
		return OpSetValue{Path: path, Name: name, Type: types.REG_DWORD, Data: buf.DWORD(uint32(n))}, nil

	case strings.HasPrefix(payload, HexPrefix), strings.HasPrefix(payload, HexTypedPrefix):
		kind, err := parseHexKind(payload)
		if err != nil {
			return nil, err
		}
		data, err := parseHexBytes([]byte(payload))
		if err != nil {
			return nil, err
		}
		return OpSetValue{Path: path, Name: name, Type: kind, Data: data}, nil
	}
	return nil, fmt.Errorf("regtext: unsupported value %q", payload)
}
