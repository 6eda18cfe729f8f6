package regtext

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errUnsupportedEncoding = errors.New("regtext: unsupported encoding")

// decodeInput converts .reg input into UTF-8 text.
func decodeInput(data []byte, enc string) (string, error) {
	if bytes.HasPrefix(data, UTF16LEBOM) {
		return fromUTF16LE(data[len(UTF16LEBOM):])
	}
	if bytes.HasPrefix(data, UTF8BOM) {
		return string(data[len(UTF8BOM):]), nil
	}
	switch strings.ToUpper(enc) {
	case "":
		if utf8.Valid(data) {
			return string(data), nil
		}
		return fromWindows1252(data)
	case EncodingUTF8:
		return string(data), nil
	case EncodingUTF16LE:
		return fromUTF16LE(data)
	case EncodingWindows1252:
		return fromWindows1252(data)
	default:
		return "", errUnsupportedEncoding
	}
}

func fromUTF16LE(data []byte) (string, error) {
	if len(data)%2 == 1 {
		data = data[:len(data)-1]
	}
	out, _, err := transform.Bytes(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// fromWindows1252 handles files written by tools that export in the local
// code page instead of UTF-16.
func fromWindows1252(data []byte) (string, error) {
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodeOutput converts UTF-8 .reg text into the requested encoding.
func encodeOutput(text []byte, opts ExportOptions) ([]byte, error) {
	switch strings.ToUpper(opts.OutputEncoding) {
	case "", EncodingUTF8:
		return text, nil
	case EncodingUTF16LE:
		bom := unicode.IgnoreBOM
		if opts.WithBOM {
			bom = unicode.UseBOM
		}
		out, _, err := transform.Bytes(unicode.UTF16(unicode.LittleEndian, bom).NewEncoder(), text)
		return out, err
	default:
		return nil, errUnsupportedEncoding
	}
}

var rootAliases = map[string]string{
	HKEYLocalMachineShort:  "HKEY_LOCAL_MACHINE",
	HKEYClassesRootShort:   "HKEY_CLASSES_ROOT",
	HKEYCurrentUserShort:   "HKEY_CURRENT_USER",
	HKEYUsersShort:         "HKEY_USERS",
	HKEYCurrentConfigShort: "HKEY_CURRENT_CONFIG",
}

// ExpandRoot replaces an abbreviated root (HKLM, HKCU, ...) at the start of
// path with its full name. Other paths are returned unchanged.
func ExpandRoot(path string) string {
	root, rest, found := strings.Cut(path, Backslash)
	full, ok := rootAliases[strings.ToUpper(root)]
	if !ok {
		return path
	}
	if !found {
		return full
	}
	return full + Backslash + rest
}
