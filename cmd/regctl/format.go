package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/internal/buf"
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/registry"
)

// valueRecord is the JSON shape of one value.
type valueRecord struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

const defaultValueName = "(Default)"

func displayName(name string) string {
	if name == "" {
		return defaultValueName
	}
	return name
}

// decodeValue turns raw data into a string, []string, uint32 or uint64
// where the kind and length allow it, and a hex dump otherwise.
func decodeValue(kind types.RegType, data []byte, w registry.Width) any {
	switch kind {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return codec.DecodeString(w, data)
	case types.REG_MULTI_SZ:
		return codec.DecodeMultiString(w, data)
	case types.REG_DWORD:
		if len(data) == 4 {
			return buf.U32LE(data)
		}
	case types.REG_DWORD_BE:
		if len(data) == 4 {
			return buf.U32BE(data)
		}
	case types.REG_QWORD:
		if len(data) == 8 {
			return buf.U64LE(data)
		}
	}
	return fmt.Sprintf("% x", data)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case []string:
		return strings.Join(v, "\n")
	case uint32:
		return fmt.Sprintf("%d (0x%08x)", v, v)
	case uint64:
		return fmt.Sprintf("%d (0x%016x)", v, v)
	default:
		return fmt.Sprint(v)
	}
}

// writeValue stores args under name with the typed setter for typ.
// Every type takes exactly one argument except multi_sz, which takes one
// per string.
func writeValue(k *registry.Key, name, typ string, args []string) (types.RegType, error) {
	typ = strings.TrimPrefix(strings.ToLower(typ), "reg_")
	if typ != "multi_sz" && len(args) != 1 {
		return 0, fmt.Errorf("type %s takes one value, got %d", typ, len(args))
	}

	switch typ {
	case "sz":
		return types.REG_SZ, k.SetString(name, args[0])
	case "expand_sz":
		return types.REG_EXPAND_SZ, k.SetExpandString(name, args[0])
	case "multi_sz":
		return types.REG_MULTI_SZ, k.SetStrings(name, args)
	case "dword":
		v, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid DWORD value: %w", err)
		}
		return types.REG_DWORD, k.SetDWORD(name, uint32(v))
	case "qword":
		v, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid QWORD value: %w", err)
		}
		return types.REG_QWORD, k.SetQWORD(name, v)
	case "binary":
		data, err := parseHexString(args[0])
		if err != nil {
			return 0, fmt.Errorf("invalid BINARY value: %w", err)
		}
		return types.REG_BINARY, k.SetBinary(name, data)
	default:
		return 0, fmt.Errorf("unsupported value type: %s", typ)
	}
}

// parseHexString accepts hex with an optional 0x prefix and space, comma
// or colon separators.
func parseHexString(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.NewReplacer(" ", "", ",", "", ":", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, errors.New("hex string must have even number of characters")
	}
	return hex.DecodeString(s)
}
