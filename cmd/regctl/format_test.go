package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/registry"
)

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name string
		kind types.RegType
		data []byte
		want any
	}{
		{"dword", types.REG_DWORD, []byte{0x2a, 0, 0, 0}, uint32(42)},
		{"big endian dword", types.REG_DWORD_BE, []byte{0, 0, 0, 0x2a}, uint32(42)},
		{"qword", types.REG_QWORD, []byte{1, 0, 0, 0, 0, 0, 0, 0}, uint64(1)},
		{"short dword dumps hex", types.REG_DWORD, []byte{1, 2}, "01 02"},
		{"binary", types.REG_BINARY, []byte{0xde, 0xad}, "de ad"},
		{"none", types.REG_NONE, nil, ""},
		{"string", types.REG_SZ, []byte{'h', 0, 'i', 0, 0, 0}, "hi"},
		{"multi", types.REG_MULTI_SZ, []byte{'a', 0, 0, 0, 'b', 0, 0, 0, 0, 0}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeValue(tt.kind, tt.data, registry.Wide))
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "42 (0x0000002a)", formatValue(uint32(42)))
	assert.Equal(t, "1 (0x0000000000000001)", formatValue(uint64(1)))
	assert.Equal(t, "a\nb", formatValue([]string{"a", "b"}))
	assert.Equal(t, "text", formatValue("text"))
}

func TestParseHexString(t *testing.T) {
	got, err := parseHexString("0xDE AD,be:ef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)

	_, err = parseHexString("abc")
	assert.Error(t, err)
	_, err = parseHexString("zz")
	assert.Error(t, err)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, `HKEY_LOCAL_MACHINE\SOFTWARE`, normalizePath(`hklm\SOFTWARE\`))
	assert.Equal(t, "HKEY_USERS", normalizePath("HKU"))
	assert.Equal(t, `HKEY_CLASSES_ROOT\.txt`, normalizePath(`HKEY_CLASSES_ROOT\.txt`))
}
