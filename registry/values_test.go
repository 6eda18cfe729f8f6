package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func TestValueRoundTrip(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		k := scratchKey(t, r)

		require.NoError(t, k.SetString("hello", "world"))
		require.NoError(t, k.SetExpandString("path", "%PATH%"))
		require.NoError(t, k.SetDWORD("dword", 12341234))
		require.NoError(t, k.SetQWORD("qword", 1234123412341234))
		require.NoError(t, k.SetBinary("binary", []byte{0xFF, 0x00}))
		require.NoError(t, k.SetStrings("multi", []string{"sup!", "héllo", "", ""}))

		s, err := k.GetString("hello")
		require.NoError(t, err)
		assert.Equal(t, "world", s)

		s, err = k.GetExpandString("path")
		require.NoError(t, err)
		assert.Equal(t, "%PATH%", s, "expandable strings read back unexpanded")

		dw, err := k.GetDWORD("dword")
		require.NoError(t, err)
		assert.Equal(t, uint32(12341234), dw)

		qw, err := k.GetQWORD("qword")
		require.NoError(t, err)
		assert.Equal(t, uint64(1234123412341234), qw)

		bin, err := k.GetBinary("binary")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0x00}, bin)

		ss, err := k.GetStrings("multi")
		require.NoError(t, err)
		assert.Equal(t, []string{"sup!", "héllo"}, ss)
	})
}

func TestValueRoundTrip_LongValues(t *testing.T) {
	long := "a value that is comfortably longer than the initial thirty-two byte buffer"
	forEachWidth(t, func(t *testing.T, r *Registry) {
		k := scratchKey(t, r)
		require.NoError(t, k.SetString("long", long))
		got, err := k.GetString("long")
		require.NoError(t, err)
		assert.Equal(t, long, got)

		blob := make([]byte, 1000)
		for i := range blob {
			blob[i] = byte(i)
		}
		require.NoError(t, k.SetBinary("blob", blob))
		gotBlob, err := k.GetBinary("blob")
		require.NoError(t, err)
		assert.Equal(t, blob, gotBlob)
	})
}

func TestValue_EmptyValues(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		k := scratchKey(t, r)
		require.NoError(t, k.SetString("", ""))
		require.NoError(t, k.SetStrings("none", nil))
		require.NoError(t, k.SetBinary("zero", nil))

		s, err := k.GetString("")
		require.NoError(t, err)
		assert.Empty(t, s)

		ss, err := k.GetStrings("none")
		require.NoError(t, err)
		assert.Empty(t, ss)

		b, err := k.GetBinary("zero")
		require.NoError(t, err)
		assert.Empty(t, b)
	})
}

func TestValue_KindMismatch(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		k := scratchKey(t, r)
		require.NoError(t, k.SetDWORD("n", 7))

		_, err := k.GetString("n")
		require.ErrorIs(t, err, types.ErrNative)
		assert.ErrorIs(t, err, types.StatusUnsupportedType)

		_, err = k.GetString("missing")
		assert.ErrorIs(t, err, types.StatusFileNotFound)

		var ne *types.NativeError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, "RegGetValue", ne.Op)
		assert.Equal(t, "The system cannot find the file specified.", ne.Msg)
	})
}

func TestValue_MalformedFixedWidth(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		k := scratchKey(t, r)
		require.NoError(t, k.SetValue("short", types.REG_DWORD, []byte{1, 2, 3}))
		require.NoError(t, k.SetValue("longq", types.REG_QWORD, []byte{1, 2, 3, 4}))

		_, err := k.GetDWORD("short")
		assert.ErrorIs(t, err, types.ErrTypeMismatch)
		_, err = k.GetQWORD("longq")
		assert.ErrorIs(t, err, types.ErrTypeMismatch)
	})
}

func TestValue_RawAndDelete(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		k := scratchKey(t, r)
		require.NoError(t, k.SetValue("raw", types.REG_DWORD_BE, []byte{0, 0, 0, 1}))

		kind, data, err := k.GetValue("raw")
		require.NoError(t, err)
		assert.Equal(t, types.REG_DWORD_BE, kind)
		assert.Equal(t, []byte{0, 0, 0, 1}, data)

		require.NoError(t, k.SetExpandString("exp", "%APPDATA%"))
		kind, _, err = k.GetValue("exp")
		require.NoError(t, err)
		assert.Equal(t, types.REG_EXPAND_SZ, kind)

		require.NoError(t, k.DeleteValue("raw"))
		_, _, err = k.GetValue("raw")
		assert.ErrorIs(t, err, types.StatusFileNotFound)
		assert.ErrorIs(t, k.DeleteValue("raw"), types.StatusFileNotFound)
	})
}

func TestValue_NarrowUnrepresentable(t *testing.T) {
	r, _ := newTestRegistry(t, Narrow)
	k := scratchKey(t, r)

	err := k.SetString("jp", "日本")
	assert.ErrorIs(t, err, types.ErrUnrepresentable)
	err = k.SetStrings("jp", []string{"ok", "日本"})
	assert.ErrorIs(t, err, types.ErrUnrepresentable)
}

func TestValue_WidthsShareStorage(t *testing.T) {
	eng := newMemEngine()
	wide := New(eng, WithWidth(Wide))
	narrow := New(eng, WithWidth(Narrow))

	wk := scratchKey(t, wide)
	require.NoError(t, wk.SetStrings("list", []string{"café", "naïve"}))

	nk := scratchKey(t, narrow)
	got, err := nk.GetStrings("list")
	require.NoError(t, err)
	assert.Equal(t, []string{"café", "naïve"}, got)
}
