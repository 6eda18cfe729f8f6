package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

const sampleReg = "Windows Registry Editor Version 5.00\r\n" +
	"\r\n" +
	"[HKCU\\Software\\Sample]\r\n" +
	"@=\"default value\"\r\n" +
	"\"Name\"=\"Señor \\\"quoted\\\"\"\r\n" +
	"\"Count\"=dword:0000002a\r\n" +
	"\"Path\"=hex(2):25,00,41,00,50,00,50,00,44,00,41,00,54,00,41,00,25,00,00,00\r\n" +
	"\"List\"=hex(7):61,00,00,00,62,00,00,00,00,00\r\n" +
	"\"Big\"=hex(b):01,00,00,00,00,00,00,00\r\n" +
	"\"Blob\"=hex:de,ad,be,ef\r\n" +
	"\r\n" +
	"[HKCU\\Software\\Sample\\Child]\r\n" +
	"\"Leaf\"=dword:00000001\r\n" +
	"\r\n" +
	"[HKCU\\Software\\Sample\\Stale]\r\n" +
	"\r\n" +
	"[-HKCU\\Software\\Sample\\Stale]\r\n" +
	"[-HKCU\\Software\\Sample\\NeverExisted]\r\n"

func TestImport(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		require.NoError(t, Import(r, []byte(sampleReg)))

		k, err := r.Open(`HKEY_CURRENT_USER\Software\Sample`, types.KEY_READ)
		require.NoError(t, err)
		defer k.Close()

		s, err := k.GetString("")
		require.NoError(t, err)
		assert.Equal(t, "default value", s)

		s, err = k.GetString("Name")
		require.NoError(t, err)
		assert.Equal(t, `Señor "quoted"`, s)

		dw, err := k.GetDWORD("Count")
		require.NoError(t, err)
		assert.Equal(t, uint32(42), dw)

		s, err = k.GetExpandString("Path")
		require.NoError(t, err)
		assert.Equal(t, "%APPDATA%", s)

		ss, err := k.GetStrings("List")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ss)

		qw, err := k.GetQWORD("Big")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), qw)

		bin, err := k.GetBinary("Blob")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, bin)

		names, err := k.ReadSubkeyNames()
		require.NoError(t, err)
		assert.Equal(t, []string{"Child"}, names)
	})
}

func TestImport_Errors(t *testing.T) {
	r, eng := newTestRegistry(t, Wide)

	err := Import(r, []byte("not a reg file"))
	assert.Error(t, err)

	err = Import(r, []byte(regHeader+"[HKEY_BOGUS\\x]\r\n"))
	assert.ErrorIs(t, err, types.ErrUnsupportedRoot)

	err = Import(r, []byte(regHeader+"[-HKEY_CURRENT_USER]\r\n"))
	assert.ErrorIs(t, err, types.ErrInvalidPath)
	assert.Zero(t, eng.OpenHandles())
}

const regHeader = "Windows Registry Editor Version 5.00\r\n\r\n"

func TestExport_RoundTrip(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		require.NoError(t, Import(r, []byte(sampleReg)))
		k, err := r.Open(`HKEY_CURRENT_USER\Software\Sample`, types.KEY_READ)
		require.NoError(t, err)
		defer k.Close()

		out, err := Export(k, ExportOptions{})
		require.NoError(t, err)
		text := string(out)
		assert.True(t, strings.HasPrefix(text, "Windows Registry Editor Version 5.00\r\n"))
		assert.Contains(t, text, "[HKEY_CURRENT_USER\\Software\\Sample]\r\n@=\"default value\"\r\n")
		assert.Contains(t, text, `"Name"="Señor \"quoted\""`)
		assert.Contains(t, text, `"Count"=dword:0000002a`)
		assert.Contains(t, text, `"Path"=hex(2):25,00,41,00,50,00,50,00,44,00,41,00,54,00,41,00,25,00,00,00`)
		assert.Contains(t, text, `[HKEY_CURRENT_USER\Software\Sample\Child]`)
		assert.NotContains(t, text, "Stale")

		// importing the export into a fresh engine reproduces it exactly
		fresh, _ := newTestRegistry(t, r.Width())
		require.NoError(t, Import(fresh, out))
		k2, err := fresh.Open(`HKEY_CURRENT_USER\Software\Sample`, types.KEY_READ)
		require.NoError(t, err)
		defer k2.Close()
		again, err := Export(k2, ExportOptions{OutputEncoding: "UTF-16LE", WithBOM: true})
		require.NoError(t, err)

		reexported, err := Export(k2, ExportOptions{})
		require.NoError(t, err)
		assert.Equal(t, text, string(reexported))
		assert.Equal(t, []byte{0xFF, 0xFE}, again[:2])
	})
}

func TestMerge_MatchesSequentialImport(t *testing.T) {
	base := regHeader +
		"[HKCU\\Software\\Merge]\r\n" +
		"\"Version\"=\"1.0\"\r\n" +
		"\"Mode\"=dword:00000001\r\n\r\n" +
		"[HKCU\\Software\\Merge\\Config]\r\n" +
		"\"Level\"=dword:00000002\r\n"
	patch := regHeader +
		"[-HKCU\\Software\\Merge\\Config]\r\n\r\n" +
		"[HKCU\\Software\\Merge]\r\n" +
		"\"Version\"=\"2.0\"\r\n" +
		"\"Mode\"=-\r\n" +
		"@=\"merged\"\r\n\r\n" +
		"[HKCU\\Software\\Merge\\Config]\r\n" +
		"\"Fresh\"=\"yes\"\r\n"

	forEachWidth(t, func(t *testing.T, r *Registry) {
		stats, err := Merge(r, []byte(base), []byte(patch))
		require.NoError(t, err)
		assert.Less(t, stats.OutputOps, stats.InputOps)

		seq, eng := newTestRegistry(t, r.Width())
		require.NoError(t, Import(seq, []byte(base)))
		require.NoError(t, Import(seq, []byte(patch)))
		assert.Zero(t, eng.OpenHandles())

		export := func(r *Registry) string {
			k, err := r.Open(`HKEY_CURRENT_USER\Software\Merge`, types.KEY_READ)
			require.NoError(t, err)
			defer k.Close()
			out, err := Export(k, ExportOptions{})
			require.NoError(t, err)
			return string(out)
		}
		merged := export(r)
		assert.Equal(t, export(seq), merged)
		assert.Contains(t, merged, `"Fresh"="yes"`)
		assert.NotContains(t, merged, "Level")
		assert.NotContains(t, merged, "Mode")
	})
}

func TestMerge_ParseError(t *testing.T) {
	r, _ := newTestRegistry(t, Wide)
	_, err := Merge(r, []byte(regHeader), []byte("garbage"))
	assert.ErrorContains(t, err, "parse file 1")
}

func TestImport_RootSection(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		in := regHeader +
			"[HKCU]\r\n" +
			"\"Top\"=\"level\"\r\n" +
			"\r\n" +
			"[HKEY_CURRENT_USER\\Software\\Leaf]\r\n" +
			"\"Count\"=dword:00000007\r\n"
		require.NoError(t, Import(r, []byte(in)))

		root, err := r.Root(types.RootCurrentUser)
		require.NoError(t, err)
		s, err := root.GetString("Top")
		require.NoError(t, err)
		assert.Equal(t, "level", s)

		k, err := r.Open(`HKEY_CURRENT_USER\Software\Leaf`, types.KEY_READ)
		require.NoError(t, err)
		defer k.Close()
		dw, err := k.GetDWORD("Count")
		require.NoError(t, err)
		assert.Equal(t, uint32(7), dw)
	})
}

func TestImport_RootSectionUnknownRoot(t *testing.T) {
	r, _ := newTestRegistry(t, Wide)
	err := Import(r, []byte(regHeader+"[HKEY_BOGUS]\r\n\"x\"=\"y\"\r\n"))
	assert.ErrorIs(t, err, types.ErrUnsupportedRoot)
}

func TestExport_RootRoundTrip(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		require.NoError(t, Import(r, []byte(sampleReg)))
		root, err := r.Root(types.RootCurrentUser)
		require.NoError(t, err)
		require.NoError(t, root.SetString("Top", "level"))

		out, err := Export(root, ExportOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(out), "[HKEY_CURRENT_USER]\r\n\"Top\"=\"level\"\r\n")

		fresh, eng := newTestRegistry(t, r.Width())
		require.NoError(t, Import(fresh, out))
		assert.Zero(t, eng.OpenHandles())

		freshRoot, err := fresh.Root(types.RootCurrentUser)
		require.NoError(t, err)
		again, err := Export(freshRoot, ExportOptions{})
		require.NoError(t, err)
		assert.Equal(t, string(out), string(again))
	})
}

// setFailEngine rejects every value write and every close.
type setFailEngine struct {
	engine.Engine
}

func (setFailEngine) SetValue(engine.Handle, string, types.RegType, codec.Width, []byte) types.Status {
	return types.StatusAccessDenied
}

func (setFailEngine) CloseKey(engine.Handle) types.Status {
	return types.StatusInvalidHandle
}

func TestImport_ReportsCloseFailureAfterError(t *testing.T) {
	r := New(setFailEngine{Engine: newMemEngine()})

	err := Import(r, []byte(regHeader+"[HKCU\\Software\\Denied]\r\n\"x\"=\"y\"\r\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.StatusAccessDenied)
	assert.ErrorIs(t, err, types.StatusInvalidHandle)
}
