package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

func TestCreate_ExistingKey(t *testing.T) {
	r, eng := newTestRegistry(t, Wide)
	const path = `HKEY_CURRENT_USER\Software\Vendor\App`

	k, err := r.Create(path, types.KEY_ALL_ACCESS)
	require.NoError(t, err)
	require.NoError(t, k.Close())

	_, err = r.Create(path, types.KEY_ALL_ACCESS)
	require.ErrorIs(t, err, types.ErrKeyExists)
	assert.Zero(t, eng.OpenHandles(), "handle of the existing key must be closed")

	k, err = r.CreateOrOpen(path, types.KEY_ALL_ACCESS)
	require.NoError(t, err)
	assert.Equal(t, path, k.Path())
	require.NoError(t, k.Close())
	assert.Zero(t, eng.OpenHandles())
}

func TestCreate_FreshKeyIsEmpty(t *testing.T) {
	forEachWidth(t, func(t *testing.T, r *Registry) {
		parent := scratchKey(t, r)
		k, err := parent.Create("fresh", types.KEY_ALL_ACCESS)
		require.NoError(t, err)
		defer k.Close()

		n, err := k.CountSubkeys()
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = k.CountValues()
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, `HKEY_CURRENT_USER\Software\regkit-test\fresh`, k.Path())
	})
}

func TestOpen_DefaultsToRead(t *testing.T) {
	r, _ := newTestRegistry(t, Wide)
	scratchKey(t, r)

	k, err := r.Open(`HKEY_CURRENT_USER\Software\regkit-test`, 0)
	require.NoError(t, err)
	defer k.Close()

	_, err = k.Stat()
	require.NoError(t, err)
	err = k.SetDWORD("x", 1)
	assert.ErrorIs(t, err, types.StatusAccessDenied, "zero access must not grant write")
}

func TestOpen_Errors(t *testing.T) {
	r, _ := newTestRegistry(t, Wide)

	_, err := r.Open(`HKEY_CURRENT_USER\Does\Not\Exist`, types.KEY_READ)
	require.ErrorIs(t, err, types.StatusFileNotFound)
	assert.ErrorIs(t, err, types.ErrNative)

	_, err = r.Open(`HKEY_NOWHERE\x`, types.KEY_READ)
	assert.ErrorIs(t, err, types.ErrUnsupportedRoot)

	_, err = r.Open(`no-separator`, types.KEY_READ)
	assert.ErrorIs(t, err, types.ErrInvalidPath)

	_, err = r.Root(types.Root("HKEY_BOGUS"))
	assert.ErrorIs(t, err, types.ErrUnsupportedRoot)
}

func TestKey_CloseSemantics(t *testing.T) {
	r, eng := newTestRegistry(t, Wide)
	k := scratchKey(t, r)
	child, err := k.CreateOrOpen("child", types.KEY_ALL_ACCESS)
	require.NoError(t, err)
	require.Equal(t, 2, eng.OpenHandles())

	require.NoError(t, child.Close())
	assert.ErrorIs(t, child.Close(), types.ErrClosed)
	assert.ErrorIs(t, child.SetDWORD("x", 1), types.ErrClosed)
	_, err = child.GetDWORD("x")
	assert.ErrorIs(t, err, types.ErrClosed)
	_, err = child.Open("y", 0)
	assert.ErrorIs(t, err, types.ErrClosed)
	assert.Equal(t, 1, eng.OpenHandles())

	root, err := r.Root(types.RootLocalMachine)
	require.NoError(t, err)
	require.NoError(t, root.Close())
	assert.Equal(t, 1, eng.OpenHandles())
}

func TestKey_ParentOutlivesChild(t *testing.T) {
	r, _ := newTestRegistry(t, Wide)
	parent, err := r.CreateOrOpen(`HKEY_CURRENT_USER\Parent`, types.KEY_ALL_ACCESS)
	require.NoError(t, err)
	child, err := parent.CreateOrOpen("Child", types.KEY_ALL_ACCESS)
	require.NoError(t, err)

	require.NoError(t, parent.Close())
	require.NoError(t, child.SetString("still", "usable"))
	require.NoError(t, child.Close())
}

func TestOpenCurrentUser(t *testing.T) {
	r, eng := newTestRegistry(t, Wide)
	scratchKey(t, r)

	hkcu, err := r.OpenCurrentUser(types.KEY_READ)
	require.NoError(t, err)
	names, err := hkcu.ReadSubkeyNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Software"}, names)
	assert.Equal(t, "HKEY_CURRENT_USER", hkcu.Path())

	require.NoError(t, hkcu.Close())
	assert.Equal(t, 1, eng.OpenHandles())
}

// closeFailEngine refuses to close one particular handle.
type closeFailEngine struct {
	engine.Engine
	fail   engine.Handle
	closed []engine.Handle
}

func (e *closeFailEngine) CloseKey(h engine.Handle) types.Status {
	e.closed = append(e.closed, h)
	if h == e.fail {
		return types.StatusInvalidHandle
	}
	return e.Engine.CloseKey(h)
}

func TestCloseAll_ContinuesPastFailures(t *testing.T) {
	eng := &closeFailEngine{Engine: newMemEngine()}
	r := New(eng)

	var keys []*Key
	for _, name := range []string{"a", "b", "c"} {
		k, err := r.CreateOrOpen(`HKEY_CURRENT_USER\`+name, types.KEY_ALL_ACCESS)
		require.NoError(t, err)
		keys = append(keys, k)
	}
	eng.fail = keys[1].h
	already := keys[2]
	require.NoError(t, already.Close())
	eng.closed = nil

	err := CloseAll(keys[0], nil, keys[1], keys[2])
	require.Error(t, err)
	assert.ErrorIs(t, err, types.StatusInvalidHandle)
	assert.ErrorIs(t, err, types.ErrClosed)
	assert.Equal(t, []engine.Handle{keys[0].h, keys[1].h}, eng.closed)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 2)

	assert.NoError(t, CloseAll())
}
