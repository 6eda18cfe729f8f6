package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/engine/memreg"
	"github.com/joshuapare/regkit/pkg/types"
)

var widths = []Width{Wide, Narrow}

var testEnv = map[string]string{
	"PATH":    `C:\Windows\system32;C:\Windows`,
	"APPDATA": `C:\Users\test\AppData\Roaming`,
}

func newMemEngine() *memreg.Engine {
	return memreg.New(memreg.WithEnv(func(k string) (string, bool) {
		v, ok := testEnv[k]
		return v, ok
	}))
}

func newTestRegistry(t *testing.T, w Width) (*Registry, *memreg.Engine) {
	t.Helper()
	eng := newMemEngine()
	return New(eng, WithWidth(w)), eng
}

// scratchKey creates HKEY_CURRENT_USER\Software\regkit-test and closes it
// when the test ends.
func scratchKey(t *testing.T, r *Registry) *Key {
	t.Helper()
	k, err := r.CreateOrOpen(`HKEY_CURRENT_USER\Software\regkit-test`, types.KEY_ALL_ACCESS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = k.Close() })
	return k
}

// forEachWidth runs fn once per width in its own subtest.
func forEachWidth(t *testing.T, fn func(t *testing.T, r *Registry)) {
	t.Helper()
	for _, w := range widths {
		t.Run(w.String(), func(t *testing.T) {
			r, _ := newTestRegistry(t, w)
			fn(t, r)
			require.Zero(t, r.bufs.outstanding.Load(), "buffers not returned to the pool")
		})
	}
}
