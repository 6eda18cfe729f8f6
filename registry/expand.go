package registry

import (
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/pkg/types"
)

// ExpandEnvString substitutes %NAME% references in s from the environment.
// References to undefined variables are left as written. It reports false,
// and no error, when the engine cannot expand s.
func (r *Registry) ExpandEnvString(s string) (string, bool) {
	b := r.bufs.get(initialBufferSize)
	defer func() { r.bufs.put(b) }()

	need, st := r.eng.ExpandEnvironmentStrings(s, r.width, *b)
	if st == types.StatusMoreData {
		r.log.Debug("expansion buffer too small", "size", need)
		r.bufs.put(b)
		b = r.bufs.get(int(need))
		need, st = r.eng.ExpandEnvironmentStrings(s, r.width, *b)
	}
	if st != types.StatusSuccess || int(need) > len(*b) {
		r.log.Debug("expansion failed", "input", s, "status", uint32(st))
		return "", false
	}
	return codec.DecodeString(r.width, (*b)[:need]), true
}
