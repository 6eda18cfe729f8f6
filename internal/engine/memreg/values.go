package memreg

import (
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

// GetValue implements engine.Engine with RegGetValue semantics: the kind
// restriction is checked first, REG_EXPAND_SZ data is expanded and reported
// as REG_SZ unless RRF_NOEXPAND is given, and string data is returned
// terminated.
func (e *Engine) GetValue(h engine.Handle, name string, flags engine.GetFlags, w codec.Width, kind *types.RegType, data []byte, size *uint32) types.Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n, granted, st := e.resolve(h)
	if st != types.StatusSuccess {
		return st
	}
	if !granted.Has(types.KEY_QUERY_VALUE) {
		return types.StatusAccessDenied
	}
	if flags&engine.RRF_RT_REG_EXPAND_SZ != 0 && flags&engine.RRF_NOEXPAND == 0 && flags&engine.RRF_RT_ANY != engine.RRF_RT_ANY {
		return types.StatusInvalidParameter
	}
	v, ok := n.value(name)
	if !ok {
		return types.StatusFileNotFound
	}

	reported, payload := v.kind, v.data
	if v.kind == types.REG_EXPAND_SZ && flags&engine.RRF_NOEXPAND == 0 {
		expanded := e.expand(codec.DecodeString(codec.Wide, payload))
		payload, _ = codec.EncodeString(codec.Wide, expanded)
		reported = types.REG_SZ
	}
	if !flags.Accepts(reported) {
		return types.StatusUnsupportedType
	}
	switch reported {
	case types.REG_SZ, types.REG_EXPAND_SZ:
		payload = terminate(payload, 1)
	case types.REG_MULTI_SZ:
		payload = terminate(payload, 2)
	}
	if w == codec.Narrow && reported.IsString() {
		payload = codec.Transcode(payload, codec.Wide, codec.Narrow)
	}

	*kind = reported
	*size = uint32(len(payload))
	if data == nil {
		return types.StatusSuccess
	}
	if len(data) < len(payload) {
		return types.StatusMoreData
	}
	copy(data, payload)
	return types.StatusSuccess
}

// terminate makes sure wide data ends with n zero units.
func terminate(data []byte, n int) []byte {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	have := 0
	for i := len(data) - 2; i >= 0 && have < n; i -= 2 {
		if data[i] != 0 || data[i+1] != 0 {
			break
		}
		have++
	}
	if have >= n {
		return data
	}
	out := make([]byte, len(data), len(data)+2*(n-have))
	copy(out, data)
	for ; have < n; have++ {
		out = append(out, 0, 0)
	}
	return out
}

// SetValue implements engine.Engine.
func (e *Engine) SetValue(h engine.Handle, name string, kind types.RegType, w codec.Width, data []byte) types.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, granted, st := e.resolve(h)
	if st != types.StatusSuccess {
		return st
	}
	if !granted.Has(types.KEY_SET_VALUE) {
		return types.StatusAccessDenied
	}
	if len([]rune(name)) > types.WindowsMaxValueNameLen {
		return types.StatusInvalidParameter
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	if w == codec.Narrow && kind.IsString() {
		stored = codec.Transcode(data, codec.Narrow, codec.Wide)
	}
	n.values.ReplaceOrInsert(&value{name: name, fold: fold(name), kind: kind, data: stored})
	n.lastWrite = e.now()
	return types.StatusSuccess
}

// DeleteValue implements engine.Engine.
func (e *Engine) DeleteValue(h engine.Handle, name string) types.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, granted, st := e.resolve(h)
	if st != types.StatusSuccess {
		return st
	}
	if !granted.Has(types.KEY_SET_VALUE) {
		return types.StatusAccessDenied
	}
	if _, ok := n.values.Delete(&value{fold: fold(name)}); !ok {
		return types.StatusFileNotFound
	}
	n.lastWrite = e.now()
	return types.StatusSuccess
}
