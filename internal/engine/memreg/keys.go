package memreg

import (
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

// QueryInfoKey implements engine.Engine.
func (e *Engine) QueryInfoKey(h engine.Handle) (types.KeyInfo, types.Status) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n, granted, st := e.resolve(h)
	if st != types.StatusSuccess {
		return types.KeyInfo{}, st
	}
	if !granted.Has(types.KEY_QUERY_VALUE) {
		return types.KeyInfo{}, types.StatusAccessDenied
	}

	info := types.KeyInfo{
		SubkeyCount: uint32(n.subkeys.Len()),
		ValueCount:  uint32(n.values.Len()),
		LastWrite:   n.lastWrite,
	}
	n.subkeys.Ascend(func(c *node) bool {
		info.MaxSubkeyLen = max(info.MaxSubkeyLen, uint32(codec.EncodeLen(codec.Wide, c.name)))
		return true
	})
	n.values.Ascend(func(v *value) bool {
		info.MaxValueNameLen = max(info.MaxValueNameLen, uint32(codec.EncodeLen(codec.Wide, v.name)))
		info.MaxValueLen = max(info.MaxValueLen, uint32(len(v.data)))
		return true
	})
	return info, types.StatusSuccess
}

// EnumKey implements engine.Engine.
func (e *Engine) EnumKey(h engine.Handle, index uint32, w codec.Width, name []byte, nameLen *uint32) types.Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n, granted, st := e.resolve(h)
	if st != types.StatusSuccess {
		return st
	}
	if !granted.Has(types.KEY_ENUMERATE_SUB_KEYS) {
		return types.StatusAccessDenied
	}
	var found *node
	i := uint32(0)
	n.subkeys.Ascend(func(c *node) bool {
		if i == index {
			found = c
			return false
		}
		i++
		return true
	})
	if found == nil {
		return types.StatusNoMoreItems
	}
	return writeName(found.name, w, name, nameLen)
}

// EnumValue implements engine.Engine.
func (e *Engine) EnumValue(h engine.Handle, index uint32, w codec.Width, name []byte, nameLen *uint32) types.Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n, granted, st := e.resolve(h)
	if st != types.StatusSuccess {
		return st
	}
	if !granted.Has(types.KEY_QUERY_VALUE) {
		return types.StatusAccessDenied
	}
	var found *value
	i := uint32(0)
	n.values.Ascend(func(v *value) bool {
		if i == index {
			found = v
			return false
		}
		i++
		return true
	})
	if found == nil {
		return types.StatusNoMoreItems
	}
	return writeName(found.name, w, name, nameLen)
}

// writeName copies s, terminated, into dst in width w.
func writeName(s string, w codec.Width, dst []byte, n *uint32) types.Status {
	wide, _ := codec.EncodeString(codec.Wide, s)
	enc := codec.Transcode(wide, codec.Wide, w)
	*n = uint32(len(enc) - w.UnitSize())
	if len(dst) < len(enc) {
		return types.StatusMoreData
	}
	copy(dst, enc)
	return types.StatusSuccess
}

// DeleteKey implements engine.Engine. A key with subkeys is refused with
// StatusAccessDenied, as the host does.
func (e *Engine) DeleteKey(h engine.Handle, subkey string, _ types.Access) types.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, _, st := e.resolve(h)
	if st != types.StatusSuccess {
		return st
	}
	if subkey == "" {
		return types.StatusInvalidParameter
	}
	parts, st := splitPath(subkey)
	if st != types.StatusSuccess {
		return st
	}
	target, ok := walk(n, parts)
	if !ok {
		return types.StatusFileNotFound
	}
	if target.subkeys.Len() > 0 {
		return types.StatusAccessDenied
	}
	e.unlink(target)
	return types.StatusSuccess
}

// DeleteTree implements engine.Engine.
func (e *Engine) DeleteTree(h engine.Handle, subkey string) types.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, granted, st := e.resolve(h)
	if st != types.StatusSuccess {
		return st
	}
	if !granted.Has(types.KEY_ENUMERATE_SUB_KEYS | types.KEY_QUERY_VALUE) {
		return types.StatusAccessDenied
	}
	if subkey == "" {
		n.subkeys.Ascend(func(c *node) bool {
			c.markDeleted()
			return true
		})
		n.subkeys.Clear(false)
		n.values.Clear(false)
		n.lastWrite = e.now()
		return types.StatusSuccess
	}
	parts, st := splitPath(subkey)
	if st != types.StatusSuccess {
		return st
	}
	target, ok := walk(n, parts)
	if !ok {
		return types.StatusFileNotFound
	}
	e.unlink(target)
	return types.StatusSuccess
}

// unlink removes n from its parent and invalidates handles below it.
func (e *Engine) unlink(n *node) {
	if n.parent == nil {
		return
	}
	n.parent.subkeys.Delete(n)
	n.parent.lastWrite = e.now()
	n.markDeleted()
}
