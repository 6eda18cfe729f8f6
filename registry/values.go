package registry

import (
	"fmt"

	"github.com/joshuapare/regkit/internal/buf"
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

// SetValue stores data under name as kind, unmodified.
func (k *Key) SetValue(name string, kind types.RegType, data []byte) error {
	h, err := k.handle()
	if err != nil {
		return err
	}
	st := k.reg.eng.SetValue(h, name, kind, k.reg.width, data)
	if err := k.reg.translate("RegSetValueEx", st); err != nil {
		return fmt.Errorf("set %s\\%s: %w", k.path, name, err)
	}
	return nil
}

// SetString stores s as REG_SZ.
func (k *Key) SetString(name, s string) error {
	return k.setText(name, types.REG_SZ, s)
}

// SetExpandString stores s as REG_EXPAND_SZ. References are kept as written.
func (k *Key) SetExpandString(name, s string) error {
	return k.setText(name, types.REG_EXPAND_SZ, s)
}

func (k *Key) setText(name string, kind types.RegType, s string) error {
	data, err := codec.EncodeString(k.reg.width, s)
	if err != nil {
		return fmt.Errorf("set %s\\%s: %w", k.path, name, err)
	}
	return k.SetValue(name, kind, data)
}

// SetStrings stores ss as REG_MULTI_SZ. Empty strings are dropped.
func (k *Key) SetStrings(name string, ss []string) error {
	data, err := codec.EncodeMultiString(k.reg.width, ss)
	if err != nil {
		return fmt.Errorf("set %s\\%s: %w", k.path, name, err)
	}
	return k.SetValue(name, types.REG_MULTI_SZ, data)
}

// SetDWORD stores v as REG_DWORD.
func (k *Key) SetDWORD(name string, v uint32) error {
	return k.SetValue(name, types.REG_DWORD, buf.DWORD(v))
}

// SetQWORD stores v as REG_QWORD.
func (k *Key) SetQWORD(name string, v uint64) error {
	return k.SetValue(name, types.REG_QWORD, buf.QWORD(v))
}

// SetBinary stores data as REG_BINARY.
func (k *Key) SetBinary(name string, data []byte) error {
	return k.SetValue(name, types.REG_BINARY, data)
}

// GetValue returns the kind and a copy of the data of any value. Expandable
// strings are returned unexpanded.
func (k *Key) GetValue(name string) (types.RegType, []byte, error) {
	var (
		kind types.RegType
		out  []byte
	)
	err := k.readValue(name, engine.RRF_RT_ANY|engine.RRF_NOEXPAND, func(t types.RegType, data []byte) error {
		kind = t
		out = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("get %s\\%s: %w", k.path, name, err)
	}
	return kind, out, nil
}

// GetString reads a REG_SZ value.
func (k *Key) GetString(name string) (string, error) {
	return k.getText(name, engine.RRF_RT_REG_SZ)
}

// GetExpandString reads a REG_EXPAND_SZ value without expanding it; see
// Registry.ExpandEnvString.
func (k *Key) GetExpandString(name string) (string, error) {
	return k.getText(name, engine.RRF_RT_REG_EXPAND_SZ|engine.RRF_NOEXPAND)
}

func (k *Key) getText(name string, flags engine.GetFlags) (string, error) {
	var s string
	err := k.readValue(name, flags, func(_ types.RegType, data []byte) error {
		s = codec.DecodeString(k.reg.width, data)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("get %s\\%s: %w", k.path, name, err)
	}
	return s, nil
}

// GetStrings reads a REG_MULTI_SZ value.
func (k *Key) GetStrings(name string) ([]string, error) {
	var ss []string
	err := k.readValue(name, engine.RRF_RT_REG_MULTI_SZ, func(_ types.RegType, data []byte) error {
		ss = codec.DecodeMultiString(k.reg.width, data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get %s\\%s: %w", k.path, name, err)
	}
	return ss, nil
}

// GetDWORD reads a REG_DWORD value.
func (k *Key) GetDWORD(name string) (uint32, error) {
	var v uint32
	err := k.readValue(name, engine.RRF_RT_REG_DWORD, func(_ types.RegType, data []byte) error {
		if len(data) != 4 {
			return fmt.Errorf("%w: REG_DWORD of %d bytes", types.ErrTypeMismatch, len(data))
		}
		v = buf.U32LE(data)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("get %s\\%s: %w", k.path, name, err)
	}
	return v, nil
}

// GetQWORD reads a REG_QWORD value.
func (k *Key) GetQWORD(name string) (uint64, error) {
	var v uint64
	err := k.readValue(name, engine.RRF_RT_REG_QWORD, func(_ types.RegType, data []byte) error {
		if len(data) != 8 {
			return fmt.Errorf("%w: REG_QWORD of %d bytes", types.ErrTypeMismatch, len(data))
		}
		v = buf.U64LE(data)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("get %s\\%s: %w", k.path, name, err)
	}
	return v, nil
}

// GetBinary reads a REG_BINARY value.
func (k *Key) GetBinary(name string) ([]byte, error) {
	var out []byte
	err := k.readValue(name, engine.RRF_RT_REG_BINARY, func(_ types.RegType, data []byte) error {
		out = append(make([]byte, 0, len(data)), data...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get %s\\%s: %w", k.path, name, err)
	}
	return out, nil
}

// DeleteValue removes value name.
func (k *Key) DeleteValue(name string) error {
	h, err := k.handle()
	if err != nil {
		return err
	}
	if err := k.reg.translate("RegDeleteValue", k.reg.eng.DeleteValue(h, name)); err != nil {
		return fmt.Errorf("delete %s\\%s: %w", k.path, name, err)
	}
	return nil
}
