//go:build windows

// Package winreg is the host registry engine. Wide calls go to the W
// procedures of advapi32, narrow calls to the A procedures.
package winreg

import (
	"errors"
	"runtime"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

var (
	advapi32 = windows.NewLazySystemDLL("advapi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegGetValueW    = advapi32.NewProc("RegGetValueW")
	procRegGetValueA    = advapi32.NewProc("RegGetValueA")
	procRegSetValueExW  = advapi32.NewProc("RegSetValueExW")
	procRegSetValueExA  = advapi32.NewProc("RegSetValueExA")
	procRegEnumValueW   = advapi32.NewProc("RegEnumValueW")
	procRegEnumValueA   = advapi32.NewProc("RegEnumValueA")
	procRegEnumKeyExA   = advapi32.NewProc("RegEnumKeyExA")
	procRegDeleteValueW = advapi32.NewProc("RegDeleteValueW")
	procRegDeleteKeyExW = advapi32.NewProc("RegDeleteKeyExW")
	procRegDeleteTreeW  = advapi32.NewProc("RegDeleteTreeW")
	procRegOpenCurrent  = advapi32.NewProc("RegOpenCurrentUser")

	procExpandEnvironmentStringsA = kernel32.NewProc("ExpandEnvironmentStringsA")
)

// Engine talks to the registry of the running host. It holds no state.
type Engine struct{}

// New returns the host engine.
func New() *Engine { return &Engine{} }

var _ engine.Engine = (*Engine)(nil)

// status converts an error from x/sys into the status it carries.
func status(err error) types.Status {
	if err == nil {
		return types.StatusSuccess
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return types.Status(errno)
	}
	return types.StatusInvalidParameter
}

// name returns a terminated name in width w, or nil for "" when optional.
func name(w codec.Width, s string, optional bool) (uintptr, []byte, types.Status) {
	if s == "" && optional {
		return 0, nil, types.StatusSuccess
	}
	if strings.IndexByte(s, 0) >= 0 {
		return 0, nil, types.StatusInvalidParameter
	}
	b, err := codec.EncodeString(w, s)
	if err != nil {
		return 0, nil, types.StatusInvalidParameter
	}
	return uintptr(unsafe.Pointer(&b[0])), b, types.StatusSuccess
}

func pick(w codec.Width, wide, narrow *windows.LazyProc) *windows.LazyProc {
	if w == codec.Narrow {
		return narrow
	}
	return wide
}

func bufPtr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// OpenKey implements engine.Engine.
func (*Engine) OpenKey(parent engine.Handle, subkey string, access types.Access) (engine.Handle, types.Status) {
	p, err := windows.UTF16PtrFromString(subkey)
	if err != nil {
		return 0, types.StatusInvalidParameter
	}
	var out windows.Handle
	err = windows.RegOpenKeyEx(windows.Handle(parent), p, 0, uint32(access), &out)
	return engine.Handle(out), status(err)
}

// CreateKey implements engine.Engine.
func (*Engine) CreateKey(parent engine.Handle, subkey string, access types.Access) (engine.Handle, engine.Disposition, types.Status) {
	k, existed, err := registry.CreateKey(registry.Key(parent), subkey, uint32(access))
	if err != nil {
		return 0, 0, status(err)
	}
	disposition := engine.CreatedNewKey
	if existed {
		disposition = engine.OpenedExistingKey
	}
	return engine.Handle(k), disposition, types.StatusSuccess
}

// OpenCurrentUser implements engine.Engine.
func (*Engine) OpenCurrentUser(access types.Access) (engine.Handle, types.Status) {
	var out windows.Handle
	r1, _, _ := procRegOpenCurrent.Call(uintptr(access), uintptr(unsafe.Pointer(&out)))
	return engine.Handle(out), types.Status(r1)
}

// CloseKey implements engine.Engine.
func (*Engine) CloseKey(h engine.Handle) types.Status {
	if engine.IsPredefined(h) {
		return types.StatusSuccess
	}
	return status(windows.RegCloseKey(windows.Handle(h)))
}

// QueryInfoKey implements engine.Engine.
func (*Engine) QueryInfoKey(h engine.Handle) (types.KeyInfo, types.Status) {
	var (
		info types.KeyInfo
		ft   windows.Filetime
	)
	err := windows.RegQueryInfoKey(windows.Handle(h), nil, nil, nil,
		&info.SubkeyCount, &info.MaxSubkeyLen, nil,
		&info.ValueCount, &info.MaxValueNameLen, &info.MaxValueLen,
		nil, &ft)
	if err != nil {
		return types.KeyInfo{}, status(err)
	}
	info.LastWrite = time.Unix(0, ft.Nanoseconds()).UTC()
	return info, types.StatusSuccess
}

// EnumKey implements engine.Engine.
func (*Engine) EnumKey(h engine.Handle, index uint32, w codec.Width, nameBuf []byte, nameLen *uint32) types.Status {
	units := uint32(len(nameBuf) / w.UnitSize())
	if w == codec.Narrow {
		r1, _, _ := procRegEnumKeyExA.Call(uintptr(h), uintptr(index), bufPtr(nameBuf),
			uintptr(unsafe.Pointer(&units)), 0, 0, 0, 0)
		*nameLen = units
		return types.Status(r1)
	}
	tmp := make([]uint16, max(units, 1))
	err := windows.RegEnumKeyEx(windows.Handle(h), index, &tmp[0], &units, nil, nil, nil, nil)
	if err != nil {
		return status(err)
	}
	copyUnits(nameBuf, tmp[:units])
	*nameLen = units * 2
	return types.StatusSuccess
}

// EnumValue implements engine.Engine.
func (*Engine) EnumValue(h engine.Handle, index uint32, w codec.Width, nameBuf []byte, nameLen *uint32) types.Status {
	units := uint32(len(nameBuf) / w.UnitSize())
	r1, _, _ := pick(w, procRegEnumValueW, procRegEnumValueA).Call(uintptr(h), uintptr(index),
		bufPtr(nameBuf), uintptr(unsafe.Pointer(&units)), 0, 0, 0, 0)
	*nameLen = units * uint32(w.UnitSize())
	return types.Status(r1)
}

func copyUnits(dst []byte, src []uint16) {
	for i, u := range src {
		dst[2*i] = byte(u)
		dst[2*i+1] = byte(u >> 8)
	}
}

// GetValue implements engine.Engine through RegGetValue.
func (*Engine) GetValue(h engine.Handle, valueName string, flags engine.GetFlags, w codec.Width, kind *types.RegType, data []byte, size *uint32) types.Status {
	p, keep, st := name(w, valueName, false)
	if st != types.StatusSuccess {
		return st
	}
	*size = uint32(len(data))
	r1, _, _ := pick(w, procRegGetValueW, procRegGetValueA).Call(uintptr(h), 0, p, uintptr(flags),
		uintptr(unsafe.Pointer(kind)), bufPtr(data), uintptr(unsafe.Pointer(size)))
	runtime.KeepAlive(keep)
	return types.Status(r1)
}

// SetValue implements engine.Engine.
func (*Engine) SetValue(h engine.Handle, valueName string, kind types.RegType, w codec.Width, data []byte) types.Status {
	p, keep, st := name(w, valueName, false)
	if st != types.StatusSuccess {
		return st
	}
	r1, _, _ := pick(w, procRegSetValueExW, procRegSetValueExA).Call(uintptr(h), p, 0,
		uintptr(kind), bufPtr(data), uintptr(len(data)))
	runtime.KeepAlive(keep)
	return types.Status(r1)
}

// DeleteValue implements engine.Engine.
func (*Engine) DeleteValue(h engine.Handle, valueName string) types.Status {
	p, keep, st := name(codec.Wide, valueName, false)
	if st != types.StatusSuccess {
		return st
	}
	r1, _, _ := procRegDeleteValueW.Call(uintptr(h), p)
	runtime.KeepAlive(keep)
	return types.Status(r1)
}

// DeleteKey implements engine.Engine. Only the KEY_WOW64_* bits of access
// are passed on.
func (*Engine) DeleteKey(h engine.Handle, subkey string, access types.Access) types.Status {
	p, keep, st := name(codec.Wide, subkey, false)
	if st != types.StatusSuccess {
		return st
	}
	view := access & (types.KEY_WOW64_32KEY | types.KEY_WOW64_64KEY)
	r1, _, _ := procRegDeleteKeyExW.Call(uintptr(h), p, uintptr(view), 0)
	runtime.KeepAlive(keep)
	return types.Status(r1)
}

// DeleteTree implements engine.Engine.
func (*Engine) DeleteTree(h engine.Handle, subkey string) types.Status {
	p, keep, st := name(codec.Wide, subkey, true)
	if st != types.StatusSuccess {
		return st
	}
	r1, _, _ := procRegDeleteTreeW.Call(uintptr(h), p)
	runtime.KeepAlive(keep)
	return types.Status(r1)
}

// ExpandEnvironmentStrings implements engine.Engine.
func (*Engine) ExpandEnvironmentStrings(src string, w codec.Width, dst []byte) (uint32, types.Status) {
	unit := uint32(w.UnitSize())
	capacity := uint32(len(dst)) / unit

	var need uint32
	if w == codec.Narrow {
		p, keep, st := name(w, src, false)
		if st != types.StatusSuccess {
			return 0, st
		}
		r1, _, err := procExpandEnvironmentStringsA.Call(p, bufPtr(dst), uintptr(capacity))
		runtime.KeepAlive(keep)
		if r1 == 0 {
			return 0, status(err)
		}
		need = uint32(r1)
	} else {
		p, err := windows.UTF16PtrFromString(src)
		if err != nil {
			return 0, types.StatusInvalidParameter
		}
		tmp := make([]uint16, max(capacity, 1))
		n, err := windows.ExpandEnvironmentStrings(p, &tmp[0], capacity)
		if n == 0 {
			return 0, status(err)
		}
		need = n
		if n <= capacity {
			copyUnits(dst, tmp[:n])
		}
	}
	if need > capacity {
		return need * unit, types.StatusMoreData
	}
	return need * unit, types.StatusSuccess
}

// FormatMessage implements engine.Engine.
func (*Engine) FormatMessage(st types.Status) (string, bool) {
	buf := make([]uint16, 512)
	n, err := windows.FormatMessage(
		windows.FORMAT_MESSAGE_FROM_SYSTEM|windows.FORMAT_MESSAGE_IGNORE_INSERTS,
		0, uint32(st), 0, buf, nil)
	if err != nil || n == 0 {
		return "", false
	}
	return strings.TrimRight(windows.UTF16ToString(buf[:n]), "\r\n"), true
}
