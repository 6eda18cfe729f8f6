// Package engine defines the primitives regkit needs from a registry engine.
//
// The shapes mirror the Win32 registry API: every primitive returns a
// types.Status instead of an error, variable-length results are written into
// caller-supplied buffers, and a too-small buffer is reported with
// types.StatusMoreData together with the exact size required. Translating
// statuses into errors is the caller's job.
//
// Implementations:
//   - internal/engine/winreg: the host registry (Windows only).
//   - internal/engine/memreg: an in-process engine with the same semantics.
package engine

import (
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/pkg/types"
)

// Handle is an opaque reference to an open key inside an engine.
type Handle uintptr

// Predefined root handles. The values are the Windows HKEY constants.
const (
	HKEY_CLASSES_ROOT     Handle = 0x80000000
	HKEY_CURRENT_USER     Handle = 0x80000001
	HKEY_LOCAL_MACHINE    Handle = 0x80000002
	HKEY_USERS            Handle = 0x80000003
	HKEY_PERFORMANCE_DATA Handle = 0x80000004
	HKEY_CURRENT_CONFIG   Handle = 0x80000005
	HKEY_DYN_DATA         Handle = 0x80000006
)

// RootHandle returns the predefined handle for a root name.
func RootHandle(r types.Root) (Handle, bool) {
	for i, root := range types.Roots {
		if root == r {
			return HKEY_CLASSES_ROOT + Handle(i), true
		}
	}
	return 0, false
}

// IsPredefined reports whether h is one of the predefined root handles.
func IsPredefined(h Handle) bool {
	return h >= HKEY_CLASSES_ROOT && h <= HKEY_DYN_DATA
}

// Disposition tells whether CreateKey made a new key or opened an existing one.
type Disposition uint32

const (
	CreatedNewKey     Disposition = 1
	OpenedExistingKey Disposition = 2
)

// GetFlags restrict and modify GetValue, as RegGetValue's dwFlags do.
type GetFlags uint32

const (
	RRF_RT_REG_NONE      GetFlags = 0x00000001
	RRF_RT_REG_SZ        GetFlags = 0x00000002
	RRF_RT_REG_EXPAND_SZ GetFlags = 0x00000004
	RRF_RT_REG_BINARY    GetFlags = 0x00000008
	RRF_RT_REG_DWORD     GetFlags = 0x00000010
	RRF_RT_REG_MULTI_SZ  GetFlags = 0x00000020
	RRF_RT_REG_QWORD     GetFlags = 0x00000040
	RRF_RT_ANY           GetFlags = 0x0000FFFF
	RRF_NOEXPAND         GetFlags = 0x10000000
)

// RestrictFor returns the RRF_RT_* bit accepting values of kind t. Kinds
// without a dedicated bit only pass RRF_RT_ANY.
func RestrictFor(t types.RegType) GetFlags {
	switch t {
	case types.REG_NONE:
		return RRF_RT_REG_NONE
	case types.REG_SZ:
		return RRF_RT_REG_SZ
	case types.REG_EXPAND_SZ:
		return RRF_RT_REG_EXPAND_SZ
	case types.REG_BINARY:
		return RRF_RT_REG_BINARY
	case types.REG_DWORD:
		return RRF_RT_REG_DWORD
	case types.REG_MULTI_SZ:
		return RRF_RT_REG_MULTI_SZ
	case types.REG_QWORD:
		return RRF_RT_REG_QWORD
	default:
		return RRF_RT_ANY
	}
}

// Accepts reports whether a value of kind t passes the RRF_RT_* restriction.
func (f GetFlags) Accepts(t types.RegType) bool {
	if f&RRF_RT_ANY == RRF_RT_ANY {
		return true
	}
	bit := RestrictFor(t)
	return bit != RRF_RT_ANY && f&bit != 0
}

// Engine is the set of registry primitives. Widths select between the
// wide and narrow entry points; name buffers and string value data are
// encoded in that width.
//
// Implementations must be safe for concurrent calls on independent handles.
type Engine interface {
	// OpenKey opens subkey below parent. An empty subkey opens a new handle
	// to parent itself.
	OpenKey(parent Handle, subkey string, access types.Access) (Handle, types.Status)

	// CreateKey creates subkey (and missing intermediate keys) below parent,
	// or opens it when it exists; the disposition tells which happened.
	CreateKey(parent Handle, subkey string, access types.Access) (Handle, Disposition, types.Status)

	// OpenCurrentUser opens the root of the user the calling thread acts for.
	OpenCurrentUser(access types.Access) (Handle, types.Status)

	// CloseKey releases h. Closing a predefined handle is a no-op.
	CloseKey(h Handle) types.Status

	// QueryInfoKey returns aggregate metadata of h.
	QueryInfoKey(h Handle) (types.KeyInfo, types.Status)

	// EnumKey writes the name of the index-th subkey into name, without a
	// terminator, and stores the byte count in *nameLen. The buffer must
	// also have room for one terminator unit. StatusNoMoreItems ends the
	// enumeration.
	EnumKey(h Handle, index uint32, w codec.Width, name []byte, nameLen *uint32) types.Status

	// EnumValue is EnumKey for value names.
	EnumValue(h Handle, index uint32, w codec.Width, name []byte, nameLen *uint32) types.Status

	// GetValue copies the data of value name into data and stores the byte
	// count in *size and the stored kind in *kind. When data is too small it
	// returns StatusMoreData with the required size in *size. Values whose
	// kind is not accepted by flags fail with StatusUnsupportedType.
	GetValue(h Handle, name string, flags GetFlags, w codec.Width, kind *types.RegType, data []byte, size *uint32) types.Status

	// SetValue stores data under name with the given kind.
	SetValue(h Handle, name string, kind types.RegType, w codec.Width, data []byte) types.Status

	// DeleteValue removes value name from h.
	DeleteValue(h Handle, name string) types.Status

	// DeleteKey removes a childless subkey and its values. access carries
	// the registry view flags (KEY_WOW64_*).
	DeleteKey(h Handle, subkey string, access types.Access) types.Status

	// DeleteTree removes subkey and everything below it. An empty subkey
	// removes every subkey and value of h but keeps h itself.
	DeleteTree(h Handle, subkey string) types.Status

	// ExpandEnvironmentStrings writes src with %VAR% references substituted
	// into dst, terminator included, and returns the byte count required.
	// When dst is too small it returns StatusMoreData and the required size.
	ExpandEnvironmentStrings(src string, w codec.Width, dst []byte) (uint32, types.Status)

	// FormatMessage returns the host's description of st, or false when the
	// host has none.
	FormatMessage(st types.Status) (string, bool)
}
