package types

import (
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindPath   ErrKind = iota // path has no root separator
	ErrKindRoot                  // root name is not a predefined key
	ErrKindExists                // strict create found an existing key
	ErrKindNative                // the registry engine reported a failure status
	ErrKindType                  // stored data does not have the shape of its kind
	ErrKindState                 // invalid operation for current state (e.g., closed key)
	ErrKindEncoding              // text not representable in the active width
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels below work with
// errors.Is regardless of the message detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidPath indicates a path without a backslash after the root name.
	ErrInvalidPath = &Error{Kind: ErrKindPath, Msg: "invalid registry path"}
	// ErrUnsupportedRoot indicates a root name outside the predefined set.
	ErrUnsupportedRoot = &Error{Kind: ErrKindRoot, Msg: "unsupported registry root"}
	// ErrKeyExists indicates a strict create found the key already present.
	ErrKeyExists = &Error{Kind: ErrKindExists, Msg: "registry key already exists"}
	// ErrNative matches every *NativeError.
	ErrNative = &Error{Kind: ErrKindNative, Msg: "registry operation failed"}
	// ErrTypeMismatch indicates value data that cannot be decoded as its kind.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "registry value has unexpected shape"}
	// ErrClosed indicates use of a key after Close.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "registry key is closed"}
	// ErrUnrepresentable indicates text that the narrow code page cannot hold.
	ErrUnrepresentable = &Error{Kind: ErrKindEncoding, Msg: "text not representable in narrow code page"}
)

// NativeError carries a non-success status reported by the registry engine
// together with the message the host resolved for it.
type NativeError struct {
	Op     string // engine primitive that failed, e.g. "RegOpenKeyEx"
	Status Status
	Msg    string // host message, or UnknownErrorMessage
}

// UnknownErrorMessage is used when the host cannot describe a status.
const UnknownErrorMessage = "unknown error"

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Msg, uint32(e.Status))
}

// Unwrap exposes the status so errors.Is(err, StatusFileNotFound) works.
func (e *NativeError) Unwrap() error { return e.Status }

// Is reports whether target is ErrNative.
func (e *NativeError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == ErrKindNative
}

// -----------------------------------------------------------------------------
// Native status codes
// -----------------------------------------------------------------------------

// Status is the integer every engine primitive returns. The numbers are the
// Win32 error codes the registry API uses.
type Status uint32

const (
	StatusSuccess            Status = 0
	StatusFileNotFound       Status = 2
	StatusAccessDenied       Status = 5
	StatusInvalidHandle      Status = 6
	StatusNotEnoughMemory    Status = 8
	StatusInvalidData        Status = 13
	StatusInvalidParameter   Status = 87
	StatusInsufficientBuffer Status = 122
	StatusBadPathname        Status = 161
	StatusMoreData           Status = 234 // buffer too small; required size reported
	StatusNoMoreItems        Status = 259 // enumeration exhausted
	StatusBadKey             Status = 1010
	StatusKeyDeleted         Status = 1018
	StatusUnsupportedType    Status = 1630
)

// Error makes Status usable as an errors.Is target.
func (s Status) Error() string {
	return fmt.Sprintf("registry status %d", uint32(s))
}

// -----------------------------------------------------------------------------
// Value kinds
// -----------------------------------------------------------------------------

// RegType enumerates Windows registry value types commonly encountered.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE                       RegType = 0
	REG_SZ                         RegType = 1
	REG_EXPAND_SZ                  RegType = 2
	REG_BINARY                     RegType = 3
	REG_DWORD                      RegType = 4
	REG_DWORD_LE                   RegType = 4 // alias for clarity
	REG_DWORD_BE                   RegType = 5
	REG_LINK                       RegType = 6
	REG_MULTI_SZ                   RegType = 7
	REG_RESOURCE_LIST              RegType = 8
	REG_FULL_RESOURCE_DESCRIPTOR   RegType = 9
	REG_RESOURCE_REQUIREMENTS_LIST RegType = 10
	REG_QWORD                      RegType = 11
)

// String implements the Stringer interface for RegType
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_RESOURCE_LIST:
		return "REG_RESOURCE_LIST"
	case REG_FULL_RESOURCE_DESCRIPTOR:
		return "REG_FULL_RESOURCE_DESCRIPTOR"
	case REG_RESOURCE_REQUIREMENTS_LIST:
		return "REG_RESOURCE_REQUIREMENTS_LIST"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
	}
}

// IsString reports whether values of this kind hold terminated text.
func (t RegType) IsString() bool {
	return t == REG_SZ || t == REG_EXPAND_SZ || t == REG_MULTI_SZ || t == REG_LINK
}

// -----------------------------------------------------------------------------
// Access rights
// -----------------------------------------------------------------------------

// Access is the rights bitmask a key is opened with. regkit never interprets
// it beyond defaulting the zero value; the engine enforces it.
type Access uint32

const (
	KEY_QUERY_VALUE        Access = 0x0001
	KEY_SET_VALUE          Access = 0x0002
	KEY_CREATE_SUB_KEY     Access = 0x0004
	KEY_ENUMERATE_SUB_KEYS Access = 0x0008
	KEY_NOTIFY             Access = 0x0010
	KEY_CREATE_LINK        Access = 0x0020
	KEY_WOW64_64KEY        Access = 0x0100
	KEY_WOW64_32KEY        Access = 0x0200
	DELETE                 Access = 0x00010000
	READ_CONTROL           Access = 0x00020000
	SYNCHRONIZE            Access = 0x00100000

	KEY_READ       = READ_CONTROL | KEY_QUERY_VALUE | KEY_ENUMERATE_SUB_KEYS | KEY_NOTIFY
	KEY_WRITE      = READ_CONTROL | KEY_SET_VALUE | KEY_CREATE_SUB_KEY
	KEY_ALL_ACCESS = 0x000F003F
)

// OrDefault returns KEY_READ for the zero value and a unchanged otherwise.
func (a Access) OrDefault() Access {
	if a == 0 {
		return KEY_READ
	}
	return a
}

// Has reports whether every bit of want is present.
func (a Access) Has(want Access) bool { return a&want == want }

// -----------------------------------------------------------------------------
// Predefined roots
// -----------------------------------------------------------------------------

// Root names one of the predefined top-level keys. Roots are never created
// or closed.
type Root string

const (
	RootClassesRoot     Root = "HKEY_CLASSES_ROOT"
	RootCurrentUser     Root = "HKEY_CURRENT_USER"
	RootLocalMachine    Root = "HKEY_LOCAL_MACHINE"
	RootUsers           Root = "HKEY_USERS"
	RootPerformanceData Root = "HKEY_PERFORMANCE_DATA"
	RootCurrentConfig   Root = "HKEY_CURRENT_CONFIG"
	RootDynData         Root = "HKEY_DYN_DATA"
)

// Roots lists the predefined roots in their Windows handle order.
var Roots = []Root{
	RootClassesRoot,
	RootCurrentUser,
	RootLocalMachine,
	RootUsers,
	RootPerformanceData,
	RootCurrentConfig,
	RootDynData,
}

// -----------------------------------------------------------------------------
// Key metadata
// -----------------------------------------------------------------------------

// KeyInfo is the aggregate metadata of one key, as the info query reports it.
// Name lengths are in characters without the terminator; MaxValueLen is bytes.
type KeyInfo struct {
	SubkeyCount     uint32
	MaxSubkeyLen    uint32
	ValueCount      uint32
	MaxValueNameLen uint32
	MaxValueLen     uint32
	LastWrite       time.Time
}
