package types

// ============================================================================
// Windows Registry Limits Constants
// ============================================================================
// These constants define the official limits imposed by Windows Registry.
// Lengths are measured in characters, not bytes.

const (
	// WindowsMaxKeyNameLen is the hard limit for a single key name component.
	WindowsMaxKeyNameLen = 255

	// WindowsMaxValueNameLen is the hard limit for registry value names.
	WindowsMaxValueNameLen = 16383

	// WindowsMaxExpandLen bounds the result of environment string expansion
	// (32K characters including the terminator).
	WindowsMaxExpandLen = 32 * 1024
)
