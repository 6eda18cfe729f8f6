package regtext

const (
	// ============================================================================
	// .reg File Format Tokens
	// ============================================================================

	// RegFileHeader is the required header line for .reg files version 5.00
	RegFileHeader = "Windows Registry Editor Version 5.00"

	// KeyOpenBracket marks the start of a registry key path
	KeyOpenBracket = "["

	// KeyCloseBracket marks the end of a registry key path
	KeyCloseBracket = "]"

	// DeleteKeyPrefix marks a key for deletion (e.g., [-HKEY_LOCAL_MACHINE\...])
	DeleteKeyPrefix = "-"

	// ValueAssignment separates value names from their data
	ValueAssignment = "="

	// DefaultValuePrefix marks the default (unnamed) value
	DefaultValuePrefix = "@="

	// CommentPrefix marks a comment line
	CommentPrefix = ";"

	// LineContinuation ends a hex line that continues on the next one
	LineContinuation = "\\"

	// ============================================================================
	// Quote and Escape Characters
	// ============================================================================

	Quote            = "\""
	Backslash        = "\\"
	EscapedQuote     = "\\\""
	EscapedBackslash = "\\\\"

	// CRLF is the line ending regedit writes
	CRLF = "\r\n"

	// CR is stripped from input lines
	CR = "\r"

	// ============================================================================
	// Value Type Prefixes
	// ============================================================================

	DWORDPrefix       = "dword:"
	HexPrefix         = "hex:"
	HexTypedPrefix    = "hex("
	HexExpandSZPrefix = "hex(2):"
	HexMultiSZPrefix  = "hex(7):"
	HexQWORDPrefix    = "hex(b):"

	// HexTypeFormat formats a typed hex prefix from the kind number
	HexTypeFormat = "hex(%x):"

	// DeleteValueToken marks a value for deletion
	DeleteValueToken = "-"

	// ============================================================================
	// Encoding Names
	// ============================================================================

	EncodingUTF8        = "UTF-8"
	EncodingUTF16LE     = "UTF-16LE"
	EncodingWindows1252 = "WINDOWS-1252"

	// ============================================================================
	// Hex Data Formatting
	// ============================================================================

	HexByteSeparator = ","
	HexByteFormat    = "%02x"
	DWORDHexFormat   = "%08x"
	DWORDHexLength   = 8

	// HexLineWidth is the column regedit wraps hex data at.
	HexLineWidth = 80

	// ============================================================================
	// Registry root abbreviations
	// ============================================================================

	HKEYLocalMachineShort  = "HKLM"
	HKEYClassesRootShort   = "HKCR"
	HKEYCurrentUserShort   = "HKCU"
	HKEYUsersShort         = "HKU"
	HKEYCurrentConfigShort = "HKCC"

	// ============================================================================
	// Scanner sizes
	// ============================================================================

	// ScannerInitialBufferSize is the initial buffer size for the .reg file scanner
	ScannerInitialBufferSize = 64 * 1024

	// ScannerMaxLineSize is the maximum line size for the .reg file scanner
	ScannerMaxLineSize = 1024 * 1024
)

var (
	// UTF16LEBOM is the byte order mark for UTF-16 little-endian
	UTF16LEBOM = []byte{0xFF, 0xFE}

	// UTF8BOM is the byte order mark for UTF-8
	UTF8BOM = []byte{0xEF, 0xBB, 0xBF}
)
