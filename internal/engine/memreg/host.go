package memreg

import (
	"strings"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/pkg/types"
)

// ExpandEnvironmentStrings implements engine.Engine. Undefined references
// are left in place. Results longer than types.WindowsMaxExpandLen
// characters fail with StatusInsufficientBuffer.
func (e *Engine) ExpandEnvironmentStrings(src string, w codec.Width, dst []byte) (uint32, types.Status) {
	wide, _ := codec.EncodeString(codec.Wide, e.expand(src))
	out := codec.Transcode(wide, codec.Wide, w)
	if len(out)/w.UnitSize() > types.WindowsMaxExpandLen {
		return 0, types.StatusInsufficientBuffer
	}
	if len(dst) < len(out) {
		return uint32(len(out)), types.StatusMoreData
	}
	copy(dst, out)
	return uint32(len(out)), types.StatusSuccess
}

// expand substitutes %NAME% references that the environment defines.
func (e *Engine) expand(s string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(s, '%')
		if i < 0 {
			break
		}
		j := strings.IndexByte(s[i+1:], '%')
		if j < 0 {
			break
		}
		j += i + 1
		name := s[i+1 : j]
		if v, ok := e.lookupEnv(name); ok && name != "" {
			b.WriteString(s[:i])
			b.WriteString(v)
			s = s[j+1:]
			continue
		}
		// keep the opening '%' and rescan from the closing one
		b.WriteString(s[:j])
		s = s[j:]
	}
	b.WriteString(s)
	return b.String()
}

var messages = map[types.Status]string{
	types.StatusSuccess:            "The operation completed successfully.",
	types.StatusFileNotFound:       "The system cannot find the file specified.",
	types.StatusAccessDenied:       "Access is denied.",
	types.StatusInvalidHandle:      "The handle is invalid.",
	types.StatusNotEnoughMemory:    "Not enough memory resources are available to process this command.",
	types.StatusInvalidData:        "The data is invalid.",
	types.StatusInvalidParameter:   "The parameter is incorrect.",
	types.StatusInsufficientBuffer: "The data area passed to a system call is too small.",
	types.StatusBadPathname:        "The specified path is invalid.",
	types.StatusMoreData:           "More data is available.",
	types.StatusNoMoreItems:        "No more data is available.",
	types.StatusBadKey:             "The configuration registry key is invalid.",
	types.StatusKeyDeleted:         "Illegal operation attempted on a registry key that has been marked for deletion.",
	types.StatusUnsupportedType:    "Data of this type is not supported.",
}

// FormatMessage implements engine.Engine.
func (e *Engine) FormatMessage(st types.Status) (string, bool) {
	msg, ok := messages[st]
	return msg, ok
}
