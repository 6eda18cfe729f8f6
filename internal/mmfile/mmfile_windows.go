//go:build windows

package mmfile

import (
	"os"
)

// Map reads the file at path. Windows keeps mapped files locked, which
// would block rewriting an imported .reg file, so it is read instead.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
