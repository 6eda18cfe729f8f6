// Package writer writes exported .reg files to disk.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter writes to a filesystem path atomically, so a failed export
// never leaves a truncated .reg file behind.
type FileWriter struct {
	Path string
	Perm os.FileMode // 0 means 0o644
}

// Write replaces the file at w.Path with data via temp file + rename.
func (w *FileWriter) Write(data []byte) error {
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".regkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	// CreateTemp makes the file 0600.
	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}
