// Package schemafile reads and writes schema text files. Writes are
// all-or-nothing: output lands in a temp file first and is renamed into
// place, so a failed run never leaves a truncated schema behind.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Read returns the schema file contents as text.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file %q: %w", path, err)
	}
	return string(data), nil
}

// WriteAtomic writes text to path via a temp file in the same directory.
func WriteAtomic(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %q: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place at %q: %w", path, err)
	}
	return nil
}
