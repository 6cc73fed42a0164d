package core

import (
	"os"
	"path/filepath"
)

// CreateFile creates a file at the specified path, along with any missing parent directories,
// & returns a file handle.
func CreateFile(relPath string) (*os.File, error) {
	absPath, err := filepath.Abs(relPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, err
	}

	return os.Create(absPath)
}

// FileExists checks if a file exists and is not a directory.
func FileExists(filename string) (bool, error) {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}
