package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)
	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// EnsureParentDir creates the directory holding filePath when it is missing.
// A bare file name (current directory) needs nothing.
func EnsureParentDir(filePath string) failure.ClassifiedError {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	return EnsureDir(dir)
}

// Exists reports whether something is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
