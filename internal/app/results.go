package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

// EnsureResultsDir creates path and its parents when missing. It is a no-op
// for an existing directory and fails for any other existing file.
func EnsureResultsDir(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return &ResultsDirError{Path: path, Err: err}
		}
		info, err = os.Stat(path)
	}
	if err != nil {
		return &ResultsDirError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return &ResultsDirError{Path: path, Err: ErrNotDirectory}
	}
	return nil
}

// ResultFilePath is where the pulled result file is expected locally.
func ResultFilePath(dir string) string {
	return filepath.Join(dir, domain.ResultFileName)
}

// ResultFileExists reports whether the pulled result file is present in dir.
func ResultFileExists(dir string) bool {
	info, err := os.Stat(ResultFilePath(dir))
	return err == nil && info.Mode().IsRegular()
}
