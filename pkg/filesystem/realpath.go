package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// Realpath returns the absolute, symlink-free form of path. Every component
// must exist; a dangling link or a missing file is reported as an error.
//
// The path is not cleaned before resolution: a ".." after a symlink steps
// out of the link's target, not out of the directory holding the link.
func Realpath(path string) (string, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		path = strings.TrimSuffix(wd, string(filepath.Separator)) + string(filepath.Separator) + path
	}
	return filepath.EvalSymlinks(path)
}
