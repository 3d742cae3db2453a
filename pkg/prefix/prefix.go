// Package prefix maps absolute paths to the conda environment that contains them.
package prefix

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/conda-which/pkg/errors"
)

// Set is a membership test over known environment roots
type Set interface {
	Contains(path string) bool
}

// MatchLongestPrefix walks from path up through its parents and returns the
// first one that is a known environment. The walk stops at the filesystem
// root, which is never a match, so nested environments resolve to the
// innermost one.
func MatchLongestPrefix(path string, envs Set) (string, bool) {
	path = filepath.Clean(path)
	for !isRoot(path) {
		if envs.Contains(path) {
			return path, true
		}
		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}
	return "", false
}

// StripPrefix returns path relative to prefix, without leading separators.
// A path outside prefix is a caller bug and reported as PREFIX_MISMATCH.
func StripPrefix(path, prefix string) (string, error) {
	if !strings.HasPrefix(path, prefix) {
		return "", errors.Newf(errors.ErrPrefixMismatch, "path %s does not start with prefix %s", path, prefix).
			WithDetail(errors.DetailPath, path).
			WithDetail(errors.DetailPrefix, prefix)
	}
	return strings.TrimLeft(path[len(prefix):], string(filepath.Separator)), nil
}

func isRoot(path string) bool {
	return path == string(filepath.Separator) || path == "." || path == filepath.VolumeName(path)+string(filepath.Separator)
}
