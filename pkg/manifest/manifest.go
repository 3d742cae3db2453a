package manifest

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/conda-which/pkg/errors"
	"github.com/arthur-debert/conda-which/pkg/types"
)

const (
	// MetaDirName is the per-environment package metadata directory
	MetaDirName = "conda-meta"

	// Suffix marks a package manifest inside MetaDirName
	Suffix = ".json"

	// HistoryFile is conda's transaction log inside MetaDirName
	HistoryFile = "history"
)

// Manifest is the part of a package's conda-meta record that conda-which uses
type Manifest struct {
	Files []string
}

// record is the on-disk shape. Entries of files that are not strings can
// never match a path and are dropped.
type record struct {
	Files []interface{} `json:"files"`
}

// Contains reports whether relPath is listed verbatim in the manifest
func (m *Manifest) Contains(relPath string) bool {
	for _, f := range m.Files {
		if f == relPath {
			return true
		}
	}
	return false
}

// Read loads one manifest. Content that is not a JSON document of the
// expected shape yields a MANIFEST_PARSE error carrying the file path.
func Read(fsys types.FS, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "couldn't read conda metadata file: %s", path).
			WithDetail(errors.DetailFile, path)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "couldn't parse conda metadata file: %s", path).
			WithDetail(errors.DetailFile, path)
	}

	m := &Manifest{Files: make([]string, 0, len(rec.Files))}
	for _, f := range rec.Files {
		if s, ok := f.(string); ok {
			m.Files = append(m.Files, s)
		}
	}
	return m, nil
}

// PackageID derives the package identifier from a manifest file name by
// removing exactly one trailing ".json".
func PackageID(fileName string) string {
	return strings.TrimSuffix(fileName, Suffix)
}

// IsManifestName reports whether a conda-meta entry name looks like a manifest
func IsManifestName(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// IsMetadataFile reports whether path is conda bookkeeping: a file directly
// inside a conda-meta directory named *.json or history.
func IsMetadataFile(path string) bool {
	if filepath.Base(filepath.Dir(path)) != MetaDirName {
		return false
	}
	name := filepath.Base(path)
	return IsManifestName(name) || name == HistoryFile
}

// MetaDir returns the conda-meta directory of an environment
func MetaDir(prefix string) string {
	return filepath.Join(prefix, MetaDirName)
}
