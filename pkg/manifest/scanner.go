package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/conda-which/pkg/errors"
	"github.com/arthur-debert/conda-which/pkg/logging"
	"github.com/arthur-debert/conda-which/pkg/types"
)

// Scanner finds the packages of an environment that claim a file
type Scanner struct {
	fs types.FS
}

// NewScanner creates a Scanner reading through fsys
func NewScanner(fsys types.FS) *Scanner {
	return &Scanner{fs: fsys}
}

// FindOwnerPackages returns the identifiers of every package in prefix whose
// manifest lists relPath, sorted. An environment without a conda-meta
// directory has no packages. The first malformed manifest aborts the scan.
func (s *Scanner) FindOwnerPackages(relPath, prefix string) ([]string, error) {
	logger := logging.GetLogger("manifest.scanner")
	done := logging.LogOperationStart(logger, "find_owner_packages")
	defer done()

	metaDir := MetaDir(prefix)
	entries, err := s.fs.ReadDir(metaDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("metaDir", metaDir).Msg("Environment has no conda-meta directory")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrMetaDirRead, "couldn't list %s", metaDir).
			WithDetail(errors.DetailPath, metaDir)
	}

	var owners []string
	scanned := 0
	for _, entry := range entries {
		if entry.IsDir() || !IsManifestName(entry.Name()) {
			continue
		}
		scanned++

		m, err := Read(s.fs, filepath.Join(metaDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if m.Contains(relPath) {
			owners = append(owners, PackageID(entry.Name()))
		}
	}
	sort.Strings(owners)

	logger.Debug().
		Str("prefix", prefix).
		Str("relPath", relPath).
		Int("manifests", scanned).
		Strs("owners", owners).
		Msg("Scanned package manifests")

	return owners, nil
}

// ListPackages returns the identifiers of every package installed in prefix, sorted
func (s *Scanner) ListPackages(prefix string) ([]string, error) {
	entries, err := s.fs.ReadDir(MetaDir(prefix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrMetaDirRead, "couldn't list %s", MetaDir(prefix)).
			WithDetail(errors.DetailPath, MetaDir(prefix))
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && IsManifestName(entry.Name()) {
			ids = append(ids, PackageID(entry.Name()))
		}
	}
	sort.Strings(ids)
	return ids, nil
}
