package registry

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/conda-which/pkg/errors"
	"github.com/arthur-debert/conda-which/pkg/filesystem"
	"github.com/arthur-debert/conda-which/pkg/logging"
	"github.com/arthur-debert/conda-which/pkg/manifest"
	"github.com/arthur-debert/conda-which/pkg/paths"
	"github.com/arthur-debert/conda-which/pkg/types"
)

// Sources lists where environments are looked up
type Sources struct {
	// EnvironmentsFiles are environments.txt style lists, one root per line
	EnvironmentsFiles []string
	// CondarcFiles are read for envs_dirs; missing files are skipped
	CondarcFiles []string
	// EnvsDirs hold environments as direct children
	EnvsDirs []string
	// RootPrefix is the base installation, included when it exists
	RootPrefix string
	// Extra roots are included when they exist, conda-meta or not
	Extra []string
}

// Loader reads Sources into a Registry
type Loader struct {
	fs      types.FS
	resolve func(string) (string, error)
}

// NewLoader creates a Loader over the OS filesystem. Every root is also
// registered under its symlink-resolved path, so canonical query paths match.
func NewLoader() *Loader {
	return &Loader{fs: filesystem.NewOS(), resolve: filesystem.Realpath}
}

// NewLoaderWithFS creates a Loader over fsys that registers roots as given
func NewLoaderWithFS(fsys types.FS) *Loader {
	return &Loader{fs: fsys}
}

// Load builds the registry snapshot
func (l *Loader) Load(src Sources) (*Registry, error) {
	logger := logging.GetLogger("registry")
	done := logging.LogOperationStart(logger, "load_registry")
	defer done()

	var found []string

	for _, file := range src.EnvironmentsFiles {
		entries, err := l.readEnvironmentsFile(file)
		if err != nil {
			return nil, err
		}
		for _, p := range entries {
			if l.IsEnvironment(p) {
				found = append(found, p)
			} else {
				logger.Debug().Str("file", file).Str("prefix", p).Msg("Skipping stale environments.txt entry")
			}
		}
	}

	envsDirs := append([]string{}, src.EnvsDirs...)
	for _, rc := range src.CondarcFiles {
		envsDirs = append(envsDirs, l.readCondarc(rc)...)
	}
	for _, dir := range envsDirs {
		found = append(found, l.scanEnvsDir(paths.ExpandHome(dir))...)
	}

	if src.RootPrefix != "" && l.isDir(src.RootPrefix) {
		found = append(found, src.RootPrefix)
	}

	for _, p := range src.Extra {
		p = paths.ExpandHome(p)
		if l.isDir(p) {
			found = append(found, p)
		} else {
			logger.Warn().Str("prefix", p).Msg("Configured environment does not exist")
		}
	}

	reg := New(found...)
	l.addResolvedAliases(reg)
	logger.Debug().Int("environments", reg.Len()).Msg("Registry loaded")
	return reg, nil
}

// IsEnvironment reports whether prefix holds conda-meta/history
func (l *Loader) IsEnvironment(prefix string) bool {
	info, err := l.fs.Stat(filepath.Join(manifest.MetaDir(prefix), manifest.HistoryFile))
	return err == nil && !info.IsDir()
}

func (l *Loader) isDir(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (l *Loader) readEnvironmentsFile(file string) ([]string, error) {
	data, err := l.fs.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrRegistryLoad, "couldn't read environments list %s", file).
			WithDetail(errors.DetailFile, file)
	}

	var entries []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, paths.ExpandHome(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRegistryLoad, "couldn't read environments list %s", file).
			WithDetail(errors.DetailFile, file)
	}
	return entries, nil
}

// readCondarc returns the envs_dirs of one condarc. Broken or unreadable
// files are logged and skipped: conda's own config errors are not ours to fail on.
func (l *Loader) readCondarc(file string) []string {
	logger := logging.GetLogger("registry")

	data, err := l.fs.ReadFile(file)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("file", file).Msg("Couldn't read condarc")
		}
		return nil
	}

	dirs, err := parseCondarc(data)
	if err != nil {
		logger.Warn().Err(err).Str("file", file).Msg("Couldn't parse condarc, ignoring it")
		return nil
	}
	logger.Debug().Str("file", file).Strs("envsDirs", dirs).Msg("Read condarc")
	return dirs
}

func (l *Loader) scanEnvsDir(dir string) []string {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return nil
	}

	var envs []string
	for _, entry := range entries {
		p := filepath.Join(dir, entry.Name())
		if l.IsEnvironment(p) {
			envs = append(envs, p)
		}
	}
	return envs
}

func (l *Loader) addResolvedAliases(reg *Registry) {
	if l.resolve == nil {
		return
	}
	for _, p := range reg.sorted {
		if real, err := l.resolve(p); err == nil && real != p {
			reg.addAlias(real)
		}
	}
}
