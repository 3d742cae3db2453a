// Package which resolves a path to the conda environment and packages that own it.
package which

import (
	"github.com/arthur-debert/conda-which/pkg/filesystem"
	"github.com/arthur-debert/conda-which/pkg/logging"
	"github.com/arthur-debert/conda-which/pkg/manifest"
	"github.com/arthur-debert/conda-which/pkg/prefix"
	"github.com/arthur-debert/conda-which/pkg/types"
)

// Kind is the terminal classification of a resolved path
type Kind int

const (
	// NotFound: the path does not exist
	NotFound Kind = iota
	// Untracked: the path exists outside every known environment
	Untracked
	// Unowned: inside an environment, claimed by no package
	Unowned
	// Metadata: an unowned conda-meta bookkeeping file (*.json or history)
	Metadata
	// Owned: claimed by exactly one package
	Owned
	// Clobbered: claimed by more than one package
	Clobbered
)

// String returns the stable name used in JSON output and logs
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not-found"
	case Untracked:
		return "untracked"
	case Unowned:
		return "unowned"
	case Metadata:
		return "metadata"
	case Owned:
		return "owned"
	case Clobbered:
		return "clobbered"
	default:
		return "unknown"
	}
}

// Result is the resolution of one queried path. Prefix is empty unless the
// path is inside a known environment, and Packages is empty unless Prefix is set.
type Result struct {
	// Query is the path as given by the caller
	Query string
	// Path is the canonical path; empty when Kind is NotFound
	Path     string
	Prefix   string
	Packages []string
	Kind     Kind
}

// InEnvironment reports whether the path belongs to a known environment
func (r Result) InEnvironment() bool {
	return r.Prefix != ""
}

// Resolver answers which-queries against a fixed registry snapshot
type Resolver struct {
	envs     prefix.Set
	scanner  *manifest.Scanner
	realpath func(string) (string, error)
}

// New creates a Resolver over the OS filesystem
func New(envs prefix.Set) *Resolver {
	return NewWithFS(envs, filesystem.NewOS(), filesystem.Realpath)
}

// NewWithFS creates a Resolver with injected manifest filesystem and path canonicaliser
func NewWithFS(envs prefix.Set, fsys types.FS, realpath func(string) (string, error)) *Resolver {
	return &Resolver{
		envs:     envs,
		scanner:  manifest.NewScanner(fsys),
		realpath: realpath,
	}
}

// Which classifies path. Every outcome, including a missing file, is a
// Result; only unreadable or malformed package metadata is an error.
func (r *Resolver) Which(path string) (Result, error) {
	logger := logging.GetLogger("which").With().Str("query", path).Logger()
	res := Result{Query: path, Kind: NotFound}

	fullpath, err := r.realpath(path)
	if err != nil {
		logger.Debug().Err(err).Msg("Path could not be resolved")
		return res, nil
	}
	res.Path = fullpath

	env, ok := prefix.MatchLongestPrefix(fullpath, r.envs)
	if !ok {
		res.Kind = Untracked
		logger.Debug().Str("path", fullpath).Msg("Path is outside every known environment")
		return res, nil
	}
	res.Prefix = env

	relPath, err := prefix.StripPrefix(fullpath, env)
	if err != nil {
		return Result{}, err
	}

	packages, err := r.scanner.FindOwnerPackages(relPath, env)
	if err != nil {
		return Result{}, err
	}
	res.Packages = packages

	switch {
	case len(packages) > 1:
		res.Kind = Clobbered
	case len(packages) == 1:
		res.Kind = Owned
	case manifest.IsMetadataFile(fullpath):
		res.Kind = Metadata
	default:
		res.Kind = Unowned
	}

	logger.Debug().
		Str("path", fullpath).
		Str("prefix", env).
		Stringer("kind", res.Kind).
		Strs("packages", packages).
		Msg("Resolved")
	return res, nil
}
