package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/conda-which/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigFile overrides the conda-which config file location
	EnvConfigFile = "CONDA_WHICH_CONFIG"

	// EnvCondarc points at an extra condarc file, as conda honours it
	EnvCondarc = "CONDARC"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names used by conda and by conda-which
const (
	// AppDirName is the directory name for conda-which specific files
	AppDirName = "conda-which"

	// ConfigFileName is the name of the user config file
	ConfigFileName = "config.toml"

	// CondaUserDirName is conda's per-user directory under $HOME
	CondaUserDirName = ".conda"

	// EnvironmentsTxt is the file where conda records every environment it created
	EnvironmentsTxt = "environments.txt"

	// EnvsDirName is the conventional directory holding named environments
	EnvsDirName = "envs"
)

// Paths provides centralized path management for conda-which
type Paths interface {
	HomeDir() string
	ConfigDir() string
	ConfigFile() string
	StateDir() string
	CondaUserDir() string
	EnvironmentsFile() string
	CondarcFiles(rootPrefix string) []string
	DefaultEnvsDirs(rootPrefix string) []string
}

type paths struct {
	home       string
	xdgConfig  string
	xdgState   string
	configFile string
}

// New creates a Paths instance from the current environment
func New() (Paths, error) {
	xdg.Reload()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
		if home == "" {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to determine home directory")
		}
	}

	p := &paths{
		home:      home,
		xdgConfig: filepath.Join(xdg.ConfigHome, AppDirName),
		xdgState:  filepath.Join(xdg.StateHome, AppDirName),
	}

	if override := os.Getenv(EnvConfigFile); override != "" {
		p.configFile = ExpandHome(override)
	} else {
		p.configFile = filepath.Join(p.xdgConfig, ConfigFileName)
	}

	return p, nil
}

func (p *paths) HomeDir() string {
	return p.home
}

// ConfigDir returns the XDG config directory for conda-which
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFile returns the user config file path
func (p *paths) ConfigFile() string {
	return p.configFile
}

// StateDir returns the XDG state directory for conda-which
func (p *paths) StateDir() string {
	return p.xdgState
}

// CondaUserDir returns ~/.conda
func (p *paths) CondaUserDir() string {
	return filepath.Join(p.home, CondaUserDirName)
}

// EnvironmentsFile returns ~/.conda/environments.txt
func (p *paths) EnvironmentsFile() string {
	return filepath.Join(p.CondaUserDir(), EnvironmentsTxt)
}

// CondarcFiles returns the condarc search list in the order conda reads it,
// lowest precedence first. Files that do not exist are still listed.
func (p *paths) CondarcFiles(rootPrefix string) []string {
	files := []string{
		"/etc/conda/.condarc",
		"/etc/conda/condarc",
	}
	if rootPrefix != "" {
		files = append(files, filepath.Join(rootPrefix, ".condarc"), filepath.Join(rootPrefix, "condarc"))
	}
	files = append(files,
		filepath.Join(xdg.ConfigHome, "conda", ".condarc"),
		filepath.Join(xdg.ConfigHome, "conda", "condarc"),
		filepath.Join(p.CondaUserDir(), ".condarc"),
		filepath.Join(p.CondaUserDir(), "condarc"),
		filepath.Join(p.home, ".condarc"),
	)
	if extra := os.Getenv(EnvCondarc); extra != "" {
		files = append(files, ExpandHome(extra))
	}
	return files
}

// DefaultEnvsDirs returns the envs directories conda uses when none are
// configured: <root>/envs then ~/.conda/envs.
func (p *paths) DefaultEnvsDirs(rootPrefix string) []string {
	var dirs []string
	if rootPrefix != "" {
		dirs = append(dirs, filepath.Join(rootPrefix, EnvsDirName))
	}
	return append(dirs, filepath.Join(p.CondaUserDir(), EnvsDirName))
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user forms are left alone
	return path
}
