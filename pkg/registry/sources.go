package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/conda-which/pkg/config"
	"github.com/arthur-debert/conda-which/pkg/paths"
)

// Environment variables conda and mamba use to describe the installation
const (
	EnvCondaRoot       = "CONDA_ROOT"
	EnvMambaRootPrefix = "MAMBA_ROOT_PREFIX"
	EnvCondaExe        = "CONDA_EXE"
	EnvCondaEnvsPath   = "CONDA_ENVS_PATH"
	EnvCondaEnvsDirs   = "CONDA_ENVS_DIRS"
)

// Discover derives the registry sources from configuration and environment
func Discover(cfg *config.Config, p paths.Paths) Sources {
	root := RootPrefix(cfg)

	envsFile := cfg.Registry.EnvironmentsFile
	if envsFile == "" {
		envsFile = p.EnvironmentsFile()
	}

	src := Sources{
		EnvironmentsFiles: []string{paths.ExpandHome(envsFile)},
		RootPrefix:        root,
		Extra:             cfg.Registry.ExtraEnvs,
	}

	src.EnvsDirs = append(src.EnvsDirs, cfg.Registry.EnvsDirs...)
	for _, name := range []string{EnvCondaEnvsPath, EnvCondaEnvsDirs} {
		src.EnvsDirs = append(src.EnvsDirs, splitPathList(os.Getenv(name))...)
	}
	src.EnvsDirs = append(src.EnvsDirs, p.DefaultEnvsDirs(root)...)

	if cfg.Registry.ScanCondarc {
		src.CondarcFiles = append(src.CondarcFiles, p.CondarcFiles(root)...)
	}
	for _, rc := range cfg.Registry.Condarc {
		src.CondarcFiles = append(src.CondarcFiles, paths.ExpandHome(rc))
	}

	return src
}

// RootPrefix returns the base installation: configured value first, then
// CONDA_ROOT, MAMBA_ROOT_PREFIX, and finally two levels above CONDA_EXE
// (<root>/bin/conda). Empty when none is available.
func RootPrefix(cfg *config.Config) string {
	if cfg.Registry.RootPrefix != "" {
		return paths.ExpandHome(cfg.Registry.RootPrefix)
	}
	for _, name := range []string{EnvCondaRoot, EnvMambaRootPrefix} {
		if v := os.Getenv(name); v != "" {
			return paths.ExpandHome(v)
		}
	}
	if exe := os.Getenv(EnvCondaExe); exe != "" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return ""
}

func splitPathList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, string(os.PathListSeparator)) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
