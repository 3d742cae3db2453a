package cli

import (
	"path/filepath"

	"github.com/arthur-debert/conda-which/pkg/filesystem"
	"github.com/arthur-debert/conda-which/pkg/logging"
	"github.com/arthur-debert/conda-which/pkg/manifest"
	"github.com/arthur-debert/conda-which/pkg/ui/display"
	"github.com/spf13/cobra"
)

// runListEnvs prints every known environment with its package count
func runListEnvs(cmd *cobra.Command, opts *rootOptions) error {
	logger := logging.GetLogger("cli.envs")

	s, err := opts.newSession()
	if err != nil {
		return err
	}

	reg, err := s.loadRegistry()
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cmd, s.config)
	if err != nil {
		return err
	}

	root := ""
	if s.sources.RootPrefix != "" {
		root = filepath.Clean(s.sources.RootPrefix)
	}

	scanner := manifest.NewScanner(filesystem.NewOS())
	prefixes := reg.Prefixes()
	envs := make([]display.Environment, 0, len(prefixes))
	for _, prefix := range prefixes {
		pkgs, err := scanner.ListPackages(prefix)
		if err != nil {
			logger.Warn().Err(err).Str("prefix", prefix).Msg("Could not list packages")
		}
		envs = append(envs, display.Environment{
			Prefix:   prefix,
			Packages: len(pkgs),
			Root:     prefix == root,
		})
	}

	if err := renderer.RenderEnvironments(envs); err != nil {
		return err
	}
	return renderer.Flush()
}
