package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runShowConfig prints the effective configuration as TOML, or with
// --config-path only the file it was read from
func runShowConfig(cmd *cobra.Command, opts *rootOptions) error {
	s, err := opts.newSession()
	if err != nil {
		return err
	}

	if opts.configPath {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), s.configFile)
		return err
	}

	data, err := s.config.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
