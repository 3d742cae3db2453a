package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/conda-which/internal/cli"
	"github.com/arthur-debert/conda-which/pkg/ui/styles"
	"github.com/muesli/termenv"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		msg := fmt.Sprintf("Error: %v", err)
		if s, serr := styles.New(os.Stderr, termenv.NewOutput(os.Stderr).EnvColorProfile()); serr == nil {
			msg = s.Render("Error", msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
