// Package ui provides a unified interface for rendering conda-which output.
// It supports terminal (rich), text (plain human), unix (one line per path)
// and JSON output formats.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/conda-which/pkg/ui/display"
	"github.com/arthur-debert/conda-which/pkg/ui/human"
	"github.com/arthur-debert/conda-which/pkg/ui/json"
	"github.com/arthur-debert/conda-which/pkg/ui/styles"
	"github.com/arthur-debert/conda-which/pkg/ui/unix"
	"github.com/arthur-debert/conda-which/pkg/which"
	"github.com/muesli/termenv"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders the resolution of one path
	RenderResult(res which.Result) error

	// RenderEnvironments renders the known-environments listing
	RenderEnvironments(envs []display.Environment) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// Flush writes anything a renderer buffers
	Flush() error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		profile := termenv.NewOutput(output).EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
		return newHuman(output, profile)
	case FormatText:
		return newHuman(output, termenv.Ascii)
	case FormatUnix:
		return unix.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

func newHuman(output io.Writer, profile termenv.Profile) (Renderer, error) {
	s, err := styles.New(output, profile)
	if err != nil {
		return nil, err
	}
	return human.New(output, s), nil
}
