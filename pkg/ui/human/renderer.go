// Package human renders resolution results as multi-line, emoji-annotated text.
// Colors come from the styles package; with the Ascii profile the same
// layout is produced without escape codes.
package human

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/conda-which/pkg/ui/display"
	"github.com/arthur-debert/conda-which/pkg/ui/styles"
	"github.com/arthur-debert/conda-which/pkg/which"
)

const (
	packageEmoji     = "📦"
	environmentEmoji = "🌏"
)

// Renderer writes human readable output
type Renderer struct {
	output io.Writer
	styles *styles.Styles
}

// New creates a human renderer
func New(output io.Writer, s *styles.Styles) *Renderer {
	return &Renderer{output: output, styles: s}
}

// RenderResult renders one resolved path
func (r *Renderer) RenderResult(res which.Result) error {
	if res.Kind == which.NotFound {
		_, err := fmt.Fprintln(r.output, r.styles.Render("Error", fmt.Sprintf("File '%s' does not exist", res.Query)))
		return err
	}

	var environment string
	if res.InEnvironment() {
		environment = r.styles.Render("Environment", res.Prefix)
	} else {
		environment = r.styles.Render("Warning", display.NoEnvironment)
	}

	_, err := fmt.Fprintf(r.output, "%s\n  %s Package: %s\n  %s Environment: %s\n\n",
		r.styles.Render("Header", fmt.Sprintf("File '%s' belongs to", res.Path)),
		packageEmoji, r.packageLine(res),
		environmentEmoji, environment)
	return err
}

func (r *Renderer) packageLine(res which.Result) string {
	switch {
	case res.Kind == which.Metadata:
		return r.styles.Render("Warning", fmt.Sprintf("%s (%s)", display.NoPackage, display.MetadataFile))
	case len(res.Packages) == 0:
		return r.styles.Render("Warning", display.NoPackage)
	case len(res.Packages) > 1:
		return r.styles.Render("Warning",
			fmt.Sprintf("One of: %s (%s)", strings.Join(res.Packages, ", "), display.ClobberedLabel))
	default:
		return r.styles.Render("Owner", res.Packages[0])
	}
}

// RenderEnvironments renders the known-environments listing
func (r *Renderer) RenderEnvironments(envs []display.Environment) error {
	if len(envs) == 0 {
		_, err := fmt.Fprintln(r.output, r.styles.Render("Warning", "No conda environments found"))
		return err
	}

	if _, err := fmt.Fprintln(r.output, r.styles.Render("Header", "Known conda environments")); err != nil {
		return err
	}
	for _, env := range envs {
		note := fmt.Sprintf("%d packages", env.Packages)
		if env.Root {
			note += ", base"
		}
		line := fmt.Sprintf("  %s %s %s", environmentEmoji,
			r.styles.Render("Environment", env.Prefix),
			r.styles.Render("Muted", "("+note+")"))
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders a fatal error
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.styles.Render("Error", fmt.Sprintf("Error: %v", err)))
	return werr
}

// Flush is a no-op; output is written as results arrive
func (r *Renderer) Flush() error {
	return nil
}
