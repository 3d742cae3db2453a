// Package unix renders one greppable line per resolved path.
package unix

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/conda-which/pkg/ui/display"
	"github.com/arthur-debert/conda-which/pkg/which"
)

// Renderer writes machine readable output
type Renderer struct {
	output io.Writer
}

// New creates a unix renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult writes exactly one line for res
func (r *Renderer) RenderResult(res which.Result) error {
	_, err := fmt.Fprintln(r.output, Line(res))
	return err
}

// Line formats res. Bookkeeping files are reported like any other file that
// no package owns.
func Line(res which.Result) string {
	switch {
	case res.Kind == which.NotFound:
		return "Path not found"
	case !res.InEnvironment():
		return fmt.Sprintf("'%s' does not belong to any conda environment", res.Path)
	case len(res.Packages) == 0:
		return fmt.Sprintf("'%s' belongs to a conda environment, but not to any conda package", res.Path)
	case len(res.Packages) > 1:
		return fmt.Sprintf("'%s' belongs to %s (%s)", res.Path, strings.Join(res.Packages, ", "), display.ClobberedLabel)
	default:
		return fmt.Sprintf("'%s' belongs to %s", res.Path, res.Packages[0])
	}
}

// RenderEnvironments writes one prefix per line
func (r *Renderer) RenderEnvironments(envs []display.Environment) error {
	for _, env := range envs {
		if _, err := fmt.Fprintln(r.output, env.Prefix); err != nil {
			return err
		}
	}
	return nil
}

// RenderError writes the error on a single line
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// Flush is a no-op; output is written as results arrive
func (r *Renderer) Flush() error {
	return nil
}
