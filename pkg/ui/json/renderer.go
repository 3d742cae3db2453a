// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/conda-which/pkg/ui/display"
	"github.com/arthur-debert/conda-which/pkg/which"
)

// Result is the JSON shape of one resolved path
type Result struct {
	Query    string   `json:"query"`
	Path     *string  `json:"path"`
	Prefix   *string  `json:"environment"`
	Packages []string `json:"packages"`
	Kind     string   `json:"kind"`
}

// Renderer provides JSON output for machine consumption. Results are
// collected and written as one array on Flush.
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
	results []Result
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
		results: []Result{},
	}
}

// RenderResult queues res for output
func (r *Renderer) RenderResult(res which.Result) error {
	packages := res.Packages
	if packages == nil {
		packages = []string{}
	}
	r.results = append(r.results, Result{
		Query:    res.Query,
		Path:     optional(res.Path),
		Prefix:   optional(res.Prefix),
		Packages: packages,
		Kind:     res.Kind.String(),
	})
	return nil
}

// Flush writes every queued result as a JSON array. Nothing is written
// when no result is queued.
func (r *Renderer) Flush() error {
	if len(r.results) == 0 {
		return nil
	}
	if err := r.encoder.Encode(r.results); err != nil {
		return err
	}
	r.results = []Result{}
	return nil
}

// RenderEnvironments renders the environment listing as a JSON array
func (r *Renderer) RenderEnvironments(envs []display.Environment) error {
	if envs == nil {
		envs = []display.Environment{}
	}
	return r.encoder.Encode(envs)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]string{
		"error": err.Error(),
	}
	return r.encoder.Encode(errorObj)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
