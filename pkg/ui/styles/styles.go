// Package styles defines the visual styling for conda-which's terminal output.
//
// Styles have semantic names (Owner, Warning, Error, ...) and adaptive
// colors, declared in the embedded styles.yaml. A Styles value is bound to
// one lipgloss renderer, so the color profile follows the output it writes to.
package styles

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles
type Styles struct {
	renderer *lipgloss.Renderer
	registry map[string]lipgloss.Style
}

// New builds the default styles for out using the given color profile
func New(out io.Writer, profile termenv.Profile) (*Styles, error) {
	return FromData(defaultStyles, out, profile)
}

// FromData builds styles from YAML data
func FromData(data []byte, out io.Writer, profile termenv.Profile) (*Styles, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}

	renderer := lipgloss.NewRenderer(out)
	renderer.SetColorProfile(profile)

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	s := &Styles{renderer: renderer, registry: make(map[string]lipgloss.Style, len(config.Styles))}
	for name, def := range config.Styles {
		s.registry[name] = buildStyle(renderer, def, colors)
	}
	return s, nil
}

func buildStyle(r *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := r.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Foreground != "" {
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
	}
	return style
}

// Get returns the named style, or an unstyled one when it is unknown
func (s *Styles) Get(name string) lipgloss.Style {
	if style, ok := s.registry[name]; ok {
		return style
	}
	return s.renderer.NewStyle()
}

// Render renders text with the named style
func (s *Styles) Render(name, text string) string {
	return s.Get(name).Render(text)
}
