package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	cwerrors "github.com/arthur-debert/conda-which/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "CONDA_WHICH_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

var (
	validFormats = []string{"auto", "term", "text", "unix", "json"}
	validColors  = []string{"auto", "always", "never"}
)

// Config is the effective conda-which configuration
type Config struct {
	Output   Output   `koanf:"output" toml:"output"`
	Registry Registry `koanf:"registry" toml:"registry"`
}

// Output controls how results are rendered
type Output struct {
	Format string `koanf:"format" toml:"format"`
	Color  string `koanf:"color" toml:"color"`
}

// Registry controls where known environments are discovered
type Registry struct {
	EnvironmentsFile string   `koanf:"environments_file" toml:"environments_file"`
	ScanCondarc      bool     `koanf:"scan_condarc" toml:"scan_condarc"`
	Condarc          []string `koanf:"condarc" toml:"condarc"`
	EnvsDirs         []string `koanf:"envs_dirs" toml:"envs_dirs"`
	ExtraEnvs        []string `koanf:"extra_envs" toml:"extra_envs"`
	RootPrefix       string   `koanf:"root_prefix" toml:"root_prefix"`
}

// LoadOptions selects the user config file
type LoadOptions struct {
	// ConfigFile is the user config path. It is skipped silently when it
	// does not exist, unless Required is set.
	ConfigFile string
	Required   bool

	// Overrides are dotted keys (output.format) applied last, typically
	// from command-line flags
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, cwerrors.Wrap(err, cwerrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if opts.ConfigFile != "" {
		_, err := os.Stat(opts.ConfigFile)
		switch {
		case err == nil:
			if err := k.Load(file.Provider(opts.ConfigFile), toml.Parser()); err != nil {
				return nil, cwerrors.Wrapf(err, cwerrors.ErrConfigParse, "failed to load config from %s", opts.ConfigFile).
					WithDetail(cwerrors.DetailFile, opts.ConfigFile)
			}
		case opts.Required || !os.IsNotExist(err):
			return nil, cwerrors.Wrapf(err, cwerrors.ErrConfigLoad, "failed to read config file %s", opts.ConfigFile).
				WithDetail(cwerrors.DetailFile, opts.ConfigFile)
		}
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, cwerrors.Wrap(err, cwerrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, cwerrors.Wrap(err, cwerrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, cwerrors.Wrap(err, cwerrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps CONDA_WHICH_REGISTRY_ENVS_DIRS to registry.envs_dirs. Only the
// first underscore separates section from key. CONDA_WHICH_CONFIG names the
// config file itself and is not a setting.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[0] + "." + parts[1]
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if !contains(validFormats, c.Output.Format) {
		return cwerrors.Newf(cwerrors.ErrInvalidInput, "invalid output.format %q (want one of %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}
	if !contains(validColors, c.Output.Color) {
		return cwerrors.Newf(cwerrors.ErrInvalidInput, "invalid output.color %q (want one of %s)",
			c.Output.Color, strings.Join(validColors, ", "))
	}
	return nil
}

// Marshal renders the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return data, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
