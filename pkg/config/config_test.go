package config

import (
	"os"
	"path/filepath"
	"testing"

	cwerrors "github.com/arthur-debert/conda-which/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.True(t, cfg.Registry.ScanCondarc)
	assert.Empty(t, cfg.Registry.EnvironmentsFile)
	assert.Empty(t, cfg.Registry.ExtraEnvs)
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	cfg, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "absent.toml")})
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "absent.toml"), Required: true})
	require.Error(t, err)
	assert.True(t, cwerrors.IsErrorCode(err, cwerrors.ErrConfigLoad))
}

func TestLoad_UserFile(t *testing.T) {
	path := writeConfig(t, `
[output]
format = "unix"

[registry]
scan_condarc = false
extra_envs = ["/opt/envs/a", "/opt/envs/b"]
root_prefix = "/opt/conda"
`)

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "unix", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.False(t, cfg.Registry.ScanCondarc)
	assert.Equal(t, []string{"/opt/envs/a", "/opt/envs/b"}, cfg.Registry.ExtraEnvs)
	assert.Equal(t, "/opt/conda", cfg.Registry.RootPrefix)
}

func TestLoad_BrokenFile(t *testing.T) {
	path := writeConfig(t, "[output\nformat = ")

	_, err := Load(LoadOptions{ConfigFile: path})
	require.Error(t, err)
	assert.True(t, cwerrors.IsErrorCode(err, cwerrors.ErrConfigParse))
	assert.Equal(t, path, cwerrors.GetDetailString(err, cwerrors.DetailFile))
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[output]
format = "unix"
`)
	t.Setenv("CONDA_WHICH_OUTPUT_FORMAT", "json")
	t.Setenv("CONDA_WHICH_REGISTRY_ENVS_DIRS", "/x/envs,/y/envs")
	t.Setenv("CONDA_WHICH_REGISTRY_ENVIRONMENTS_FILE", "/tmp/environments.txt")
	t.Setenv("CONDA_WHICH_CONFIG", path)

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, []string{"/x/envs", "/y/envs"}, cfg.Registry.EnvsDirs)
	assert.Equal(t, "/tmp/environments.txt", cfg.Registry.EnvironmentsFile)
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Setenv("CONDA_WHICH_OUTPUT_FORMAT", "json")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"output.format": "unix",
		"output.color":  "never",
	}})
	require.NoError(t, err)

	assert.Equal(t, "unix", cfg.Output.Format)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.True(t, cfg.Registry.ScanCondarc)
}

func TestLoad_InvalidOverride(t *testing.T) {
	_, err := Load(LoadOptions{Overrides: map[string]interface{}{"output.format": "xml"}})
	require.Error(t, err)
	assert.True(t, cwerrors.IsErrorCode(err, cwerrors.ErrInvalidInput))
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad format", "[output]\nformat = \"xml\"\n"},
		{"bad color", "[output]\ncolor = \"sometimes\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{ConfigFile: writeConfig(t, tt.content)})
			require.Error(t, err)
			assert.True(t, cwerrors.IsErrorCode(err, cwerrors.ErrInvalidInput))
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "output.format", envKey("CONDA_WHICH_OUTPUT_FORMAT"))
	assert.Equal(t, "registry.envs_dirs", envKey("CONDA_WHICH_REGISTRY_ENVS_DIRS"))
	assert.Equal(t, "", envKey("CONDA_WHICH_CONFIG"))
}

func TestMarshal(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	cfg.Registry.ExtraEnvs = []string{"/opt/envs/a"}

	data, err := cfg.Marshal()
	require.NoError(t, err)

	var back Config
	require.NoError(t, gotoml.Unmarshal(data, &back))
	assert.Equal(t, "auto", back.Output.Format)
	assert.Equal(t, []string{"/opt/envs/a"}, back.Registry.ExtraEnvs)
	assert.Contains(t, string(data), "[registry]")
}
