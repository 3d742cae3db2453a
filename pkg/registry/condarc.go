package registry

import (
	"gopkg.in/yaml.v3"
)

// condarc is the subset of a condarc file the registry reads
type condarc struct {
	EnvsDirs []string `yaml:"envs_dirs"`
	// Older conda versions spell it envs_path
	EnvsPath []string `yaml:"envs_path"`
}

func parseCondarc(data []byte) ([]string, error) {
	var rc condarc
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, err
	}
	return append(rc.EnvsDirs, rc.EnvsPath...), nil
}
