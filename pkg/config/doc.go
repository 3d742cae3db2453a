// Package config loads conda-which's configuration.
//
// Values are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file ($XDG_CONFIG_HOME/conda-which/config.toml, or the
//     file named by --config / CONDA_WHICH_CONFIG)
//  3. CONDA_WHICH_<SECTION>_<KEY> environment variables, e.g.
//     CONDA_WHICH_OUTPUT_FORMAT=unix or CONDA_WHICH_REGISTRY_EXTRA_ENVS=/a,/b
//
// The result is an immutable Config value handed to the rest of the program.
package config
