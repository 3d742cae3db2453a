// Package registry builds the snapshot of known conda environments.
//
// Conda keeps no single authoritative list, so the snapshot is assembled
// the way conda's own prefix listing does it:
//
//   - every entry of ~/.conda/environments.txt that is still an environment
//   - every environment directly inside an envs directory (condarc
//     envs_dirs, CONDA_ENVS_PATH, <root>/envs, ~/.conda/envs)
//   - the base installation (root prefix)
//
// plus any extra roots named in conda-which's own configuration. A
// directory counts as an environment when it has conda-meta/history.
//
// The resulting Registry is built once per invocation and never mutated;
// it is passed explicitly to the resolver.
package registry
