// Package filesystem provides filesystem implementations for conda-which.
//
// This package contains implementations of the types.FS interface,
// an OS-backed one used by the CLI and an afero-backed one used by tests,
// plus Realpath for symlink-resolving canonicalisation.
package filesystem
