// Package testutil provides helpers for testing conda-which components:
// real-disk fixtures under t.TempDir, conda environment builders and an
// in-memory filesystem.
package testutil
