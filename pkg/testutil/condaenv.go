package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/conda-which/pkg/filesystem"
	"github.com/arthur-debert/conda-which/pkg/types"
	"github.com/spf13/afero"
)

// Package describes one installed package of a fixture environment
type Package struct {
	ID    string
	Files []string
}

// CreateCondaEnv lays out a conda environment at root: a conda-meta
// directory with a history file, one manifest per package, and every file
// the packages list. Returns root.
func CreateCondaEnv(t *testing.T, root string, pkgs ...Package) string {
	t.Helper()

	CreateFile(t, root, filepath.Join("conda-meta", "history"), "==> 2024-01-01 00:00:00 <==\n")
	for _, pkg := range pkgs {
		WriteManifest(t, root, pkg.ID, pkg.Files)
		for _, f := range pkg.Files {
			CreateFile(t, root, f, pkg.ID+"\n")
		}
	}
	return root
}

// WriteManifest writes <prefix>/conda-meta/<id>.json listing files
func WriteManifest(t *testing.T, prefix, id string, files []string) string {
	t.Helper()

	if files == nil {
		files = []string{}
	}
	data, err := json.Marshal(map[string]interface{}{
		"name":  id,
		"files": files,
	})
	if err != nil {
		t.Fatalf("Failed to marshal manifest %s: %v", id, err)
	}
	return CreateFile(t, prefix, filepath.Join("conda-meta", id+".json"), string(data))
}

// NewMemoryFS returns an in-memory afero filesystem and the types.FS view of it
func NewMemoryFS() (afero.Fs, types.FS) {
	mem := afero.NewMemMapFs()
	return mem, filesystem.NewAferoFS(mem)
}

// WriteMemFile writes content to path in an in-memory filesystem
func WriteMemFile(t *testing.T, mem afero.Fs, path, content string) {
	t.Helper()

	if err := afero.WriteFile(mem, path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
