package registry

import (
	"path/filepath"
	"sort"
)

// Registry is an immutable set of known environment roots. A root may also
// be known under aliases (its symlink-resolved form); aliases match in
// Contains but are not listed by Prefixes.
type Registry struct {
	prefixes map[string]struct{}
	sorted   []string
}

// New creates a Registry from prefixes. Paths are cleaned and de-duplicated;
// empty strings are ignored.
func New(prefixes ...string) *Registry {
	r := &Registry{prefixes: make(map[string]struct{}, len(prefixes))}
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if _, ok := r.prefixes[p]; ok {
			continue
		}
		r.prefixes[p] = struct{}{}
		r.sorted = append(r.sorted, p)
	}
	sort.Strings(r.sorted)
	return r
}

func (r *Registry) addAlias(alias string) {
	r.prefixes[filepath.Clean(alias)] = struct{}{}
}

// Contains reports whether path is a known environment root
func (r *Registry) Contains(path string) bool {
	_, ok := r.prefixes[path]
	return ok
}

// Prefixes returns the known roots in lexical order
func (r *Registry) Prefixes() []string {
	out := make([]string, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// Len returns the number of known roots
func (r *Registry) Len() int {
	return len(r.sorted)
}
