package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store reads and writes the per-scope plugin registries. All paths come
// from the injected Paths value; the store keeps no other state.
type Store struct {
	paths Paths
}

// NewStore creates a Store over the given path resolution.
func NewStore(paths Paths) *Store {
	return &Store{paths: paths}
}

// Paths returns the path resolution the store was built with.
func (s *Store) Paths() Paths { return s.paths }

// Load reads the registry for a scope. A missing file yields an empty
// registry. Corrupt content or an obsolete schema version also yield an
// empty registry, with the condition reported in warnings — never as an
// error, so a broken file can always be recovered by reinstalling.
func (s *Store) Load(scope Scope) (*Registry, []string, error) {
	path := s.paths.RegistryPath(scope)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(), nil, nil
		}
		return nil, nil, fmt.Errorf("reading registry: %w", err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		warning := fmt.Sprintf("registry at %s is corrupt (%v); treating as empty, reinstall to rebuild it", path, err)
		return NewRegistry(), []string{warning}, nil
	}
	if reg.Version != currentRegistryVersion {
		warning := fmt.Sprintf("registry at %s has schema version %d (current is %d); treating as empty, reinstall to rebuild it", path, reg.Version, currentRegistryVersion)
		return NewRegistry(), []string{warning}, nil
	}
	if reg.Plugins == nil {
		reg.Plugins = map[string]*InstalledPlugin{}
	}
	return &reg, nil, nil
}

// Save writes the registry for a scope atomically: marshal to a temp file
// in the destination directory, then rename over the registry path. A crash
// or concurrent reader never observes a half-written file.
func (s *Store) Save(reg *Registry, scope Scope) error {
	path := s.paths.RegistryPath(scope)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	// Ensure trailing newline.
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving registry: %w", err)
	}

	return nil
}

// GetAll merges the user and project registries into one listing sorted by
// name. On a name collision the project-scope record wins.
func (s *Store) GetAll() ([]*InstalledPlugin, []string, error) {
	merged := map[string]*InstalledPlugin{}
	var warnings []string

	for _, scope := range []Scope{ScopeUser, ScopeProject} {
		reg, w, err := s.Load(scope)
		if err != nil {
			return nil, warnings, err
		}
		warnings = append(warnings, w...)
		for name, p := range reg.Plugins {
			merged[name] = p
		}
	}

	plugins := make([]*InstalledPlugin, 0, len(merged))
	for _, p := range merged {
		plugins = append(plugins, p)
	}
	sort.Slice(plugins, func(i, j int) bool { return plugins[i].Name < plugins[j].Name })
	return plugins, warnings, nil
}
