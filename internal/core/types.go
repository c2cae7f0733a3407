// Package core implements the plugin reconciliation engine for plugrow.
// It has zero UI dependencies and is independently testable.
package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Scope is the installation target partition. Each scope has its own
// component directories and its own registry file.
type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeProject Scope = "project"
)

// ParseScope validates a scope string from user input.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeUser, ScopeProject:
		return Scope(s), nil
	}
	return "", fmt.Errorf("invalid scope %q (expected %q or %q)", s, ScopeUser, ScopeProject)
}

// ComponentType identifies the kind of an installable component.
type ComponentType string

const (
	TypeCommand ComponentType = "command"
	TypeAgent   ComponentType = "agent"
	TypeSkill   ComponentType = "skill"
)

// componentTypes lists all types in their canonical reporting order.
var componentTypes = []ComponentType{TypeCommand, TypeAgent, TypeSkill}

// Component is one installable unit found inside a plugin source.
// Components are produced fresh by every discovery pass and never persisted;
// only their target names end up in the registry.
type Component struct {
	Type       ComponentType
	Name       string // original basename (e.g. "review.md", "pdf-tools")
	SourcePath string // absolute path inside the plugin source
	TargetName string // namespaced install name: "{plugin}--{name}"
}

// TargetName builds the namespaced filesystem name a component is
// installed under.
func TargetName(pluginName, componentName string) string {
	return pluginName + "--" + componentName
}

// PluginNameOf recovers the plugin prefix from a component's target name.
func PluginNameOf(c Component) string {
	return strings.TrimSuffix(c.TargetName, "--"+c.Name)
}

// PluginSource is where a plugin came from: a local directory or a remote
// git repository. Exactly two variants exist; code that only makes sense
// for one of them (e.g. re-cloning on update) type-switches on it.
type PluginSource interface {
	json.Marshaler
	isSource()
	// String returns the human-readable origin for display.
	String() string
}

// LocalSource is a plugin rooted at a local directory.
type LocalSource struct {
	Path string
}

// RemoteSource is a plugin acquired by cloning a git repository.
type RemoteSource struct {
	URL string
	Ref string // branch or tag; empty means the default branch
}

func (LocalSource) isSource()  {}
func (RemoteSource) isSource() {}

func (s LocalSource) String() string { return s.Path }

func (s RemoteSource) String() string {
	if s.Ref != "" {
		return s.URL + "#" + s.Ref
	}
	return s.URL
}

func (s LocalSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Path string `json:"path"`
	}{"local", s.Path})
}

func (s RemoteSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		URL  string `json:"url"`
		Ref  string `json:"ref,omitempty"`
	}{"remote", s.URL, s.Ref})
}

// decodeSource parses the tagged source object from registry JSON.
func decodeSource(raw json.RawMessage) (PluginSource, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing source")
	}
	var probe struct {
		Type string `json:"type"`
		Path string `json:"path"`
		URL  string `json:"url"`
		Ref  string `json:"ref"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	switch probe.Type {
	case "local":
		return LocalSource{Path: probe.Path}, nil
	case "remote":
		return RemoteSource{URL: probe.URL, Ref: probe.Ref}, nil
	}
	return nil, fmt.Errorf("unknown source type %q", probe.Type)
}

// ComponentSet holds the installed target names of a plugin, grouped by type.
type ComponentSet struct {
	Commands []string `json:"commands"`
	Agents   []string `json:"agents"`
	Skills   []string `json:"skills"`
}

// ForType returns the target names recorded for one component type.
func (cs ComponentSet) ForType(t ComponentType) []string {
	switch t {
	case TypeCommand:
		return cs.Commands
	case TypeAgent:
		return cs.Agents
	case TypeSkill:
		return cs.Skills
	}
	return nil
}

// Total returns the number of recorded components across all types.
func (cs ComponentSet) Total() int {
	return len(cs.Commands) + len(cs.Agents) + len(cs.Skills)
}

// InstalledPlugin is one registry record. It is created on first install,
// replaced wholesale on reinstall/update, and deleted on uninstall.
type InstalledPlugin struct {
	Name        string       `json:"name"`
	Hash        string       `json:"hash"`
	Scope       Scope        `json:"scope"`
	Source      PluginSource `json:"source"`
	InstalledAt time.Time    `json:"installedAt"`
	Components  ComponentSet `json:"components"`
}

// UnmarshalJSON decodes the record, resolving the tagged source union.
func (p *InstalledPlugin) UnmarshalJSON(data []byte) error {
	type alias InstalledPlugin
	aux := struct {
		*alias
		Source json.RawMessage `json:"source"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	source, err := decodeSource(aux.Source)
	if err != nil {
		return fmt.Errorf("plugin %q: %w", p.Name, err)
	}
	p.Source = source
	return nil
}

// Registry is the persisted mapping from plugin name to installation record
// for one scope. It is the single source of truth for target ownership.
type Registry struct {
	Version int                         `json:"version"`
	Plugins map[string]*InstalledPlugin `json:"plugins"`
}

// NewRegistry returns an empty registry at the current schema version.
func NewRegistry() *Registry {
	return &Registry{
		Version: currentRegistryVersion,
		Plugins: map[string]*InstalledPlugin{},
	}
}

// OwnerOf returns the name of the plugin that owns the given target name
// under the given component type, or "" if no plugin records it.
func (r *Registry) OwnerOf(t ComponentType, targetName string) string {
	for name, p := range r.Plugins {
		for _, tn := range p.Components.ForType(t) {
			if tn == targetName {
				return name
			}
		}
	}
	return ""
}
