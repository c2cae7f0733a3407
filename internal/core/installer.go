package core

import (
	"fmt"
	"os"
	"sort"
	"time"
)

// Outcome is the tri-state result of an install operation.
type Outcome string

const (
	OutcomeInstalled Outcome = "installed"
	OutcomeUpdated   Outcome = "updated"
	OutcomeSkipped   Outcome = "skipped"
)

// Picker narrows the discovered component set before installation, e.g. via
// an interactive terminal selection. ok=false means the user cancelled;
// the installer treats that — and an empty selection — as a benign skip.
type Picker func(components []Component) (selected []Component, ok bool, err error)

// InstallOptions configures one install operation.
type InstallOptions struct {
	Scope Scope
	// Force overwrites conflicting targets instead of aborting.
	Force bool
	// SkipIfSameHash makes the install a no-op (no filesystem or registry
	// writes) when the plugin is already installed with an identical hash.
	// Bulk-import flows use this.
	SkipIfSameHash bool
	// Picker, when set, selects the subset of components to install.
	// The content hash is always computed over the full discovered set.
	Picker Picker
	// Logf receives verbose progress traces. Nil disables tracing.
	Logf func(format string, args ...any)
	// Warnf receives non-fatal warnings (e.g. a corrupt registry that was
	// recovered as empty). Nil discards them.
	Warnf func(format string, args ...any)
}

func (o InstallOptions) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

func (o InstallOptions) warnf(format string, args ...any) {
	if o.Warnf != nil {
		o.Warnf(format, args...)
	}
}

// InstallResult describes a completed install operation.
type InstallResult struct {
	Name    string
	Hash    string
	Outcome Outcome
	// Components actually copied, in install order. Empty when skipped.
	Components []Component
}

// Installer reconciles a plugin source against a scope: discovery, hashing,
// conflict detection, filesystem copy, and the registry update, as one
// logical operation.
//
// Failure behavior: anything that fails before copying leaves the
// filesystem and registry untouched. A failure mid-copy is NOT rolled
// back — files already copied remain, and the registry keeps the previous
// record. Reinstalling repairs the drift.
type Installer struct {
	store *Store
}

// NewInstaller creates an Installer over the given registry store.
func NewInstaller(store *Store) *Installer {
	return &Installer{store: store}
}

// Install installs a plugin from a source into a scope.
func (inst *Installer) Install(source PluginSource, opts InstallOptions) (*InstallResult, error) {
	root, cleanup, err := AcquireSource(source)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	name, err := ResolveName(root)
	if err != nil {
		return nil, err
	}
	opts.logf("resolved name: %s", name)

	discovered := DiscoverComponents(root, name)
	if len(discovered) == 0 {
		return nil, &NoComponentsError{Root: root}
	}
	opts.logf("discovered %d component(s)", len(discovered))

	// The hash covers the full discovered set even when a picker narrows
	// the installed subset: identity is a property of the source.
	hash, err := ComputeHash(discovered)
	if err != nil {
		return nil, err
	}
	opts.logf("content hash: %s", ShortHash(hash))

	reg, warnings, err := inst.store.Load(opts.Scope)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		opts.warnf("%s", w)
	}

	existing := reg.Plugins[name]
	if opts.SkipIfSameHash && existing != nil && existing.Hash == hash {
		opts.logf("already installed with identical hash, skipping")
		return &InstallResult{Name: name, Hash: hash, Outcome: OutcomeSkipped}, nil
	}

	selected := discovered
	if opts.Picker != nil {
		picked, ok, err := opts.Picker(discovered)
		if err != nil {
			return nil, fmt.Errorf("selecting components: %w", err)
		}
		if !ok || len(picked) == 0 {
			// Cancelled or nothing chosen: a clean no-op, not an error.
			return &InstallResult{Name: name, Hash: hash, Outcome: OutcomeSkipped}, nil
		}
		selected = picked
	}

	// Deterministic copy order, so registry lists and output are
	// reproducible across runs with identical input.
	sort.Slice(selected, func(i, j int) bool {
		if selected[i].Type != selected[j].Type {
			return selected[i].Type < selected[j].Type
		}
		return selected[i].Name < selected[j].Name
	})

	conflicts := DetectConflicts(selected, name, opts.Scope, reg, inst.store.Paths())
	if len(conflicts) > 0 {
		if !opts.Force {
			return nil, &ConflictError{Conflicts: conflicts}
		}
		opts.logf("overwriting %d conflicting target(s)", len(conflicts))
	}

	for _, t := range componentTypes {
		if err := os.MkdirAll(inst.store.Paths().ComponentDir(opts.Scope, t), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", t, err)
		}
	}

	for _, c := range selected {
		target := inst.store.Paths().TargetPath(opts.Scope, c)
		opts.logf("copying %s %s -> %s", c.Type, c.Name, target)
		if err := installComponent(c, target); err != nil {
			return nil, fmt.Errorf("installing %s %q: %w", c.Type, c.Name, err)
		}
	}

	record := &InstalledPlugin{
		Name:        name,
		Hash:        hash,
		Scope:       opts.Scope,
		Source:      source,
		InstalledAt: time.Now().UTC(),
		Components:  buildComponentSet(selected),
	}
	reg.Plugins[name] = record

	if err := inst.store.Save(reg, opts.Scope); err != nil {
		return nil, err
	}

	outcome := OutcomeInstalled
	if existing != nil && existing.Hash != hash {
		outcome = OutcomeUpdated
	}
	return &InstallResult{
		Name:       name,
		Hash:       hash,
		Outcome:    outcome,
		Components: selected,
	}, nil
}

// installComponent copies one component to its target path: a single file
// for commands and agents, the whole folder for skills. A stale skill
// folder at the target is replaced, not merged over.
func installComponent(c Component, target string) error {
	if c.Type == TypeSkill {
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("clearing target: %w", err)
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("creating target: %w", err)
		}
		return copyDirectory(c.SourcePath, target)
	}
	return copyFile(c.SourcePath, target)
}

// buildComponentSet projects installed components into the registry record
// shape. The input is already sorted by (type, name).
func buildComponentSet(components []Component) ComponentSet {
	cs := ComponentSet{
		Commands: []string{},
		Agents:   []string{},
		Skills:   []string{},
	}
	for _, c := range components {
		switch c.Type {
		case TypeCommand:
			cs.Commands = append(cs.Commands, c.TargetName)
		case TypeAgent:
			cs.Agents = append(cs.Agents, c.TargetName)
		case TypeSkill:
			cs.Skills = append(cs.Skills, c.TargetName)
		}
	}
	return cs
}
