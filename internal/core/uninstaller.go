package core

import (
	"fmt"
	"os"
)

// UninstallOptions configures one uninstall operation.
type UninstallOptions struct {
	Scope Scope
	// Logf receives verbose progress traces. Nil disables tracing.
	Logf func(format string, args ...any)
	// Warnf receives non-fatal warnings. Nil discards them.
	Warnf func(format string, args ...any)
}

func (o UninstallOptions) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

func (o UninstallOptions) warnf(format string, args ...any) {
	if o.Warnf != nil {
		o.Warnf(format, args...)
	}
}

// UninstallResult describes a completed uninstall.
type UninstallResult struct {
	Name string
	// Removed lists target names whose filesystem entries were deleted.
	Removed []string
	// AlreadyGone lists recorded target names that were missing on disk.
	// The registry and the filesystem can legitimately drift (manual
	// cleanup, prior partial failure); that is a warning, not a failure.
	AlreadyGone []string
}

// Uninstaller removes a plugin's filesystem targets and its registry record.
type Uninstaller struct {
	store *Store
}

// NewUninstaller creates an Uninstaller over the given registry store.
func NewUninstaller(store *Store) *Uninstaller {
	return &Uninstaller{store: store}
}

// Uninstall removes the named plugin from a scope. Targets are deleted in
// stable order (commands, agents, skills); a deletion failure other than
// "not found" aborts immediately with the registry untouched, so the
// operation stays retryable. The registry entry is removed only after all
// deletions have been attempted.
func (u *Uninstaller) Uninstall(name string, opts UninstallOptions) (*UninstallResult, error) {
	reg, warnings, err := u.store.Load(opts.Scope)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		opts.warnf("%s", w)
	}

	plugin := reg.Plugins[name]
	if plugin == nil {
		return nil, &NotInstalledError{Name: name, Scope: opts.Scope}
	}

	result := &UninstallResult{Name: name}
	for _, t := range componentTypes {
		for _, targetName := range plugin.Components.ForType(t) {
			target := u.store.Paths().TargetPath(opts.Scope, Component{Type: t, TargetName: targetName})

			// Existence is checked at the point of deletion, not earlier:
			// os.RemoveAll reports success for a missing path, which would
			// hide drift.
			if _, err := os.Lstat(target); err != nil {
				if os.IsNotExist(err) {
					opts.warnf("%s %s already deleted", t, targetName)
					result.AlreadyGone = append(result.AlreadyGone, targetName)
					continue
				}
				return nil, fmt.Errorf("checking %s %q: %w", t, targetName, err)
			}

			opts.logf("removing %s %s", t, target)
			if err := os.RemoveAll(target); err != nil {
				return nil, fmt.Errorf("removing %s %q: %w", t, targetName, err)
			}
			result.Removed = append(result.Removed, targetName)
		}
	}

	delete(reg.Plugins, name)
	if err := u.store.Save(reg, opts.Scope); err != nil {
		return nil, err
	}

	return result, nil
}
