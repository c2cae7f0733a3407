package core

import (
	"fmt"
	"strings"
)

// InvalidNameError reports a source whose derived name fails slug validation.
type InvalidNameError struct {
	Input string // the name candidate after normalization
}

func (e *InvalidNameError) Error() string {
	if e.Input == "" {
		return "invalid plugin name: empty after normalization"
	}
	return fmt.Sprintf("invalid plugin name %q: only lowercase letters, digits, and hyphens are allowed", e.Input)
}

// NoComponentsError reports a source that yielded nothing to install.
type NoComponentsError struct {
	Root string
}

func (e *NoComponentsError) Error() string {
	return fmt.Sprintf("no components found in %s (looked for markdown files under %s; %s; and skill folders with a SKILL.md under %s)",
		e.Root,
		strings.Join(commandCandidates, ", "),
		strings.Join(agentCandidates, ", "),
		strings.Join(skillCandidates, ", "))
}

// NotInstalledError reports an uninstall/update target missing from the
// registry for the requested scope.
type NotInstalledError struct {
	Name  string
	Scope Scope
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("plugin %q is not installed in %s scope (use \"plugrow list\" to see what is installed)", e.Name, e.Scope)
}

// Conflict describes one occupied target path.
type Conflict struct {
	Type       ComponentType
	TargetName string
	Path       string // the occupied filesystem path
	Owner      string // owning plugin per the registry; "" means untracked
}

// Describe returns the ownership classification for display.
func (c Conflict) Describe() string {
	if c.Owner == "" {
		return "untracked (exists on disk but not in the registry)"
	}
	return fmt.Sprintf("owned by plugin %q", c.Owner)
}

// ConflictError aggregates every conflicting target found in one detection
// pass. Detection never stops at the first conflict so the full list can be
// resolved in one go.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d conflicting target(s):\n", len(e.Conflicts))
	for _, c := range e.Conflicts {
		fmt.Fprintf(&b, "  %s %s: %s\n", c.Type, c.TargetName, c.Describe())
	}
	b.WriteString("re-run with --force to overwrite")
	return b.String()
}
