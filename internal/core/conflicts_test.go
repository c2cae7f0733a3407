package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectConflicts_Classification(t *testing.T) {
	paths := newTestPaths(t)

	reg := NewRegistry()
	reg.Plugins["owner-plugin"] = &InstalledPlugin{
		Name:   "owner-plugin",
		Scope:  ScopeUser,
		Source: LocalSource{Path: "/src"},
		Components: ComponentSet{
			Commands: []string{"b--taken.md"},
		},
	}

	cmdDir := paths.ComponentDir(ScopeUser, TypeCommand)
	os.MkdirAll(cmdDir, 0o755)
	os.WriteFile(filepath.Join(cmdDir, "b--taken.md"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(cmdDir, "b--stray.md"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(cmdDir, "b--mine.md"), []byte("x"), 0o644)
	reg.Plugins["b"] = &InstalledPlugin{
		Name:   "b",
		Scope:  ScopeUser,
		Source: LocalSource{Path: "/src/b"},
		Components: ComponentSet{
			Commands: []string{"b--mine.md"},
		},
	}

	components := []Component{
		{Type: TypeCommand, Name: "free.md", TargetName: "b--free.md"},   // no file
		{Type: TypeCommand, Name: "mine.md", TargetName: "b--mine.md"},   // same plugin
		{Type: TypeCommand, Name: "taken.md", TargetName: "b--taken.md"}, // foreign owner
		{Type: TypeCommand, Name: "stray.md", TargetName: "b--stray.md"}, // untracked
	}

	conflicts := DetectConflicts(components, "b", ScopeUser, reg, paths)
	if len(conflicts) != 2 {
		t.Fatalf("got %d conflicts, want 2: %+v", len(conflicts), conflicts)
	}

	if conflicts[0].TargetName != "b--taken.md" || conflicts[0].Owner != "owner-plugin" {
		t.Errorf("conflicts[0] = %+v, want b--taken.md owned by owner-plugin", conflicts[0])
	}
	if conflicts[1].TargetName != "b--stray.md" || conflicts[1].Owner != "" {
		t.Errorf("conflicts[1] = %+v, want b--stray.md untracked", conflicts[1])
	}
}

func TestConflictError_ListsEveryConflict(t *testing.T) {
	err := &ConflictError{Conflicts: []Conflict{
		{Type: TypeCommand, TargetName: "b--x.md", Owner: "a"},
		{Type: TypeSkill, TargetName: "b--s", Owner: ""},
	}}

	msg := err.Error()
	for _, want := range []string{"b--x.md", `owned by plugin "a"`, "b--s", "untracked", "--force"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}
}
