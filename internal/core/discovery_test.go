package core

import (
	"os"
	"path/filepath"
	"testing"
)

// writeSourceTree creates files under root; keys are slash-separated
// relative paths and values are contents.
func writeSourceTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func findComponent(components []Component, t ComponentType, name string) *Component {
	for i := range components {
		if components[i].Type == t && components[i].Name == name {
			return &components[i]
		}
	}
	return nil
}

func TestDiscoverComponents_AllTypes(t *testing.T) {
	root := t.TempDir()
	writeSourceTree(t, root, map[string]string{
		"command/a.md":     "# a",
		"agent/b.md":       "# b",
		"skill/c/SKILL.md": "# c",
		"skill/c/extra.py": "print()",
	})

	components := DiscoverComponents(root, "x")
	if len(components) != 3 {
		t.Fatalf("got %d components, want 3: %+v", len(components), components)
	}

	cmd := findComponent(components, TypeCommand, "a.md")
	if cmd == nil {
		t.Fatal("command a.md not discovered")
	}
	if cmd.TargetName != "x--a.md" {
		t.Errorf("command TargetName = %q, want %q", cmd.TargetName, "x--a.md")
	}

	if findComponent(components, TypeAgent, "b.md") == nil {
		t.Error("agent b.md not discovered")
	}

	skill := findComponent(components, TypeSkill, "c")
	if skill == nil {
		t.Fatal("skill c not discovered")
	}
	if skill.TargetName != "x--c" {
		t.Errorf("skill TargetName = %q, want %q", skill.TargetName, "x--c")
	}
	if skill.SourcePath != filepath.Join(root, "skill", "c") {
		t.Errorf("skill SourcePath = %q", skill.SourcePath)
	}
}

func TestDiscoverComponents_CandidatePriority(t *testing.T) {
	root := t.TempDir()
	writeSourceTree(t, root, map[string]string{
		".opencode/command/high.md": "# high",
		"command/low.md":            "# low",
		"commands/lower.md":         "# lower",
	})

	components := DiscoverComponents(root, "x")
	if len(components) != 1 {
		t.Fatalf("got %d components, want 1 (no merging across candidates)", len(components))
	}
	if components[0].Name != "high.md" {
		t.Errorf("discovered %q, want %q from the higher-priority candidate", components[0].Name, "high.md")
	}
}

func TestDiscoverComponents_EmptyHigherCandidateWins(t *testing.T) {
	root := t.TempDir()
	writeSourceTree(t, root, map[string]string{
		"commands/low.md": "# low",
	})
	// Higher-priority candidate exists but holds no markdown.
	if err := os.MkdirAll(filepath.Join(root, "command"), 0o755); err != nil {
		t.Fatal(err)
	}

	components := DiscoverComponents(root, "x")
	if len(components) != 0 {
		t.Fatalf("got %d components, want 0: first existing candidate wins even when empty", len(components))
	}
}

func TestDiscoverComponents_IgnoresNonMarkdownAndDirs(t *testing.T) {
	root := t.TempDir()
	writeSourceTree(t, root, map[string]string{
		"command/a.md":        "# a",
		"command/notes.txt":   "ignored",
		"command/nested/b.md": "ignored, not a direct entry",
	})

	components := DiscoverComponents(root, "x")
	if len(components) != 1 || components[0].Name != "a.md" {
		t.Fatalf("got %+v, want only a.md", components)
	}
}

func TestDiscoverComponents_SkillRequiresSkillMd(t *testing.T) {
	root := t.TempDir()
	writeSourceTree(t, root, map[string]string{
		"skill/real/SKILL.md":  "# real",
		"skill/fake/README.md": "no SKILL.md here",
		"skill/fake/skill.md":  "wrong case",
		"skill/loose.md":       "files are not skills",
	})

	components := DiscoverComponents(root, "x")
	if len(components) != 1 {
		t.Fatalf("got %d components, want 1: %+v", len(components), components)
	}
	if components[0].Name != "real" {
		t.Errorf("discovered %q, want %q", components[0].Name, "real")
	}
}

func TestDiscoverComponents_EmptySourceIsValid(t *testing.T) {
	components := DiscoverComponents(t.TempDir(), "x")
	if len(components) != 0 {
		t.Fatalf("got %d components from an empty tree, want 0", len(components))
	}
}
