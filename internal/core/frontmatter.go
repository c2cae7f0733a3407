package core

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of a markdown component (command, agent,
// or a skill's SKILL.md). Used for display only; installation never depends
// on it.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseFrontmatter reads the YAML frontmatter block from a markdown file.
func ParseFrontmatter(path string) (*Frontmatter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty file: %s", path)
	}
	if strings.TrimSpace(scanner.Text()) != "---" {
		return nil, fmt.Errorf("no frontmatter in %s", path)
	}

	var block strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		block.WriteString(line)
		block.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}
	return &fm, nil
}

// DescribePlugin returns a short description for an installed plugin,
// best-effort: the frontmatter description of its first command, agent, or
// skill. Returns "" when nothing parseable is found.
func DescribePlugin(p *InstalledPlugin, paths Paths) string {
	for _, t := range componentTypes {
		for _, targetName := range p.Components.ForType(t) {
			path := paths.TargetPath(p.Scope, Component{Type: t, TargetName: targetName})
			if t == TypeSkill {
				path = filepath.Join(path, skillFileName)
			}
			fm, err := ParseFrontmatter(path)
			if err != nil || fm.Description == "" {
				continue
			}
			return fm.Description
		}
	}
	return ""
}
