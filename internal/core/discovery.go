package core

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	markdownExt   = ".md"
	skillFileName = "SKILL.md"
)

// Candidate sub-paths per component type, most specific first. The first
// existing directory wins; lower-priority candidates are never merged in.
var (
	commandCandidates = []string{filepath.Join(projectDirName, "command"), "command", "commands"}
	agentCandidates   = []string{filepath.Join(projectDirName, "agent"), "agent", "agents"}
	skillCandidates   = []string{filepath.Join(projectDirName, "skill"), "skill", "skills"}
)

// DiscoverComponents scans a plugin source for installable components.
// The three type scans touch disjoint subtrees, so they run concurrently.
// Discovery is maximally tolerant: unreadable candidate directories are
// treated as absent, and an empty result is a valid outcome — the caller
// decides whether that is fatal.
func DiscoverComponents(root, pluginName string) []Component {
	var groups [3][]Component
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		groups[0] = discoverMarkdownFiles(root, pluginName, TypeCommand, commandCandidates)
	}()
	go func() {
		defer wg.Done()
		groups[1] = discoverMarkdownFiles(root, pluginName, TypeAgent, agentCandidates)
	}()
	go func() {
		defer wg.Done()
		groups[2] = discoverSkills(root, pluginName)
	}()
	wg.Wait()

	var components []Component
	for _, g := range groups {
		components = append(components, g...)
	}
	return components
}

// discoverMarkdownFiles finds command/agent components: every regular file
// with a markdown extension directly inside the first matching candidate
// directory. Subdirectories and other files are ignored.
func discoverMarkdownFiles(root, pluginName string, t ComponentType, candidates []string) []Component {
	for _, rel := range candidates {
		dir := filepath.Join(root, rel)
		entries, err := os.ReadDir(dir)
		if err != nil {
			// Missing or unreadable: fall through to the next candidate.
			continue
		}

		var components []Component
		for _, entry := range entries {
			if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), markdownExt) {
				continue
			}
			components = append(components, Component{
				Type:       t,
				Name:       entry.Name(),
				SourcePath: filepath.Join(dir, entry.Name()),
				TargetName: TargetName(pluginName, entry.Name()),
			})
		}
		// First existing directory wins, even when it yields nothing.
		return components
	}
	return nil
}

// discoverSkills finds skill components: direct subdirectories of the first
// matching candidate that contain a SKILL.md file. The whole subdirectory is
// the component payload.
func discoverSkills(root, pluginName string) []Component {
	for _, rel := range skillCandidates {
		dir := filepath.Join(root, rel)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		var components []Component
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			skillDir := filepath.Join(dir, entry.Name())
			if !fileExists(filepath.Join(skillDir, skillFileName)) {
				continue
			}
			components = append(components, Component{
				Type:       TypeSkill,
				Name:       entry.Name(),
				SourcePath: skillDir,
				TargetName: TargetName(pluginName, entry.Name()),
			})
		}
		return components
	}
	return nil
}
