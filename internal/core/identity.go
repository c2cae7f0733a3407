package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tailscale/hujson"
)

// namePattern is the plugin-name slug: lowercase letters, digits, hyphens.
var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// manifestCandidates are the sidecar descriptor locations checked for a
// name override, most specific first.
var manifestCandidates = []string{
	filepath.Join(projectDirName, "plugin.json"),
	"plugin.json",
}

// pluginManifest is the sidecar descriptor. Only the name field is
// consulted; everything else in the file is ignored.
type pluginManifest struct {
	Name string `json:"name"`
}

// ResolveName derives the canonical plugin name for a source directory.
// A manifest-declared name takes priority over the directory basename.
// Either way the candidate is lowercased, stripped of leading dots, and
// validated against the slug pattern.
func ResolveName(dir string) (string, error) {
	if name, ok := manifestName(dir); ok {
		return normalizeName(name)
	}
	return normalizeName(filepath.Base(filepath.Clean(dir)))
}

// manifestName reads the name field from the first manifest candidate
// present. Manifests are hand-edited, so comments and trailing commas are
// tolerated. An unreadable or malformed manifest is ignored; the
// directory name is authoritative in that case.
func manifestName(dir string) (string, bool) {
	for _, rel := range manifestCandidates {
		data, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			continue
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			continue
		}
		var m pluginManifest
		if err := json.Unmarshal(std, &m); err != nil {
			continue
		}
		if m.Name != "" {
			return m.Name, true
		}
	}
	return "", false
}

// normalizeName lowercases a name candidate, strips leading dots (hidden
// directory sources), and validates the result.
func normalizeName(name string) (string, error) {
	name = strings.ToLower(strings.TrimLeft(name, "."))
	if name == "" || !namePattern.MatchString(name) {
		return "", &InvalidNameError{Input: name}
	}
	return name, nil
}
