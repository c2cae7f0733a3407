package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ComputeHash fingerprints a set of discovered components. Components are
// sorted by (type, name) before hashing, so the digest is a pure function
// of the component set and its content, never of discovery order.
//
// Commands and agents contribute their file bytes; skills contribute only
// their SKILL.md — sibling assets inside a skill folder do not invalidate
// the install state.
//
// Any unreadable input fails the whole computation. A partial hash would
// validate a broken plugin as a specific, reproducible version.
func ComputeHash(components []Component) (string, error) {
	sorted := make([]Component, len(components))
	copy(sorted, components)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		return sorted[i].Name < sorted[j].Name
	})

	h := sha256.New()
	for _, c := range sorted {
		fmt.Fprintf(h, "%s:%s:", c.Type, c.Name)

		path := c.SourcePath
		if c.Type == TypeSkill {
			path = filepath.Join(c.SourcePath, skillFileName)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("hashing %s %q: %w", c.Type, c.Name, err)
		}
		h.Write(data)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// ShortHash returns the 8-character display form of a content hash.
// It is for human output only; equality checks always use the full digest.
func ShortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
