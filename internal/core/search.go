package core

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// pluginsSearchable adapts installed plugins for fuzzy matching over their
// names, sources, and descriptions.
type pluginsSearchable struct {
	plugins []*InstalledPlugin
	descs   []string
}

func (p pluginsSearchable) String(i int) string {
	parts := []string{p.plugins[i].Name, p.plugins[i].Source.String()}
	if p.descs[i] != "" {
		parts = append(parts, p.descs[i])
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func (p pluginsSearchable) Len() int { return len(p.plugins) }

// FilterPlugins fuzzy-filters installed plugins against a query, best
// matches first. An empty query returns the input unchanged.
func FilterPlugins(plugins []*InstalledPlugin, query string, paths Paths) []*InstalledPlugin {
	if strings.TrimSpace(query) == "" {
		return plugins
	}

	searchable := pluginsSearchable{
		plugins: plugins,
		descs:   make([]string, len(plugins)),
	}
	for i, p := range plugins {
		searchable.descs[i] = DescribePlugin(p, paths)
	}

	// FindFrom returns matches sorted by score, best first.
	matches := fuzzy.FindFrom(strings.ToLower(query), searchable)

	result := make([]*InstalledPlugin, 0, len(matches))
	for _, m := range matches {
		result = append(result, plugins[m.Index])
	}
	return result
}
