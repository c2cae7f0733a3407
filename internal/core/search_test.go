package core

import "testing"

func TestFilterPlugins(t *testing.T) {
	paths := newTestPaths(t)
	plugins := []*InstalledPlugin{
		testRecord("git-helpers", ScopeUser),
		testRecord("pdf-tools", ScopeUser),
		testRecord("review-kit", ScopeUser),
	}

	got := FilterPlugins(plugins, "pdf", paths)
	if len(got) != 1 || got[0].Name != "pdf-tools" {
		t.Errorf("FilterPlugins(pdf) = %v", names(got))
	}

	// Fuzzy: subsequence matches too.
	got = FilterPlugins(plugins, "rvwkit", paths)
	if len(got) != 1 || got[0].Name != "review-kit" {
		t.Errorf("FilterPlugins(rvwkit) = %v", names(got))
	}

	// Empty query returns everything unchanged.
	got = FilterPlugins(plugins, "  ", paths)
	if len(got) != 3 {
		t.Errorf("FilterPlugins(empty) = %v", names(got))
	}

	// No match yields an empty result.
	got = FilterPlugins(plugins, "zzzzzz", paths)
	if len(got) != 0 {
		t.Errorf("FilterPlugins(zzzzzz) = %v", names(got))
	}
}

func names(plugins []*InstalledPlugin) []string {
	out := make([]string, len(plugins))
	for i, p := range plugins {
		out[i] = p.Name
	}
	return out
}
