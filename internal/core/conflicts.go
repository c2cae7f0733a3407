package core

// DetectConflicts classifies every component's target path against the
// filesystem and the scope's registry. A target is a conflict when it
// exists on disk and is either owned by a different plugin or untracked.
// The same plugin overwriting its own targets is the reinstall/update path
// and is never a conflict.
//
// The scan always runs to completion so the caller sees every conflict in
// one pass rather than resolving them one retry at a time.
func DetectConflicts(components []Component, pluginName string, scope Scope, reg *Registry, paths Paths) []Conflict {
	var conflicts []Conflict
	for _, c := range components {
		target := paths.TargetPath(scope, c)
		if !pathExists(target) {
			continue
		}
		owner := reg.OwnerOf(c.Type, c.TargetName)
		if owner == pluginName {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Type:       c.Type,
			TargetName: c.TargetName,
			Path:       target,
			Owner:      owner,
		})
	}
	return conflicts
}
