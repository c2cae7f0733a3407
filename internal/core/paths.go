package core

import "path/filepath"

const (
	projectDirName         = ".opencode"
	registrySubDir         = "plugins"
	registryFileName       = "installed.json"
	currentRegistryVersion = 1
)

// Paths resolves scope-relative locations. It is built once by the caller
// and passed to the store, installer, and uninstaller — there is no hidden
// process-wide path cache.
type Paths struct {
	UserBase   string // resolved opencode config dir (e.g. ~/.config/opencode)
	ProjectDir string // project root, usually the working directory
}

// ScopeBase returns the directory all of a scope's managed content lives under.
func (p Paths) ScopeBase(scope Scope) string {
	if scope == ScopeUser {
		return p.UserBase
	}
	return filepath.Join(p.ProjectDir, projectDirName)
}

// RegistryPath returns the registry file path for a scope.
func (p Paths) RegistryPath(scope Scope) string {
	return filepath.Join(p.ScopeBase(scope), registrySubDir, registryFileName)
}

// ComponentDir returns the directory components of the given type are
// installed into for a scope.
func (p Paths) ComponentDir(scope Scope, t ComponentType) string {
	return filepath.Join(p.ScopeBase(scope), string(t))
}

// TargetPath returns the filesystem path a component installs to.
func (p Paths) TargetPath(scope Scope, c Component) string {
	return filepath.Join(p.ComponentDir(scope, c.Type), c.TargetName)
}
