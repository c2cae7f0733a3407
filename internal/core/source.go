package core

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const cloneTimeout = 60 * time.Second

// ownerRepoPattern matches "owner/repo" GitHub shorthand.
var ownerRepoPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

// ParseSource parses a plugin source string into its tagged variant.
//
// Supported formats:
//   - "./local/path", "/abs/path", "~/path" → local directory
//   - "owner/repo"                          → GitHub shorthand
//   - "https://host/owner/repo[.git]"       → HTTPS git URL
//   - "git@host:owner/repo.git"             → SSH git URL
//
// Remote forms accept a "#ref" suffix pinning a branch or tag.
func ParseSource(input string) (PluginSource, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty source")
	}

	if isLocalPath(input) {
		abs, err := filepath.Abs(expandPath(input))
		if err != nil {
			return nil, fmt.Errorf("resolving local path: %w", err)
		}
		return LocalSource{Path: abs}, nil
	}

	input, ref := splitRef(input)

	if strings.HasPrefix(input, "git@") {
		if !strings.Contains(input, ":") {
			return nil, fmt.Errorf("invalid SSH URL: %q", input)
		}
		return RemoteSource{URL: input, Ref: ref}, nil
	}

	if strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://") {
		return RemoteSource{URL: input, Ref: ref}, nil
	}

	if ownerRepoPattern.MatchString(input) {
		return RemoteSource{
			URL: fmt.Sprintf("https://github.com/%s.git", input),
			Ref: ref,
		}, nil
	}

	return nil, fmt.Errorf("unrecognized source format: %q", input)
}

func isLocalPath(input string) bool {
	return strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "~/") ||
		input == "."
}

// splitRef strips a trailing "#ref" from a remote source string.
func splitRef(input string) (string, string) {
	if idx := strings.LastIndex(input, "#"); idx > 0 {
		return input[:idx], input[idx+1:]
	}
	return input, ""
}

// OverrideCloneURL applies a configured clone URL override to a remote
// source. Overrides are keyed by lowercase "owner/repo" extracted from the
// URL. Local sources and unmatched remotes pass through unchanged.
func OverrideCloneURL(source PluginSource, overrides map[string]string) PluginSource {
	remote, ok := source.(RemoteSource)
	if !ok || len(overrides) == 0 {
		return source
	}
	key := ownerRepoKey(remote.URL)
	if key == "" {
		return source
	}
	if override, ok := overrides[key]; ok && override != "" {
		remote.URL = override
		return remote
	}
	return source
}

// ownerRepoKey extracts lowercase "owner/repo" from an HTTPS or SSH git URL.
func ownerRepoKey(url string) string {
	path := url
	if idx := strings.Index(path, "://"); idx >= 0 {
		path = path[idx+3:]
		if slash := strings.Index(path, "/"); slash >= 0 {
			path = path[slash+1:]
		} else {
			return ""
		}
	} else if strings.HasPrefix(path, "git@") {
		if idx := strings.Index(path, ":"); idx >= 0 {
			path = path[idx+1:]
		} else {
			return ""
		}
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.ToLower(parts[0] + "/" + parts[1])
}

// AcquireSource makes a source available as a local directory. For a local
// source that is a stat check; for a remote source it is a shallow clone to
// a temporary directory. The returned cleanup must run on every exit path
// of the surrounding operation; it is a no-op for local sources.
func AcquireSource(source PluginSource) (root string, cleanup func(), err error) {
	switch src := source.(type) {
	case LocalSource:
		info, err := os.Stat(src.Path)
		if err != nil {
			return "", nil, fmt.Errorf("local path not found: %s", src.Path)
		}
		if !info.IsDir() {
			return "", nil, fmt.Errorf("local path is not a directory: %s", src.Path)
		}
		return src.Path, func() {}, nil
	case RemoteSource:
		tmpDir, err := os.MkdirTemp("", "plugrow-clone-*")
		if err != nil {
			return "", nil, fmt.Errorf("creating temp dir: %w", err)
		}
		// Clone into a repo-named subdirectory so name resolution sees the
		// repository name, not the temp dir.
		dest := filepath.Join(tmpDir, repoBaseName(src.URL))
		if err := cloneRepo(src.URL, src.Ref, dest); err != nil {
			_ = os.RemoveAll(tmpDir)
			return "", nil, fmt.Errorf("cloning repository: %w", err)
		}
		return dest, func() { _ = os.RemoveAll(tmpDir) }, nil
	}
	return "", nil, fmt.Errorf("unsupported source %T", source)
}

// repoBaseName extracts the repository name from a clone URL.
func repoBaseName(url string) string {
	path := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if idx := strings.LastIndexAny(path, "/:"); idx >= 0 {
		path = path[idx+1:]
	}
	if path == "" {
		return "plugin"
	}
	return path
}

// cloneRepo shallow-clones a git repository into dest.
func cloneRepo(url, ref, dest string) error {
	args := []string{"clone", "--depth", "1"}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	args = append(args, url, dest)

	cmd := exec.Command("git", args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := runWithTimeout(cmd, cloneTimeout)
	if err != nil {
		return fmt.Errorf("git clone %s failed: %v\n%s", url, err, strings.TrimSpace(output))
	}
	return nil
}

// runWithTimeout runs a command with a timeout, capturing combined output.
func runWithTimeout(cmd *exec.Cmd, timeout time.Duration) (string, error) {
	done := make(chan struct{})
	var output []byte
	var cmdErr error

	go func() {
		output, cmdErr = cmd.CombinedOutput()
		close(done)
	}()

	select {
	case <-done:
		return string(output), cmdErr
	case <-time.After(timeout):
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		return "", fmt.Errorf("command timed out after %s", timeout)
	}
}
