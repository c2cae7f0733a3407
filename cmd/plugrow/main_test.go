package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plugrow/plugrow/cmd/plugrow/cmd"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"plugrow": func() {
			if err := cmd.Execute(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	})
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		Setup: func(e *testscript.Env) error {
			// Keep everything inside the work dir: plugrow config under
			// $HOME/.plugrow, user-scope components under $OPENCODE_CONFIG_DIR.
			e.Vars = append(e.Vars,
				"HOME="+e.WorkDir,
				"OPENCODE_CONFIG_DIR="+filepath.Join(e.WorkDir, "userconfig"),
			)
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// file-contains asserts that a file contains (or doesn't contain) a substring.
			// Usage: [!] file-contains <path> <substring>
			"file-contains": cmdFileContains,

			// dir-not-exists asserts that a directory does not exist.
			// Usage: [!] dir-not-exists <path>
			"dir-not-exists": cmdDirNotExists,

			// setup-git-plugin turns an existing plugin directory into a git repo
			// so it can be installed through the clone path.
			// Usage: setup-git-plugin <dir>
			"setup-git-plugin": cmdSetupGitPlugin,

			// setup-clone-override writes ~/.plugrow/config.json mapping an
			// "owner/repo" key to a local clone URL.
			// Usage: setup-clone-override <repo-key> <clone-url>
			"setup-clone-override": cmdSetupCloneOverride,
		},
	})
}

// cmdFileContains checks if a file contains a substring.
func cmdFileContains(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: file-contains <path> <substring>")
	}
	path := ts.MkAbs(args[0])
	substr := args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		ts.Fatalf("reading %s: %v", args[0], err)
	}

	contains := strings.Contains(string(data), substr)
	if neg {
		if contains {
			ts.Fatalf("file %s contains %q (expected not to)", args[0], substr)
		}
	} else {
		if !contains {
			ts.Fatalf("file %s does not contain %q\nContent:\n%s", args[0], substr, string(data))
		}
	}
}

// cmdDirNotExists checks that a directory does not exist.
func cmdDirNotExists(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: dir-not-exists <path>")
	}
	path := ts.MkAbs(args[0])
	_, err := os.Stat(path)
	doesNotExist := os.IsNotExist(err)

	if neg {
		if doesNotExist {
			ts.Fatalf("%s does not exist (expected it to exist)", args[0])
		}
	} else {
		if !doesNotExist {
			ts.Fatalf("%s exists (expected it not to)", args[0])
		}
	}
}

// cmdSetupGitPlugin initializes a git repo at an existing plugin directory.
func cmdSetupGitPlugin(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("setup-git-plugin does not support negation")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: setup-git-plugin <dir>")
	}

	dir := ts.MkAbs(args[0])
	gitEnv := append(os.Environ(),
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)

	runGit := func(gitArgs ...string) {
		c := exec.Command("git", gitArgs...)
		c.Dir = dir
		c.Env = gitEnv
		out, err := c.CombinedOutput()
		if err != nil {
			ts.Fatalf("git %v: %v\n%s", gitArgs, err, out)
		}
	}

	runGit("init")
	runGit("checkout", "-b", "main")
	runGit("add", ".")
	runGit("commit", "-m", "initial")
}

// cmdSetupCloneOverride writes a config.json with a clone URL override.
func cmdSetupCloneOverride(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("setup-clone-override does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: setup-clone-override <repo-key> <clone-url>")
	}

	repoKey := args[0]
	cloneURL := ts.MkAbs(args[1])

	configDir := filepath.Join(ts.Getenv("HOME"), ".plugrow")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		ts.Fatalf("creating config dir: %v", err)
	}

	content := fmt.Sprintf("{\n  \"cloneURLOverrides\": {\n    %q: %q\n  }\n}\n", repoKey, cloneURL)
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(content), 0o644); err != nil {
		ts.Fatalf("writing config: %v", err)
	}
}
