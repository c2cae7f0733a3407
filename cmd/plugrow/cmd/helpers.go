package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plugrow/plugrow/internal/core"
)

// deps bundles the wiring every command needs: configuration, resolved
// paths, and the registry store. Built fresh per invocation — no globals.
type deps struct {
	cfg   *core.Config
	paths core.Paths
	store *core.Store
}

func newDeps(cmd *cobra.Command) (*deps, error) {
	cm, err := core.NewConfigManager()
	if err != nil {
		return nil, err
	}
	cfg, err := cm.Load()
	if err != nil {
		return nil, err
	}

	userBase, err := core.ResolveUserBase(cfg)
	if err != nil {
		return nil, err
	}

	projectDir, _ := cmd.Flags().GetString("dir")
	if projectDir == "" {
		projectDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	paths := core.Paths{UserBase: userBase, ProjectDir: projectDir}
	return &deps{
		cfg:   cfg,
		paths: paths,
		store: core.NewStore(paths),
	}, nil
}

// resolveScope reads the --scope flag, falling back to the configured
// default, then to project scope.
func resolveScope(cmd *cobra.Command, cfg *core.Config) (core.Scope, error) {
	flag, _ := cmd.Flags().GetString("scope")
	if flag == "" {
		flag = cfg.DefaultScope
	}
	if flag == "" {
		return core.ScopeProject, nil
	}
	return core.ParseScope(flag)
}

// addScopeFlags registers the flags shared by scope-aware commands.
func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().String("scope", "", `installation scope: "user" or "project" (default project)`)
	cmd.Flags().String("dir", "", "project directory (default current directory)")
}

// verboseLogf returns a stderr trace function when --verbose is set,
// nil otherwise.
func verboseLogf(cmd *cobra.Command) func(string, ...any) {
	if v, _ := cmd.Flags().GetBool("verbose"); !v {
		return nil
	}
	return func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// warnf prints a non-fatal warning to stderr.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// printWarnings surfaces registry load warnings.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		warnf("%s", w)
	}
}

// describeComponents summarizes an installed component set for output,
// e.g. "2 commands, 1 agent, 3 skills".
func describeComponents(cs core.ComponentSet) string {
	var parts []string
	add := func(n int, noun string) {
		if n == 0 {
			return
		}
		if n == 1 {
			parts = append(parts, fmt.Sprintf("1 %s", noun))
			return
		}
		parts = append(parts, fmt.Sprintf("%d %ss", n, noun))
	}
	add(len(cs.Commands), "command")
	add(len(cs.Agents), "agent")
	add(len(cs.Skills), "skill")
	if len(parts) == 0 {
		return "no components"
	}
	return strings.Join(parts, ", ")
}
