package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plugrow/plugrow/internal/core"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Install every plugin found in a directory",
	Long: `Bulk-install: every direct subdirectory of <dir> is treated as a plugin
source. Plugins already installed with an identical content hash are
skipped without touching the filesystem or the registry.

Per-plugin failures do not stop the batch; a summary is printed at the
end and the command exits non-zero if anything failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		scope, err := resolveScope(cmd, d.cfg)
		if err != nil {
			return err
		}

		root, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving directory: %w", err)
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			return fmt.Errorf("reading directory: %w", err)
		}

		var dirs []string
		for _, entry := range entries {
			if entry.IsDir() {
				dirs = append(dirs, entry.Name())
			}
		}
		sort.Strings(dirs)
		if len(dirs) == 0 {
			return fmt.Errorf("no plugin directories found in %s", root)
		}

		force, _ := cmd.Flags().GetBool("force")
		installer := core.NewInstaller(d.store)

		var installed, updated, skipped, failed int
		for _, dir := range dirs {
			result, err := installer.Install(core.LocalSource{Path: filepath.Join(root, dir)}, core.InstallOptions{
				Scope:          scope,
				Force:          force,
				SkipIfSameHash: true,
				Logf:           verboseLogf(cmd),
				Warnf:          warnf,
			})
			if err != nil {
				failed++
				fmt.Fprintf(os.Stdout, "  failed    %s: %v\n", dir, err)
				continue
			}
			switch result.Outcome {
			case core.OutcomeInstalled:
				installed++
				fmt.Fprintf(os.Stdout, "  installed %s (%s)\n", result.Name, core.ShortHash(result.Hash))
			case core.OutcomeUpdated:
				updated++
				fmt.Fprintf(os.Stdout, "  updated   %s (%s)\n", result.Name, core.ShortHash(result.Hash))
			case core.OutcomeSkipped:
				skipped++
				fmt.Fprintf(os.Stdout, "  skipped   %s (unchanged)\n", result.Name)
			}
		}

		fmt.Fprintf(os.Stdout, "\n%d installed, %d updated, %d skipped, %d failed\n",
			installed, updated, skipped, failed)
		if failed > 0 {
			return fmt.Errorf("%d plugin(s) failed to import", failed)
		}
		return nil
	},
}

func init() {
	addScopeFlags(importCmd)
	importCmd.Flags().Bool("force", false, "overwrite conflicting targets")
	importCmd.Flags().BoolP("verbose", "v", false, "trace install steps")
	rootCmd.AddCommand(importCmd)
}
