package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plugrow/plugrow/internal/core"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <plugin-name>",
	Short: "Remove an installed plugin",
	Long: `Remove a plugin's installed components from the scope's directories and
delete its registry entry.

Targets that were already removed out-of-band are reported as warnings,
not failures. A deletion that fails for any other reason (permissions,
file locks) aborts the uninstall with the registry left untouched, so the
operation can be retried.`,
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

		uninstaller := core.NewUninstaller(d.store)
		result, err := uninstaller.Uninstall(args[0], core.UninstallOptions{
			Scope: scope,
			Logf:  verboseLogf(cmd),
			Warnf: warnf,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Uninstalled %s [%s]\n", result.Name, scope)
		for _, target := range result.Removed {
			fmt.Fprintf(os.Stdout, "  removed %s\n", target)
		}
		if n := len(result.AlreadyGone); n > 0 {
			fmt.Fprintf(os.Stdout, "  %d target(s) were already deleted\n", n)
		}
		return nil
	},
}

func init() {
	addScopeFlags(uninstallCmd)
	uninstallCmd.Flags().BoolP("verbose", "v", false, "trace uninstall steps")
	rootCmd.AddCommand(uninstallCmd)
}
