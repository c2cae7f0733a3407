package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plugrow/plugrow/internal/core"
)

var updateCmd = &cobra.Command{
	Use:   "update <plugin-name>",
	Short: "Reinstall a plugin from its recorded source",
	Long: `Re-acquire a plugin from the source recorded at install time and
reinstall it. Remote sources are cloned again; local sources are re-read
from their directory.`,
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

		reg, warnings, err := d.store.Load(scope)
		if err != nil {
			return err
		}
		printWarnings(warnings)

		plugin := reg.Plugins[args[0]]
		if plugin == nil {
			return &core.NotInstalledError{Name: args[0], Scope: scope}
		}

		source := core.OverrideCloneURL(plugin.Source, d.cfg.CloneURLOverrides)

		force, _ := cmd.Flags().GetBool("force")

		installer := core.NewInstaller(d.store)
		result, err := installer.Install(source, core.InstallOptions{
			Scope:          scope,
			Force:          force,
			SkipIfSameHash: true,
			Logf:           verboseLogf(cmd),
			Warnf:          warnf,
		})
		if err != nil {
			return fmt.Errorf("updating %s: %w", args[0], err)
		}

		switch result.Outcome {
		case core.OutcomeSkipped:
			fmt.Fprintf(os.Stdout, "%s is up to date (%s)\n", result.Name, core.ShortHash(result.Hash))
		case core.OutcomeUpdated:
			fmt.Fprintf(os.Stdout, "Updated %s (%s -> %s)\n", result.Name,
				core.ShortHash(plugin.Hash), core.ShortHash(result.Hash))
		default:
			fmt.Fprintf(os.Stdout, "Reinstalled %s (%s)\n", result.Name, core.ShortHash(result.Hash))
		}
		return nil
	},
}

func init() {
	addScopeFlags(updateCmd)
	updateCmd.Flags().Bool("force", false, "overwrite conflicting targets")
	updateCmd.Flags().BoolP("verbose", "v", false, "trace install steps")
	rootCmd.AddCommand(updateCmd)
}
