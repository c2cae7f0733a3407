package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plugrow/plugrow/internal/core"
	"github.com/plugrow/plugrow/internal/tui"
)

var installCmd = &cobra.Command{
	Use:   "install <source>",
	Short: "Install a plugin from a source",
	Long: `Install a plugin from a local directory or a git repository.

Sources can be:
  ./local/path            Local directory
  owner/repo              GitHub shorthand
  https://github.com/...  Full clone URL
  git@host:owner/repo.git SSH clone URL

Remote sources accept a "#ref" suffix to pin a branch or tag.

The plugin's commands, agents, and skills are copied into the scope's
component directories under namespaced file names ("{plugin}--{name}"),
and the install is recorded in the scope's registry.

An occupied target that belongs to another plugin (or to nobody) aborts
the install; pass --force to overwrite. Note that a failure mid-copy does
not roll back files already copied — reinstalling repairs the state.`,
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

		source, err := core.ParseSource(args[0])
		if err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}
		source = core.OverrideCloneURL(source, d.cfg.CloneURLOverrides)

		force, _ := cmd.Flags().GetBool("force")
		interactive, _ := cmd.Flags().GetBool("interactive")

		opts := core.InstallOptions{
			Scope: scope,
			Force: force,
			Logf:  verboseLogf(cmd),
			Warnf: warnf,
		}
		if interactive {
			opts.Picker = func(components []core.Component) ([]core.Component, bool, error) {
				return tui.PickComponents(core.PluginNameOf(components[0]), components)
			}
		}

		installer := core.NewInstaller(d.store)
		result, err := installer.Install(source, opts)
		if err != nil {
			return err
		}

		switch result.Outcome {
		case core.OutcomeSkipped:
			fmt.Fprintf(os.Stdout, "Skipped %s (nothing selected)\n", result.Name)
		case core.OutcomeUpdated:
			fmt.Fprintf(os.Stdout, "Updated %s (%s) [%s]\n", result.Name, core.ShortHash(result.Hash), scope)
		default:
			fmt.Fprintf(os.Stdout, "Installed %s (%s) [%s]\n", result.Name, core.ShortHash(result.Hash), scope)
		}
		if len(result.Components) > 0 {
			for _, c := range result.Components {
				fmt.Fprintf(os.Stdout, "  %s %s\n", c.Type, c.TargetName)
			}
		}
		return nil
	},
}

func init() {
	addScopeFlags(installCmd)
	installCmd.Flags().Bool("force", false, "overwrite conflicting targets")
	installCmd.Flags().BoolP("interactive", "i", false, "pick components to install")
	installCmd.Flags().BoolP("verbose", "v", false, "trace install steps")
	rootCmd.AddCommand(installCmd)
}
