package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plugrow/plugrow/internal/core"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed plugins",
	Long: `List installed plugins. Without --scope, the user and project registries
are merged; a project-scope plugin shadows a user-scope plugin with the
same name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		var plugins []*core.InstalledPlugin
		scopeFlag, _ := cmd.Flags().GetString("scope")
		if scopeFlag != "" {
			scope, err := core.ParseScope(scopeFlag)
			if err != nil {
				return err
			}
			reg, warnings, err := d.store.Load(scope)
			if err != nil {
				return err
			}
			printWarnings(warnings)
			for _, p := range reg.Plugins {
				plugins = append(plugins, p)
			}
			sortPlugins(plugins)
		} else {
			var warnings []string
			plugins, warnings, err = d.store.GetAll()
			if err != nil {
				return err
			}
			printWarnings(warnings)
		}

		if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
			plugins = core.FilterPlugins(plugins, filter, d.paths)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(plugins, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling plugin list: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(data))
			return nil
		}

		if len(plugins) == 0 {
			fmt.Fprintln(os.Stdout, "No plugins installed.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tHASH\tSCOPE\tCOMPONENTS\tSOURCE")
		for _, p := range plugins {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				p.Name, core.ShortHash(p.Hash), p.Scope,
				describeComponents(p.Components), p.Source)
		}
		return w.Flush()
	},
}

func sortPlugins(plugins []*core.InstalledPlugin) {
	sort.Slice(plugins, func(i, j int) bool { return plugins[i].Name < plugins[j].Name })
}

func init() {
	addScopeFlags(listCmd)
	listCmd.Flags().String("filter", "", "fuzzy-filter plugins by name, source, or description")
	listCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}
