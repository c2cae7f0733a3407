package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/plugrow/plugrow/internal/core"
)

var infoCmd = &cobra.Command{
	Use:   "info <plugin-name>",
	Short: "Show details of an installed plugin",
	Long: `Show the registry record of an installed plugin: hash, source, install
time, and every installed component.

With --render, print one of the plugin's markdown components rendered for
the terminal. Pass the component's target name (as shown by info); for a
skill, its SKILL.md is rendered.`,
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

		if renderTarget, _ := cmd.Flags().GetString("render"); renderTarget != "" {
			return renderComponent(plugin, renderTarget, d.paths)
		}

		fmt.Fprintf(os.Stdout, "Name:         %s\n", plugin.Name)
		fmt.Fprintf(os.Stdout, "Hash:         %s (%s)\n", core.ShortHash(plugin.Hash), plugin.Hash)
		fmt.Fprintf(os.Stdout, "Scope:        %s\n", plugin.Scope)
		fmt.Fprintf(os.Stdout, "Source:       %s\n", plugin.Source)
		fmt.Fprintf(os.Stdout, "Installed at: %s\n", plugin.InstalledAt.Format("2006-01-02 15:04:05 MST"))
		if desc := core.DescribePlugin(plugin, d.paths); desc != "" {
			fmt.Fprintf(os.Stdout, "Description:  %s\n", desc)
		}
		fmt.Fprintln(os.Stdout, "Components:")
		for _, t := range []core.ComponentType{core.TypeCommand, core.TypeAgent, core.TypeSkill} {
			for _, target := range plugin.Components.ForType(t) {
				fmt.Fprintf(os.Stdout, "  %-8s %s\n", t, target)
			}
		}
		return nil
	},
}

// renderComponent pretty-prints one installed markdown component.
func renderComponent(plugin *core.InstalledPlugin, targetName string, paths core.Paths) error {
	for _, t := range []core.ComponentType{core.TypeCommand, core.TypeAgent, core.TypeSkill} {
		for _, target := range plugin.Components.ForType(t) {
			if target != targetName {
				continue
			}
			path := paths.TargetPath(plugin.Scope, core.Component{Type: t, TargetName: target})
			if t == core.TypeSkill {
				path = filepath.Join(path, "SKILL.md")
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading component: %w", err)
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("creating renderer: %w", err)
			}
			out, err := r.Render(string(content))
			if err != nil {
				return fmt.Errorf("rendering markdown: %w", err)
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		}
	}
	return fmt.Errorf("plugin %q has no component %q", plugin.Name, targetName)
}

func init() {
	addScopeFlags(infoCmd)
	infoCmd.Flags().String("render", "", "render a markdown component by target name")
	rootCmd.AddCommand(infoCmd)
}
