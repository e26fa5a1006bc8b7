package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "trussmesh turns tagged line segments into truss meshes",
		Long: `trussmesh deduplicates the endpoints of tagged 3D line segments, numbers
points and edges deterministically, and exports the resulting truss mesh
as a VTK legacy file for finite element tools.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/trussmesh/config.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.annotateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.unitsCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}
