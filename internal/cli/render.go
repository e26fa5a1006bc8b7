package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/pipeline"
)

// renderCommand creates the render command for the node-link preview.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags    exportFlags
		detailed bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [segments.json|drawing.dxf]",
		Short: "Draw the mesh connectivity as SVG",
		Long: `Draw the mesh as a node-link diagram: points pinned to their position in the
chosen projection plane, labelled "n:<id>", edges labelled "e:<id> <tag>"
and coloured by tag. Use -f dot for the Graphviz source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(flags.formats)
			if len(opts.Formats) == 0 {
				opts.Formats = []string{pipeline.FormatSVG}
			}
			opts.Annotate = detailed
			c.applyConfig(cmd, &opts)
			return c.runExport(cmd.Context(), opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default mesh.svg)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().StringVar(&opts.Plane, "plane", "", "projection plane: xz (default), xy, yz")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add coordinates to point labels")
	cmd.Flags().StringVar(&opts.Ordering, "ordering", "", "point and edge ordering: lexicographic (default), legacy")
	cmd.Flags().BoolVar(&opts.LayerTags, "layer-tags", false, "tag DXF segments with their layer name")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}
