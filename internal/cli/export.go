package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/pipeline"
)

// unitAsk makes --unit open the interactive unit picker.
const unitAsk = "ask"

// exportFlags holds the flags shared by export, annotate and render.
type exportFlags struct {
	formats string
	noCache bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export [segments.json|drawing.dxf]",
		Short: "Build a truss mesh and write it as VTK",
		Long: `Build a truss mesh from line segments and write it as a VTK legacy file.

Segments are read from a JSON segment document or from the POLYLINE and
LWPOLYLINE entities of a DXF drawing. Shared endpoints become one point;
points and edges are numbered in a deterministic order.

Other formats can be requested with -f (vtk, json, dxf, dot, svg). With more
than one format the output path is used as a base name.

Use --unit ask to pick the export unit interactively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(flags.formats)
			c.applyConfig(cmd, &opts)
			return c.runExport(cmd.Context(), opts, flags.noCache)
		},
	}

	addExportFlags(cmd, &opts, &flags)
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): vtk (default), json, dxf, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.Annotate, "annotate", false, "add id labels to dxf output and coordinates to dot/svg output")
	cmd.Flags().StringVar(&opts.Plane, "plane", "", "projection plane for dot/svg: xz (default), xy, yz")

	return cmd
}

// addExportFlags registers the load, build and unit flags.
func addExportFlags(cmd *cobra.Command, opts *pipeline.Options, flags *exportFlags) {
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title line of the VTK file")
	cmd.Flags().StringVarP(&opts.Unit, "unit", "u", "", "export unit: inch (default), feet, mm, cm, m, or ask")
	cmd.Flags().StringVar(&opts.SourceUnit, "source-unit", "", "unit of the input coordinates (default inch)")
	cmd.Flags().StringVar(&opts.Ordering, "ordering", "", "point and edge ordering: lexicographic (default), legacy")
	cmd.Flags().BoolVar(&opts.LayerTags, "layer-tags", false, "tag DXF segments with their layer name")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
}

// runExport runs the pipeline and writes every artifact to disk.
func (c *CLI) runExport(ctx context.Context, opts pipeline.Options, noCache bool) error {
	if opts.Unit == unitAsk {
		u, err := pickUnit()
		if err != nil {
			return err
		}
		opts.Unit = u.String()
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Meshing %s...", opts.Input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}

	paths := artifactPaths(opts.Output, opts.Formats)
	spinner.Update(fmt.Sprintf("Writing %d file(s)...", len(paths)))
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			spinner.StopWithError("Export failed")
			return err
		}
	}
	spinner.Stop()
	prog.done("export complete", "formats", opts.Formats)

	printSuccess("Mesh exported")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats, result.CacheInfo.LoadHit && result.CacheInfo.RenderHit)
	if slices.Contains(opts.Formats, pipeline.FormatVTK) {
		printNewline()
		printNextStep("Inspect", appName+" inspect "+paths[pipeline.FormatVTK])
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	return errors.IOFailure(os.WriteFile(path, data, 0o644), "write %s", path)
}
