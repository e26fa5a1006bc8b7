package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/mesh"
	"github.com/matzehuels/trussmesh/pkg/pipeline"
)

// annotateCommand creates the annotate command.
func (c *CLI) annotateCommand() *cobra.Command {
	var (
		flags exportFlags
		list  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "annotate [segments.json|drawing.dxf]",
		Short: "Write a DXF drawing labelled with point and edge ids",
		Long: `Write the mesh as a DXF drawing with one layer per tag and TEXT labels on
an "annotations" layer: "n:<id>" at every point and "e:<id> <tag>" at the
midpoint of every edge. The ids match the exported VTK file.

With --list the labels are also printed as a table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = []string{pipeline.FormatDXF}
			opts.Annotate = true
			c.applyConfig(cmd, &opts)
			opts.Formats = []string{pipeline.FormatDXF}
			if err := c.runExport(cmd.Context(), opts, flags.noCache); err != nil {
				return err
			}
			if list {
				return c.printLabels(cmd.Context(), opts)
			}
			return nil
		},
	}

	addExportFlags(cmd, &opts, &flags)
	cmd.Flags().BoolVar(&list, "list", false, "print the labels")

	return cmd
}

// printLabels prints every label with its position in export units.
func (c *CLI) printLabels(ctx context.Context, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	segments, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	m, err := runner.Build(ctx, segments, opts)
	if err != nil {
		return err
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	fmt.Println(labelTable(m.Labels(), opts.Factor()))
	return nil
}

func labelTable(labels []mesh.Label, factor float64) string {
	rows := make([][]string, len(labels))
	for i, l := range labels {
		p := l.Position.Scale(factor)
		rows[i] = []string{
			l.Text,
			fmt.Sprintf("%.3f", p.X),
			fmt.Sprintf("%.3f", p.Y),
			fmt.Sprintf("%.3f", p.Z),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Label", "X", "Y", "Z").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
