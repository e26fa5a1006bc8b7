package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/mesh"
	"github.com/matzehuels/trussmesh/pkg/pipeline"
	"github.com/matzehuels/trussmesh/pkg/vtk"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var ordering string
	var layerTags bool

	cmd := &cobra.Command{
		Use:   "inspect [mesh.vtk|segments.json|drawing.dxf]",
		Short: "Summarize a mesh",
		Long: `Print point, edge and tag counts, the bounding box, and the total member
length of a mesh. VTK files are read back as written; segment files are
meshed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Input: args[0], Ordering: ordering, LayerTags: layerTags}
			c.applyConfig(cmd, &opts)
			return c.runInspect(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&ordering, "ordering", "", "ordering for segment files: lexicographic (default), legacy")
	cmd.Flags().BoolVar(&layerTags, "layer-tags", false, "tag DXF segments with their layer name")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options) error {
	var (
		m     *mesh.Mesh
		title string
		err   error
	)
	if strings.EqualFold(filepath.Ext(opts.Input), ".vtk") {
		m, title, err = loadVTK(opts.Input)
	} else {
		m, err = c.buildMesh(ctx, opts)
	}
	if err != nil {
		return err
	}

	printSuccess("%s", opts.Input)
	if title != "" {
		printKeyValue("Title", title)
	}
	printKeyValue("Points", StyleNumber.Render(strconv.Itoa(m.NumPoints())))
	printKeyValue("Edges", StyleNumber.Render(strconv.Itoa(m.NumEdges())))
	printKeyValue("Length", fmt.Sprintf("%.3f", m.TotalLength()))
	if b := m.Bounds(); !b.IsEmpty() {
		printKeyValue("Min", b.Min.String())
		printKeyValue("Max", b.Max.String())
	}
	if m.HasTags() {
		printNewline()
		fmt.Println(tagTable(m))
	}
	return nil
}

// loadVTK reads a VTK file back into a mesh.
func loadVTK(path string) (*mesh.Mesh, string, error) {
	doc, err := vtk.Load(path)
	if err != nil {
		return nil, "", err
	}
	m, err := doc.Mesh()
	if err != nil {
		return nil, "", err
	}
	return m, doc.Title, nil
}

// buildMesh loads and builds a segment file without rendering.
func (c *CLI) buildMesh(ctx context.Context, opts pipeline.Options) (*mesh.Mesh, error) {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	segments, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return runner.Build(ctx, segments, opts)
}

func tagTable(m *mesh.Mesh) string {
	tags := m.Tags()
	rows := make([][]string, len(tags))
	for i, tag := range tags {
		name := tag
		if name == "" {
			name = "(untagged)"
		}
		rows[i] = []string{strconv.Itoa(i), name, strconv.Itoa(m.TagCount(tag))}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Index", "Tag", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
