package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	trussio "github.com/matzehuels/trussmesh/pkg/io"
	"github.com/matzehuels/trussmesh/pkg/mesh"
	"github.com/matzehuels/trussmesh/pkg/observability"
	"github.com/matzehuels/trussmesh/pkg/render/nodelink"
	"github.com/matzehuels/trussmesh/pkg/vtk"
)

// Render generates output artifacts in the requested formats.
// opts must have been validated with ValidateForRender.
func Render(ctx context.Context, m *mesh.Mesh, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	factor := opts.Factor()

	var dot string
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		observability.Pipeline().OnExportStart(ctx, format)

		var buf bytes.Buffer
		var err error
		switch format {
		case FormatVTK:
			err = vtk.Write(&buf, m, vtk.Options{Title: opts.Title, Factor: factor})
		case FormatJSON:
			err = trussio.WriteMeshJSON(&buf, m, factor)
		case FormatDXF:
			err = trussio.WriteDXF(&buf, m, trussio.DXFExportOptions{Factor: factor, Annotate: opts.Annotate})
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(m, nodelink.Options{
					Detailed: opts.Annotate,
					Plane:    nodelink.Plane(opts.Plane),
				})
			}
			if format == FormatDOT {
				buf.WriteString(dot)
				break
			}
			var svg []byte
			svg, err = nodelink.RenderSVG(ctx, dot)
			buf.Write(svg)
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}

		observability.Pipeline().OnExportComplete(ctx, format, buf.Len(), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = buf.Bytes()
	}
	return artifacts, nil
}
