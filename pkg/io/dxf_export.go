package io

import (
	"io"
	"math"
	"os"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/mesh"
)

// AnnotationLayer holds the id labels in exported drawings.
const AnnotationLayer = "annotations"

// defaultLayer receives untagged edges and edges with an empty tag.
const defaultLayer = "0"

var layerColors = []color.ColorNumber{color.Red, color.Yellow, color.Green, color.Cyan, color.Blue, color.Magenta}

// DXFExportOptions configures [ExportDXF] and [WriteDXF].
type DXFExportOptions struct {
	// Factor scales coordinates. Zero means 1.
	Factor float64

	// Annotate adds the point and edge id labels as TEXT entities.
	Annotate bool

	// TextHeight is the label height in export units. Zero selects 2% of
	// the largest extent of the mesh.
	TextHeight float64
}

// ExportDXF writes m as a DXF drawing to path.
// Each tag gets its own layer; untagged edges go on layer "0".
func ExportDXF(path string, m *mesh.Mesh, opts DXFExportOptions) error {
	d, err := drawMesh(m, opts)
	if err != nil {
		return err
	}
	return errors.IOFailure(d.SaveAs(path), "write %s", path)
}

// WriteDXF writes m as a DXF drawing to w.
func WriteDXF(w io.Writer, m *mesh.Mesh, opts DXFExportOptions) error {
	tmp, err := os.CreateTemp("", "trussmesh-*.dxf")
	if err != nil {
		return errors.IOFailure(err, "create temp file")
	}
	name := tmp.Name()
	tmp.Close()
	defer os.Remove(name)

	if err := ExportDXF(name, m, opts); err != nil {
		return err
	}
	f, err := os.Open(name)
	if err != nil {
		return errors.IOFailure(err, "open %s", name)
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return errors.IOFailure(err, "copy dxf")
}

func drawMesh(m *mesh.Mesh, opts DXFExportOptions) (*drawing.Drawing, error) {
	factor := opts.Factor
	if factor == 0 {
		factor = 1
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0
	for i, tag := range m.Tags() {
		if tag == "" || tag == defaultLayer {
			continue
		}
		if _, err := d.AddLayer(tag, layerColors[i%len(layerColors)], dxf.DefaultLineType, false); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "add layer %q", tag)
		}
	}

	for _, e := range m.Edges {
		layer := defaultLayer
		if e.Tag != "" {
			layer = e.Tag
		}
		if err := d.ChangeLayer(layer); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "select layer %q", layer)
		}
		a, b := m.EdgeEnds(e)
		a, b = a.Scale(factor), b.Scale(factor)
		if _, err := d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "edge %d", e.ID)
		}
	}

	if opts.Annotate {
		if err := annotate(d, m, factor, opts.TextHeight); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func annotate(d *drawing.Drawing, m *mesh.Mesh, factor, height float64) error {
	if height <= 0 {
		size := m.Bounds().Size().Scale(factor)
		height = 0.02 * math.Max(size.X, math.Max(size.Y, size.Z))
		if height == 0 {
			height = 1
		}
	}
	var err error
	if m.TagIndex(AnnotationLayer) >= 0 {
		err = d.ChangeLayer(AnnotationLayer)
	} else {
		_, err = d.AddLayer(AnnotationLayer, color.White, dxf.DefaultLineType, true)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "select layer %q", AnnotationLayer)
	}
	for _, l := range m.Labels() {
		p := l.Position.Scale(factor)
		if _, err := d.Text(l.Text, p.X, p.Y, p.Z, height); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "label %q", l.Text)
		}
	}
	return nil
}
