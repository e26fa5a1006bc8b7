package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
	"github.com/matzehuels/trussmesh/pkg/mesh"
)

// Plane selects the two coordinates used to place points in the diagram.
type Plane string

const (
	PlaneXZ Plane = "xz" // front elevation
	PlaneXY Plane = "xy" // plan
	PlaneYZ Plane = "yz" // side elevation
)

// ParsePlane validates a projection plane name. The empty string selects
// PlaneXZ.
func ParsePlane(s string) (Plane, error) {
	switch p := Plane(strings.ToLower(s)); p {
	case "":
		return PlaneXZ, nil
	case PlaneXZ, PlaneXY, PlaneYZ:
		return p, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid plane: %q (must be one of: xz, xy, yz)", s)
}

func (p Plane) project(q geom.Point3D) (float64, float64) {
	switch p {
	case PlaneXY:
		return q.X, q.Y
	case PlaneYZ:
		return q.Y, q.Z
	default:
		return q.X, q.Z
	}
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the coordinates to point labels.
	// When false, only the "n:<id>" label is shown.
	Detailed bool

	// Plane is the projection used for point positions. Defaults to PlaneXZ.
	Plane Plane

	// Size is the length in inches of the longest projected extent.
	// Defaults to 8.
	Size float64
}

// edgeColors cycles through tag indices; untagged meshes draw black.
var edgeColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#17becf"}

// ToDOT converts a mesh to an undirected Graphviz graph with every point
// pinned to its projected position. Edges are labelled "e:<id> <tag>" and
// coloured by tag.
func ToDOT(m *mesh.Mesh, opts Options) string {
	plane := opts.Plane
	if plane == "" {
		plane = PlaneXZ
	}
	scale := fitScale(m, plane, opts.Size)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.35, fixedsize=true];\n")
	buf.WriteString("  edge [fontsize=9, penwidth=2];\n")
	buf.WriteString("\n")

	for _, p := range m.Points {
		x, y := plane.project(p.Point3D)
		fmt.Fprintf(&buf, "  %s [label=%s, pos=\"%.3f,%.3f!\"];\n", quote(nodeID(p.ID)), fmtLabel(p, opts.Detailed), x*scale, y*scale)
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		attrs := fmtAttrs(e)
		fmt.Fprintf(&buf, "  %s -- %s [%s];\n", quote(nodeID(e.A)), quote(nodeID(e.B)), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string {
	return "n" + strconv.Itoa(id)
}

// dotEscaper escapes a DOT quoted string. Other runes pass through as UTF-8;
// newlines become the \n line break.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func fmtLabel(p mesh.Point, detailed bool) string {
	if !detailed {
		return quote(mesh.PointLabel(p))
	}
	return quote(mesh.PointLabel(p) + "\n" + p.Point3D.String())
}

func fmtAttrs(e mesh.Edge) []string {
	attrs := []string{"label=" + quote(mesh.EdgeLabel(e))}
	if e.TagIndex >= 0 {
		attrs = append(attrs, "color="+quote(edgeColors[e.TagIndex%len(edgeColors)]))
	}
	return attrs
}

// fitScale returns the factor that maps the longest projected extent onto
// size inches.
func fitScale(m *mesh.Mesh, plane Plane, size float64) float64 {
	if size <= 0 {
		size = 8
	}
	b := m.Bounds()
	if b.IsEmpty() {
		return 1
	}
	w, h := plane.project(b.Size())
	extent := math.Max(w, h)
	if extent == 0 {
		return 1
	}
	return size / extent
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato layout, which
// keeps the pinned point positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
