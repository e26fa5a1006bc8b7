package io

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rpaloschi/dxf-go/document"
	"github.com/rpaloschi/dxf-go/entities"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
)

// DXFOptions configures DXF segment import.
type DXFOptions struct {
	// LayerTags tags every segment with the layer name of its entity.
	// Without it all segments are untagged.
	LayerTags bool
}

// ReadSegmentsDXF extracts line segments from a DXF drawing.
// Entities other than POLYLINE and LWPOLYLINE are ignored; draw single
// members as two-vertex polylines.
func ReadSegmentsDXF(r io.Reader, opts DXFOptions) ([]geom.Segment, error) {
	doc, err := document.DxfDocumentFromStream(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse dxf")
	}

	c := dxfCollector{opts: opts}
	for _, entity := range doc.Entities.Entities {
		c.add(entity)
	}
	for _, block := range doc.Blocks {
		for _, entity := range block.Entities {
			c.add(entity)
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.segments, nil
}

// ImportSegmentsDXF reads segments from the DXF file at path.
func ImportSegmentsDXF(path string, opts DXFOptions) ([]geom.Segment, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSegmentsDXF(f, opts)
}

// Input formats understood by [ReadSegments].
const (
	FormatJSON = "json"
	FormatDXF  = "dxf"
)

// FormatOf returns the input format implied by the extension of path.
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".dxf":
		return FormatDXF, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported input format %q (want .json or .dxf)", ext)
	}
}

// ReadSegments reads segments in the given input format from r.
func ReadSegments(r io.Reader, format string, opts DXFOptions) ([]geom.Segment, error) {
	switch format {
	case FormatJSON:
		return ReadSegmentsJSON(r)
	case FormatDXF:
		return ReadSegmentsDXF(r, opts)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported input format %q (want json or dxf)", format)
	}
}

// ImportSegments reads segments from path, choosing the reader by extension:
// ".json" for segment documents and ".dxf" for drawings.
func ImportSegments(path string, opts DXFOptions) ([]geom.Segment, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSegments(f, format, opts)
}

type dxfCollector struct {
	opts     DXFOptions
	segments []geom.Segment
	err      error
}

func (c *dxfCollector) add(entity any) {
	switch e := entity.(type) {
	case *entities.Polyline:
		pts := make([]geom.Point3D, 0, len(e.Vertices))
		for _, v := range e.Vertices {
			pts = append(pts, point(v.Location.X, v.Location.Y, v.Location.Z))
		}
		c.chain(e.LayerName, false, pts...)
	case *entities.LWPolyline:
		pts := make([]geom.Point3D, 0, len(e.Points))
		for _, v := range e.Points {
			pts = append(pts, point(v.Point.X, v.Point.Y, v.Point.Z))
		}
		c.chain(e.LayerName, e.Closed, pts...)
	}
}

// chain appends one segment per consecutive pair of pts.
func (c *dxfCollector) chain(layer string, closed bool, pts ...geom.Point3D) {
	if c.err != nil || len(pts) < 2 {
		return
	}
	if closed && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	if c.opts.LayerTags {
		if err := errors.ValidateTag(layer); err != nil {
			c.err = fmt.Errorf("layer %q: %w", layer, err)
			return
		}
	}
	for i := 1; i < len(pts); i++ {
		if c.opts.LayerTags {
			c.segments = append(c.segments, geom.NewTaggedSegment(pts[i-1], pts[i], layer))
		} else {
			c.segments = append(c.segments, geom.NewSegment(pts[i-1], pts[i]))
		}
	}
}

func point(x, y, z float64) geom.Point3D {
	return geom.Point3D{X: x, Y: y, Z: z}
}
