package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
	"github.com/matzehuels/trussmesh/pkg/mesh"
)

// closedTriangle is a minimal drawing with one closed LWPOLYLINE on layer "web".
const closedTriangle = `0
SECTION
2
ENTITIES
0
LWPOLYLINE
8
web
90
3
70
1
10
0.0
20
0.0
10
4.0
20
0.0
10
4.0
20
3.0
0
ENDSEC
0
EOF
`

func TestReadSegmentsDXF(t *testing.T) {
	segs, err := ReadSegmentsDXF(strings.NewReader(closedTriangle), DXFOptions{LayerTags: true})
	if err != nil {
		t.Fatalf("ReadSegmentsDXF: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	for _, s := range segs {
		if !s.Tagged || s.Tag != "web" {
			t.Errorf("segment %+v not tagged with its layer", s)
		}
	}
	if segs[2].B != (geom.Point3D{}) {
		t.Errorf("closing segment ends at %v, want origin", segs[2].B)
	}

	untagged, err := ReadSegmentsDXF(strings.NewReader(closedTriangle), DXFOptions{})
	if err != nil {
		t.Fatalf("ReadSegmentsDXF: %v", err)
	}
	for _, s := range untagged {
		if s.Tagged {
			t.Errorf("segment %+v tagged without LayerTags", s)
		}
	}
}

func TestDXFCollector_Chain(t *testing.T) {
	c := dxfCollector{opts: DXFOptions{LayerTags: true}}
	c.chain("a", false, geom.Point3D{})
	if len(c.segments) != 0 {
		t.Errorf("single vertex produced segments: %+v", c.segments)
	}
	c.chain("a", true, geom.Point3D{}, geom.Point3D{X: 1}, geom.Point3D{})
	if len(c.segments) != 2 {
		t.Errorf("already closed chain: got %d segments, want 2", len(c.segments))
	}
	c.chain("bad;layer", false, geom.Point3D{}, geom.Point3D{X: 1})
	if !errors.Is(c.err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", c.err)
	}
}

func TestWriteDXF(t *testing.T) {
	m := mesh.Build([]geom.Segment{
		geom.NewTaggedSegment(geom.Point3D{}, geom.Point3D{X: 1}, "chord"),
		geom.NewSegment(geom.Point3D{X: 1}, geom.Point3D{X: 1, Y: 1}),
	})
	var buf bytes.Buffer
	if err := WriteDXF(&buf, m, DXFExportOptions{Annotate: true}); err != nil {
		t.Fatalf("WriteDXF: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"LINE", "chord", AnnotationLayer, "n:0", "e:0 chord"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
