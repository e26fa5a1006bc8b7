package mesh

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
)

func TestAssemble(t *testing.T) {
	points := []geom.Point3D{pt(0, 0, 0), pt(1, 0, 0), pt(1, 1, 0)}
	cells := [][2]int{{0, 1}, {1, 2}}

	m, err := Assemble(points, cells, []string{"x", "y"}, []int{1, 0})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.Edges[0].Tag != "y" || m.Edges[1].Tag != "x" {
		t.Errorf("tags = %q, %q", m.Edges[0].Tag, m.Edges[1].Tag)
	}
	if m.TagCount("x") != 1 || m.TagIndex("y") != 1 {
		t.Errorf("TagCount(x)=%d TagIndex(y)=%d", m.TagCount("x"), m.TagIndex("y"))
	}
}

func TestAssemble_Untagged(t *testing.T) {
	m, err := Assemble([]geom.Point3D{pt(0, 0, 0), pt(1, 0, 0)}, [][2]int{{0, 1}}, nil, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.HasTags() || m.Edges[0].TagIndex != NoTag {
		t.Errorf("unexpected tag data: %+v", m.Edges[0])
	}
	if m.TagIndex("anything") != NoTag {
		t.Error("TagIndex on an untagged mesh should be NoTag")
	}
}

func TestAssemble_Errors(t *testing.T) {
	points := []geom.Point3D{pt(0, 0, 0), pt(1, 0, 0)}
	tests := []struct {
		name     string
		cells    [][2]int
		tags     []string
		tagIndex []int
	}{
		{"point out of range", [][2]int{{0, 2}}, nil, nil},
		{"negative point", [][2]int{{-1, 0}}, nil, nil},
		{"duplicate tag", [][2]int{{0, 1}}, []string{"a", "a"}, []int{0}},
		{"index count mismatch", [][2]int{{0, 1}}, []string{"a"}, []int{0, 0}},
		{"tag index out of range", [][2]int{{0, 1}}, []string{"a"}, []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(points, tt.cells, tt.tags, tt.tagIndex)
			if !errors.Is(err, errors.ErrCodeInvalidMesh) {
				t.Errorf("Assemble() error = %v, want INVALID_MESH", err)
			}
		})
	}
}

func TestValidate_PointIDs(t *testing.T) {
	m := &Mesh{Points: []Point{{ID: 1}}}
	if err := m.Validate(); !errors.Is(err, errors.ErrCodeInvalidMesh) {
		t.Errorf("Validate() = %v, want INVALID_MESH", err)
	}
}

func TestValidate_TagIndexWithoutTags(t *testing.T) {
	m := &Mesh{
		Points: []Point{{ID: 0}, {ID: 1}},
		Edges:  []Edge{{A: 0, B: 1, TagIndex: 0}},
	}
	if err := m.Validate(); !errors.Is(err, errors.ErrCodeInvalidMesh) {
		t.Errorf("Validate() = %v, want INVALID_MESH", err)
	}
}

func TestMesh_Measures(t *testing.T) {
	m := Build([]geom.Segment{
		geom.NewSegment(pt(0, 0, 0), pt(3, 4, 0)),
		geom.NewSegment(pt(3, 4, 0), pt(3, 4, 2)),
	})
	if got := m.TotalLength(); math.Abs(got-7) > 1e-12 {
		t.Errorf("TotalLength() = %v, want 7", got)
	}
	b := m.Bounds()
	if b.Min != pt(0, 0, 0) || b.Max != pt(3, 4, 2) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestMesh_SegmentsRoundTrip(t *testing.T) {
	segs := []geom.Segment{
		geom.NewTaggedSegment(pt(0, 0, 0), pt(1, 0, 0), "a"),
		geom.NewSegment(pt(1, 0, 0), pt(2, 0, 0)),
	}
	m := Build(segs)
	again := Build(m.Segments())
	if !reflect.DeepEqual(again.Edges, m.Edges) || !reflect.DeepEqual(again.Points, m.Points) {
		t.Error("rebuilding from Segments() changed the mesh")
	}
}

func TestLabels(t *testing.T) {
	m := Build([]geom.Segment{
		geom.NewTaggedSegment(pt(0, 0, 0), pt(2, 0, 0), "top"),
		geom.NewSegment(pt(2, 0, 0), pt(2, 2, 0)),
	})
	got := m.Labels()
	want := []Label{
		{Kind: LabelPoint, ID: 0, Text: "n:0", Position: pt(0, 0, 0)},
		{Kind: LabelPoint, ID: 1, Text: "n:1", Position: pt(2, 0, 0)},
		{Kind: LabelPoint, ID: 2, Text: "n:2", Position: pt(2, 2, 0)},
		{Kind: LabelEdge, ID: 0, Text: "e:0 top", Position: pt(1, 0, 0)},
		{Kind: LabelEdge, ID: 1, Text: "e:1", Position: pt(2, 1, 0)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() =\n%+v\nwant\n%+v", got, want)
	}
}
