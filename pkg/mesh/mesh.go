package mesh

import (
	"slices"

	"cogentcore.org/core/base/keylist"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
)

// NoTag is the tag index of edges in a mesh without tag data.
const NoTag = -1

// Point is a deduplicated mesh vertex.
type Point struct {
	ID int
	geom.Point3D
}

// Edge is a 2-node line cell between points A and B.
type Edge struct {
	ID       int
	A, B     int    // point ids, in segment endpoint order
	Tag      string // "" for untagged segments
	Tagged   bool   // whether the source segment carried a tag
	TagIndex int    // index into Mesh.Tags, or NoTag
}

// Mesh is the output of [Build]: points sorted by position with ids equal to
// their index, edges sorted by midpoint, and the tag dictionary.
//
// A Mesh is not modified after it is built and may be shared between
// goroutines for reading.
type Mesh struct {
	Points []Point
	Edges  []Edge

	// tags maps each tag to the number of edges carrying it, in dictionary order.
	tags keylist.List[string, int]
}

// NumPoints returns the number of points.
func (m *Mesh) NumPoints() int { return len(m.Points) }

// NumEdges returns the number of edges.
func (m *Mesh) NumEdges() int { return len(m.Edges) }

// HasTags reports whether the mesh carries tag data.
func (m *Mesh) HasTags() bool {
	return m.tags.Len() > 0
}

// Tags returns the tag dictionary in index order.
func (m *Mesh) Tags() []string {
	return slices.Clone(m.tags.Keys)
}

// TagIndex returns the dictionary index of tag, or NoTag.
func (m *Mesh) TagIndex(tag string) int {
	if m.tags.Len() == 0 {
		return NoTag
	}
	return m.tags.IndexByKey(tag)
}

// TagCount returns how many edges carry tag.
func (m *Mesh) TagCount(tag string) int {
	n, _ := m.tags.AtTry(tag)
	return n
}

// EdgeEnds returns the positions of the two endpoints of e.
func (m *Mesh) EdgeEnds(e Edge) (geom.Point3D, geom.Point3D) {
	return m.Points[e.A].Point3D, m.Points[e.B].Point3D
}

// Bounds returns the bounding box of all points.
func (m *Mesh) Bounds() geom.Bounds {
	b := geom.NewBounds()
	for _, p := range m.Points {
		b.Extend(p.Point3D)
	}
	return b
}

// TotalLength returns the summed length of all edges in source units.
func (m *Mesh) TotalLength() float64 {
	var sum float64
	for _, e := range m.Edges {
		a, b := m.EdgeEnds(e)
		sum += geom.Distance(a, b)
	}
	return sum
}

// Segments reconstructs the segments of the mesh in edge order.
func (m *Mesh) Segments() []geom.Segment {
	out := make([]geom.Segment, len(m.Edges))
	for i, e := range m.Edges {
		a, b := m.EdgeEnds(e)
		out[i] = geom.Segment{A: a, B: b, Tag: e.Tag, Tagged: e.Tagged}
	}
	return out
}

// Validate checks that every edge references existing points and a valid tag
// index. [Build] always produces valid meshes; Validate is meant for meshes
// assembled from external data, such as a parsed VTK file.
func (m *Mesh) Validate() error {
	for i, p := range m.Points {
		if p.ID != i {
			return errors.New(errors.ErrCodeInvalidMesh, "point %d has id %d", i, p.ID)
		}
	}
	n := len(m.Points)
	ntags := m.tags.Len()
	for i, e := range m.Edges {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			return errors.New(errors.ErrCodeInvalidMesh, "edge %d references point outside 0..%d: [%d %d]", i, n-1, e.A, e.B)
		}
		switch {
		case ntags == 0 && e.TagIndex != NoTag:
			return errors.New(errors.ErrCodeInvalidMesh, "edge %d has tag index %d but the mesh has no tags", i, e.TagIndex)
		case ntags > 0 && (e.TagIndex < 0 || e.TagIndex >= ntags):
			return errors.New(errors.ErrCodeInvalidMesh, "edge %d tag index %d outside 0..%d", i, e.TagIndex, ntags-1)
		}
	}
	return nil
}

// Assemble creates a mesh from already numbered data without sorting or
// deduplicating. cells holds point index pairs; tagIndex is either nil or
// parallel to cells and indexes into tags.
func Assemble(points []geom.Point3D, cells [][2]int, tags []string, tagIndex []int) (*Mesh, error) {
	m := &Mesh{
		Points: make([]Point, len(points)),
		Edges:  make([]Edge, len(cells)),
	}
	for i, p := range points {
		m.Points[i] = Point{ID: i, Point3D: p}
	}
	for _, t := range tags {
		if err := m.tags.Add(t, 0); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMesh, err, "duplicate tag %q", t)
		}
	}
	if tagIndex != nil && len(tagIndex) != len(cells) {
		return nil, errors.New(errors.ErrCodeInvalidMesh, "%d tag indices for %d cells", len(tagIndex), len(cells))
	}
	for i, c := range cells {
		e := Edge{ID: i, A: c[0], B: c[1], TagIndex: NoTag}
		if tagIndex != nil && len(tags) > 0 {
			e.TagIndex = tagIndex[i]
			if e.TagIndex >= 0 && e.TagIndex < len(tags) {
				e.Tag = tags[e.TagIndex]
				e.Tagged = true
				m.tags.Values[e.TagIndex]++
			}
		}
		m.Edges[i] = e
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
