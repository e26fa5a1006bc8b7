package mesh

import (
	"fmt"

	"github.com/matzehuels/trussmesh/pkg/geom"
)

// LabelKind distinguishes point labels from edge labels.
type LabelKind string

const (
	LabelPoint LabelKind = "point"
	LabelEdge  LabelKind = "edge"
)

// Label is an id annotation anchored at a position.
type Label struct {
	Kind     LabelKind    `json:"kind"`
	ID       int          `json:"id"`
	Text     string       `json:"text"`
	Position geom.Point3D `json:"position"`
}

// PointLabel returns "n:<id>".
func PointLabel(p Point) string {
	return fmt.Sprintf("n:%d", p.ID)
}

// EdgeLabel returns "e:<id> <tag>", or "e:<id>" for an empty tag.
func EdgeLabel(e Edge) string {
	if e.Tag == "" {
		return fmt.Sprintf("e:%d", e.ID)
	}
	return fmt.Sprintf("e:%d %s", e.ID, e.Tag)
}

// Labels returns one label per point followed by one label per edge.
// Edge labels sit at the edge midpoint.
func (m *Mesh) Labels() []Label {
	out := make([]Label, 0, len(m.Points)+len(m.Edges))
	for _, p := range m.Points {
		out = append(out, Label{Kind: LabelPoint, ID: p.ID, Text: PointLabel(p), Position: p.Point3D})
	}
	for _, e := range m.Edges {
		a, b := m.EdgeEnds(e)
		out = append(out, Label{Kind: LabelEdge, ID: e.ID, Text: EdgeLabel(e), Position: geom.Midpoint(a, b)})
	}
	return out
}
