package mesh

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
)

// Ordering selects how points and edges are sorted before ids are assigned.
type Ordering string

const (
	// OrderLexicographic compares positions by (z, y, x).
	OrderLexicographic Ordering = "lexicographic"
	// OrderLegacy compares positions by the scalar key 1e6·z + 1e3·y + x.
	OrderLegacy Ordering = "legacy"
)

// DefaultOrdering is used when no ordering is configured.
const DefaultOrdering = OrderLexicographic

// ParseOrdering validates an ordering name. The empty string selects
// [DefaultOrdering].
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case "":
		return DefaultOrdering, nil
	case OrderLexicographic, OrderLegacy:
		return Ordering(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidOrdering, "invalid ordering: %q (must be one of: lexicographic, legacy)", s)
}

func (o Ordering) compare() func(p, q geom.Point3D) int {
	if o == OrderLegacy {
		return geom.CompareLegacy
	}
	return geom.CompareLexicographic
}

type config struct {
	ordering Ordering
}

// Option configures [Build].
type Option func(*config)

// WithOrdering selects the sort order. Unknown values fall back to
// [DefaultOrdering]; validate user input with [ParseOrdering].
func WithOrdering(o Ordering) Option {
	return func(c *config) {
		if _, err := ParseOrdering(string(o)); err == nil && o != "" {
			c.ordering = o
		}
	}
}

// Build deduplicates the endpoints of segments, numbers them, and returns the
// resulting mesh. An empty input yields an empty mesh.
func Build(segments []geom.Segment, opts ...Option) *Mesh {
	cfg := config{ordering: DefaultOrdering}
	for _, opt := range opts {
		opt(&cfg)
	}
	compare := cfg.ordering.compare()

	sorted := slices.Clone(segments)
	slices.SortStableFunc(sorted, func(a, b geom.Segment) int {
		return compareSegments(a, b, compare)
	})

	// Distinct endpoints, collected in sorted edge order.
	seen := make(map[coordKey]struct{}, 2*len(sorted))
	positions := make([]geom.Point3D, 0, 2*len(sorted))
	for _, s := range sorted {
		for _, p := range [2]geom.Point3D{s.A, s.B} {
			k := keyOf(p)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			positions = append(positions, geom.Point3D{X: p.X + 0, Y: p.Y + 0, Z: p.Z + 0})
		}
	}
	slices.SortStableFunc(positions, func(p, q geom.Point3D) int {
		return cmp.Or(compare(p, q), geom.CompareLexicographic(p, q))
	})

	m := &Mesh{
		Points: make([]Point, len(positions)),
		Edges:  make([]Edge, len(sorted)),
	}
	ids := make(map[coordKey]int, len(positions))
	for i, p := range positions {
		m.Points[i] = Point{ID: i, Point3D: p}
		ids[keyOf(p)] = i
	}

	withTags := slices.ContainsFunc(sorted, func(s geom.Segment) bool { return s.Tagged })
	for i, s := range sorted {
		e := Edge{
			ID:       i,
			A:        ids[keyOf(s.A)],
			B:        ids[keyOf(s.B)],
			Tag:      s.Tag,
			Tagged:   s.Tagged,
			TagIndex: NoTag,
		}
		if !s.Tagged {
			e.Tag = ""
		}
		if withTags {
			e.TagIndex = m.addTag(e.Tag)
		}
		m.Edges[i] = e
	}
	return m
}

// compareSegments orders segments by midpoint, breaking ties on the endpoints
// and then the tag. The legacy key can tie distinct positions, so endpoints are
// also compared lexicographically. Segments that compare equal write
// identically.
func compareSegments(a, b geom.Segment, compare func(p, q geom.Point3D) int) int {
	return cmp.Or(
		compare(a.Midpoint(), b.Midpoint()),
		compare(a.A, b.A),
		compare(a.B, b.B),
		geom.CompareLexicographic(a.A, b.A),
		geom.CompareLexicographic(a.B, b.B),
		cmp.Compare(rank(a.Tagged), rank(b.Tagged)),
		cmp.Compare(a.Tag, b.Tag),
	)
}

func rank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// coordKey identifies a position by the bits of its coordinates, so that
// NaN components still deduplicate. Negative zero is folded into zero.
type coordKey [3]uint64

func keyOf(p geom.Point3D) coordKey {
	return coordKey{
		math.Float64bits(p.X + 0),
		math.Float64bits(p.Y + 0),
		math.Float64bits(p.Z + 0),
	}
}

// addTag returns the dictionary index of tag, appending it on first use.
func (m *Mesh) addTag(tag string) int {
	idx := m.tags.IndexByKey(tag)
	if idx < 0 {
		_ = m.tags.Add(tag, 0)
		idx = m.tags.Len() - 1
	}
	m.tags.Values[idx]++
	return idx
}
