package geom

import (
	"cmp"
	"fmt"
	"math"
)

// Point3D is a position in source units.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// String formats the point as "(x, y, z)".
func (p Point3D) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Scale returns p with every component multiplied by f.
func (p Point3D) Scale(f float64) Point3D {
	return Point3D{p.X * f, p.Y * f, p.Z * f}
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point3D) Point3D {
	return Point3D{0.5 * (p.X + q.X), 0.5 * (p.Y + q.Y), 0.5 * (p.Z + q.Z)}
}

// Distance returns the euclidean distance between p and q.
func Distance(p, q Point3D) float64 {
	dx, dy, dz := q.X-p.X, q.Y-p.Y, q.Z-p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IsFinite reports whether no component is NaN or infinite.
func (p Point3D) IsFinite() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Segment is a tagged straight line between A and B.
//
// Tagged distinguishes a segment whose tag attribute was set (possibly to the
// empty string) from one that never had a tag.
type Segment struct {
	A, B   Point3D
	Tag    string
	Tagged bool
}

// NewSegment returns an untagged segment.
func NewSegment(a, b Point3D) Segment {
	return Segment{A: a, B: b}
}

// NewTaggedSegment returns a segment carrying tag.
func NewTaggedSegment(a, b Point3D, tag string) Segment {
	return Segment{A: a, B: b, Tag: tag, Tagged: true}
}

// Midpoint returns the center of the segment.
func (s Segment) Midpoint() Point3D {
	return Midpoint(s.A, s.B)
}

// Length returns the segment length in source units.
func (s Segment) Length() float64 {
	return Distance(s.A, s.B)
}

// LegacyKey returns the scalar sort key 1e6·z + 1e3·y + x.
func LegacyKey(p Point3D) float64 {
	return 1_000_000*p.Z + 1_000*p.Y + p.X
}

// CompareLegacy orders points by [LegacyKey].
func CompareLegacy(p, q Point3D) int {
	return cmp.Compare(LegacyKey(p), LegacyKey(q))
}

// CompareLexicographic orders points by z, then y, then x.
func CompareLexicographic(p, q Point3D) int {
	if c := cmp.Compare(p.Z, q.Z); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Y, q.Y); c != 0 {
		return c
	}
	return cmp.Compare(p.X, q.X)
}
