package geom

import "math"

// Bounds is an axis-aligned bounding box.
// The zero value is not empty; use [NewBounds] to start accumulating.
type Bounds struct {
	Min, Max Point3D
}

// NewBounds returns an empty box that any extended point will replace.
func NewBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Point3D{inf, inf, inf},
		Max: Point3D{-inf, -inf, -inf},
	}
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p Point3D) {
	b.Min = Point3D{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)}
	b.Max = Point3D{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Size returns the extent along each axis.
func (b Bounds) Size() Point3D {
	if b.IsEmpty() {
		return Point3D{}
	}
	return Point3D{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}
