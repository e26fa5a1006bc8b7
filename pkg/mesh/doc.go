// Package mesh builds a truss mesh from an unordered set of line segments.
//
// # Overview
//
// [Build] takes the segments a caller extracted from its scene and produces a
// [Mesh]: a deduplicated point list with stable integer ids, one edge per
// segment referencing those ids, and an ordered dictionary of tag strings.
// The result feeds the VTK exporter in package vtk and the other sinks.
//
//	m := mesh.Build([]geom.Segment{
//	    geom.NewTaggedSegment(geom.Point3D{0, 0, 0}, geom.Point3D{1, 0, 0}, "A"),
//	    geom.NewTaggedSegment(geom.Point3D{1, 0, 0}, geom.Point3D{2, 0, 0}, "B"),
//	})
//	// m.Points: 3 points, ids 0..2
//	// m.Edges:  [0 1] tag A, [1 2] tag B
//	// m.Tags(): [A B]
//
// # Deduplication
//
// Endpoints are merged by exact coordinate equality. Each distinct coordinate
// becomes one [Point]. Edges are never merged, even when two segments coincide.
//
// # Ordering
//
// Edges are sorted by the position of their midpoint and points by their
// position, using the [Ordering] selected with [WithOrdering]. Ids are the
// sorted positions. Edges with the same midpoint are ordered by their
// endpoints and then their tag, and positions the legacy key cannot tell apart
// fall back to (z, y, x), so the output does not depend on the order of the
// input segments. Negative zero is written as zero.
//
// # Tags
//
// A mesh carries tag data only if at least one segment is tagged. In that
// case every edge gets a tag index; an untagged segment contributes the empty
// string, which becomes a dictionary entry of its own. Tags enter the
// dictionary in the order they are first seen while walking the sorted edges.
// Without any tagged segment the dictionary is empty and every
// [Edge.TagIndex] is -1.
//
// # Annotations
//
// [Mesh.Labels] returns the id labels a UI draws next to the geometry:
// "n:<id>" at every point and "e:<index> <tag>" at every edge midpoint.
package mesh
