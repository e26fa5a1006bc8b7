// Package geom provides the 3D primitives that trussmesh builds meshes from.
//
// # Overview
//
// A [Segment] is a straight line between two [Point3D] endpoints, optionally
// carrying a tag. Segments are supplied by a caller that owns the scene
// (a CAD plugin, a DXF drawing, a JSON file) and are read-only to the rest of
// the library.
//
// # Identity
//
// Points are compared with exact float equality. Two endpoints that differ in
// the last bit are distinct points; no snapping tolerance is applied. Because
// [Point3D] is a comparable struct it can be used directly as a map key.
//
// # Ordering
//
// Two orderings are available for building reproducible ids:
//
//   - [CompareLexicographic] compares (z, y, x) component by component.
//   - [LegacyKey] collapses a position into 1e6·z + 1e3·y + x, the scalar key
//     used by the SketchUp truss plugin. It misorders coordinates beyond
//     roughly 1000 units and sub-unit offsets, and is kept only to reproduce
//     files written by that exporter.
package geom
