// Package pkg provides the core libraries of trussmesh.
//
// # Overview
//
// trussmesh turns an unordered set of tagged 3D line segments into a truss
// mesh: shared endpoints become one point, points and edges get stable ids,
// and tags are collected into a dictionary. The mesh is exported as a VTK
// legacy file for finite element tools, and as JSON, DXF, DOT or SVG for
// inspection.
//
// # Architecture
//
// The typical data flow:
//
//	segments.json / drawing.dxf
//	         ↓
//	    [io] package (import segments)
//	         ↓
//	    [mesh] package (deduplicate, order, number, tag)
//	         ↓
//	    [vtk], [io], [render/nodelink] packages (export)
//	         ↓
//	    VTK/JSON/DXF/DOT/SVG output
//
// # Quick Start
//
// Build a mesh and write it as VTK:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/trussmesh/pkg/geom"
//	    "github.com/matzehuels/trussmesh/pkg/mesh"
//	    "github.com/matzehuels/trussmesh/pkg/vtk"
//	)
//
//	m := mesh.Build([]geom.Segment{
//	    geom.NewTaggedSegment(geom.Point3D{X: 0}, geom.Point3D{X: 120}, "chord"),
//	    geom.NewTaggedSegment(geom.Point3D{X: 120}, geom.Point3D{X: 60, Z: 48}, "diagonal"),
//	})
//	err := vtk.Write(os.Stdout, m, vtk.Options{Title: "roof"})
//
// # Main Packages
//
// [geom] - Points, segments, bounds, and the two position orderings.
//
// [mesh] - The mesh builder, the tag dictionary, and id labels.
//
// [vtk] - VTK legacy ASCII writer and reader for 2-node line cells.
//
// [io] - Segment import from JSON and DXF, and JSON, msh and annotated DXF
// export.
//
// [render/nodelink] - Graphviz DOT and SVG diagrams of a mesh projected onto
// a coordinate plane.
//
// [units] - Length units and scale factors.
//
// [pipeline] - Load, build and render with caching, shared by the CLI and the
// HTTP API.
//
// [cache] - Cache backends (null, file, Redis, MongoDB) and key derivation.
//
// [errors] - Error codes, user messages, HTTP status mapping and input
// validation.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/mesh/...         # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// Redis and MongoDB backends are tested when TRUSSMESH_TEST_REDIS or
// TRUSSMESH_TEST_MONGO hold a server address.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/geom
// [mesh]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/mesh
// [vtk]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/vtk
// [io]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/render/nodelink
// [units]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/units
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/trussmesh/pkg/observability
package pkg
