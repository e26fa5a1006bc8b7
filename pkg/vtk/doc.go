// Package vtk reads and writes truss meshes in the VTK legacy ASCII format.
//
// # Output Layout
//
// [Write] emits an UNSTRUCTURED_GRID dataset with one 2-node line cell
// (VTK cell type 3) per mesh edge:
//
//	# vtk DataFile Version 3.0
//	trussmesh output -- tags:top;bottom
//	ASCII
//	DATASET UNSTRUCTURED_GRID
//
//	POINTS 3 float
//	          0.000           0.000           0.000
//	         25.400           0.000           0.000
//	         50.800           0.000           0.000
//
//	CELLS 2 6
//	2 0 1
//	2 1 2
//
//	CELL_TYPES 2
//	3
//	3
//
//	CELL_DATA 2
//	SCALARS Tag int 1
//	LOOKUP_TABLE default
//	0
//	1
//
// The " -- tags:" suffix on the title line and the CELL_DATA block are only
// written when the mesh carries a tag dictionary. The tag names live in the
// title because legacy VTK has no string cell data; the integer scalars index
// into that list.
//
// Coordinates are multiplied by [Options.Factor] and printed with three
// decimals in 15-character columns.
//
// # Reading
//
// [Read] parses files in the same layout, including files written by other
// tools that use polygon or volume cells. [Document.Mesh] converts a document
// consisting only of line cells back into a [mesh.Mesh].
//
// # Errors
//
// Write failures are reported with code IO_FAILURE, malformed input to [Read]
// with INVALID_FORMAT. The writer does not validate geometry: an edge that
// references a missing point is written as is.
//
// [mesh.Mesh]: github.com/matzehuels/trussmesh/pkg/mesh.Mesh
package vtk
