// Package nodelink renders truss meshes as node-link diagrams.
//
// # Overview
//
// The diagram is a quick connectivity preview: every point is a small
// circle labelled with its id, every edge a line labelled with its id and
// tag. Points are pinned to their coordinates projected onto one of the
// principal planes, so the picture looks like the structure rather than an
// abstract graph.
//
// # Usage
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Plane: nodelink.PlaneXZ})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: point labels include the coordinates
//   - Plane: xz (front, default), xy (plan) or yz (side)
//   - Size: length in inches of the longest projected extent
//
// Edges of tagged meshes are coloured by tag index.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
