// Package io reads line segments from interchange files and writes meshes
// in formats other than VTK.
//
// # Segment JSON
//
// The segment format is a single object with a "segments" array:
//
//	{
//	  "segments": [
//	    {"a": {"x": 0, "y": 0, "z": 0}, "b": {"x": 1, "y": 0, "z": 0}, "tag": "chord"},
//	    {"a": {"x": 1, "y": 0, "z": 0}, "b": {"x": 1, "y": 0, "z": 1}}
//	  ]
//	}
//
// A missing "tag" field marks an untagged segment. An explicit empty string
// ("tag": "") is a tagged segment whose tag happens to be empty; the
// difference matters because a single tagged segment makes the exporter
// write tag data for every edge.
//
// Use [ReadSegmentsJSON] for any io.Reader or [ImportSegmentsJSON] for a
// file path. [WriteSegmentsJSON] produces the same format.
//
// # DXF Drawings
//
// [ReadSegmentsDXF] extracts POLYLINE and LWPOLYLINE entities from the
// entities section and from block definitions. Polylines become one segment
// per consecutive vertex pair; a closed LWPOLYLINE also gets its closing
// segment. With [DXFOptions.LayerTags] set, the entity's layer name becomes
// the segment tag.
//
// [ExportDXF] writes a mesh as a DXF drawing with one layer per tag and,
// optionally, the id annotations on a separate layer.
//
// [ImportSegments] picks the reader from the file extension.
//
// # Mesh JSON
//
// [WriteMeshJSON] writes the "msh" document used by finite element tools:
//
//	{
//	  "verts": [{"id": 0, "tag": 0, "c": [0, 0]}, ...],
//	  "cells": [{"id": 0, "tag": 1, "geo": 0, "part": 0, "verts": [0, 1]}, ...],
//	  "tags": ["", "chord"]
//	}
//
// Coordinates are written in two dimensions when every z is zero. Cell tags
// hold the tag dictionary index.
package io
