package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/mesh"
)

// mshLine is the msh geometry code of a 2-node line cell.
const mshLine = 0

type mshFile struct {
	Verts []mshVert `json:"verts"`
	Cells []mshCell `json:"cells"`
	Tags  []string  `json:"tags,omitempty"`
}

type mshVert struct {
	ID  int       `json:"id"`
	Tag int       `json:"tag"`
	C   []float64 `json:"c"`
}

type mshCell struct {
	ID    int   `json:"id"`
	Tag   int   `json:"tag"`
	Geo   int   `json:"geo"`
	Part  int   `json:"part"`
	Verts []int `json:"verts"`
}

// WriteMeshJSON writes m as an msh document with coordinates scaled by
// factor (zero means 1). Meshes without tags get cell tag 0 throughout.
func WriteMeshJSON(w io.Writer, m *mesh.Mesh, factor float64) error {
	if factor == 0 {
		factor = 1
	}
	planar := true
	for _, p := range m.Points {
		if p.Z != 0 {
			planar = false
			break
		}
	}

	out := mshFile{
		Verts: make([]mshVert, len(m.Points)),
		Cells: make([]mshCell, len(m.Edges)),
		Tags:  m.Tags(),
	}
	for i, p := range m.Points {
		s := p.Scale(factor)
		c := []float64{s.X, s.Y, s.Z}
		if planar {
			c = c[:2]
		}
		out.Verts[i] = mshVert{ID: p.ID, C: c}
	}
	for i, e := range m.Edges {
		tag := e.TagIndex
		if tag == mesh.NoTag {
			tag = 0
		}
		out.Cells[i] = mshCell{ID: e.ID, Tag: tag, Geo: mshLine, Verts: []int{e.A, e.B}}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.IOFailure(enc.Encode(out), "encode msh")
}

// ExportMeshJSON writes the msh document for m to path.
func ExportMeshJSON(path string, m *mesh.Mesh, factor float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.IOFailure(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IOFailure(cerr, "close %s", path)
		}
	}()
	return WriteMeshJSON(f, m, factor)
}
