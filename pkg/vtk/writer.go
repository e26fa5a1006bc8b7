package vtk

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/mesh"
)

const (
	// Version is the first line of every file.
	Version = "# vtk DataFile Version 3.0"

	// DefaultTitle is written when Options.Title is empty.
	DefaultTitle = "trussmesh output"

	// CellTypeLine is the VTK cell type of a 2-node line.
	CellTypeLine = 3

	tagsMarker = " -- tags:"
	tagSep     = ";"
)

// Options configures [Write] and [Export].
type Options struct {
	// Title is the free-text second line. Defaults to DefaultTitle.
	Title string

	// Factor scales every coordinate, converting source units into the
	// export unit. Zero means 1.
	Factor float64
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o Options) factor() float64 {
	if o.Factor == 0 {
		return 1
	}
	return o.Factor
}

// Write serializes m to w.
//
// The title and tag names must fit on a single line; a line break in either
// is rejected with INVALID_INPUT before anything is written. All other errors
// come from w and carry IO_FAILURE.
func Write(w io.Writer, m *mesh.Mesh, opts Options) error {
	title := opts.title()
	if err := errors.ValidateTitle(title); err != nil {
		return err
	}
	tags := m.Tags()
	for _, t := range tags {
		if err := errors.ValidateTag(t); err != nil {
			return err
		}
	}

	ew := &errWriter{w: bufio.NewWriter(w)}
	writeHeader(ew, title, tags)
	writePoints(ew, m, opts.factor())
	writeCells(ew, m)
	if len(tags) > 0 {
		writeCellData(ew, m)
	}
	if ew.err == nil {
		ew.err = ew.w.Flush()
	}
	return errors.IOFailure(ew.err, "write vtk")
}

// Export writes m to the file at path, creating or truncating it.
// The file is closed on every return path.
func Export(path string, m *mesh.Mesh, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.IOFailure(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IOFailure(cerr, "close %s", path)
		}
	}()
	return Write(f, m, opts)
}

func writeHeader(w *errWriter, title string, tags []string) {
	w.line(Version)
	if len(tags) > 0 {
		w.line(title + tagsMarker + strings.Join(tags, tagSep))
	} else {
		w.line(title)
	}
	w.line("ASCII")
	w.line("DATASET UNSTRUCTURED_GRID")
	w.line("")
}

func writePoints(w *errWriter, m *mesh.Mesh, factor float64) {
	w.printf("POINTS %d float\n", m.NumPoints())
	for _, p := range m.Points {
		s := p.Scale(factor)
		w.printf("%15.3f %15.3f %15.3f\n", s.X, s.Y, s.Z)
	}
	w.line("")
}

func writeCells(w *errWriter, m *mesh.Mesh) {
	n := m.NumEdges()
	w.printf("CELLS %d %d\n", n, 3*n)
	for _, e := range m.Edges {
		w.printf("2 %d %d\n", e.A, e.B)
	}
	w.line("")

	w.printf("CELL_TYPES %d\n", n)
	for range m.Edges {
		w.printf("%d\n", CellTypeLine)
	}
	w.line("")
}

func writeCellData(w *errWriter, m *mesh.Mesh) {
	w.printf("CELL_DATA %d\n", m.NumEdges())
	w.line("SCALARS Tag int 1")
	w.line("LOOKUP_TABLE default")
	for _, e := range m.Edges {
		w.printf("%d\n", e.TagIndex)
	}
	w.line("")
}

// errWriter keeps the first write error and turns later writes into no-ops.
type errWriter struct {
	w   *bufio.Writer
	err error
}

func (w *errWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *errWriter) line(s string) {
	if w.err != nil {
		return
	}
	if _, w.err = w.w.WriteString(s); w.err == nil {
		w.err = w.w.WriteByte('\n')
	}
}
