package vtk

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
	"github.com/matzehuels/trussmesh/pkg/mesh"
)

// Cell is one VTK cell: its type code and the point indices it connects.
type Cell struct {
	Type   int
	Points []int
}

// Document is the parsed content of a legacy UNSTRUCTURED_GRID file.
type Document struct {
	Title  string
	Tags   []string // from the " -- tags:" title suffix, nil if absent
	Points []geom.Point3D
	Cells  []Cell

	// TagIndex holds the CELL_DATA scalars, one per cell, or nil when the
	// file has no cell data.
	TagIndex []int
}

// Read parses a VTK legacy ASCII unstructured grid from r.
// Only the sections written by [Write] are understood; POINT_DATA and
// binary files are rejected with UNSUPPORTED.
func Read(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	version, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(version, "# vtk DataFile Version") {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "not a vtk legacy file: %q", version)
	}

	titleLine, err := readLine(br)
	if err != nil {
		return nil, err
	}
	doc := &Document{Title: titleLine}
	if i := strings.LastIndex(titleLine, tagsMarker); i >= 0 {
		doc.Title = titleLine[:i]
		doc.Tags = strings.Split(titleLine[i+len(tagsMarker):], tagSep)
	}

	tok := newTokenizer(br)
	if enc := tok.next(); enc != "ASCII" {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported encoding %q", enc)
	}
	if kw, ds := tok.next(), tok.next(); kw != "DATASET" || ds != "UNSTRUCTURED_GRID" {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported dataset %q", strings.TrimSpace(kw+" "+ds))
	}

	for {
		section := tok.next()
		if section == "" {
			break
		}
		switch section {
		case "POINTS":
			err = doc.readPoints(tok)
		case "CELLS":
			err = doc.readCells(tok)
		case "CELL_TYPES":
			err = doc.readCellTypes(tok)
		case "CELL_DATA":
			err = doc.readCellData(tok)
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unsupported section %q", section)
		}
		if err != nil {
			return nil, err
		}
	}
	if tok.err != nil {
		return nil, errors.IOFailure(tok.err, "read vtk")
	}
	return doc, nil
}

// Load reads the VTK file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.IOFailure(err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

func (d *Document) readPoints(t *tokenizer) error {
	n, err := t.count("POINTS")
	if err != nil {
		return err
	}
	t.next() // data type
	d.Points = make([]geom.Point3D, 0, capacity(n))
	for i := 0; i < n; i++ {
		var c [3]float64
		for j := range c {
			if c[j], err = t.atof("point %d", i); err != nil {
				return err
			}
		}
		d.Points = append(d.Points, geom.Point3D{X: c[0], Y: c[1], Z: c[2]})
	}
	return nil
}

func (d *Document) readCells(t *tokenizer) error {
	n, err := t.count("CELLS")
	if err != nil {
		return err
	}
	size, err := t.count("CELLS size")
	if err != nil {
		return err
	}
	d.Cells = make([]Cell, 0, capacity(n))
	read := 0
	for i := 0; i < n; i++ {
		k, err := t.atoi("cell %d size", i)
		if err != nil {
			return err
		}
		if k < 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "cell %d has negative size %d", i, k)
		}
		pts := make([]int, 0, capacity(k))
		for j := 0; j < k; j++ {
			p, err := t.atoi("cell %d point %d", i, j)
			if err != nil {
				return err
			}
			pts = append(pts, p)
		}
		d.Cells = append(d.Cells, Cell{Points: pts})
		read += k + 1
	}
	if read != size {
		return errors.New(errors.ErrCodeInvalidFormat, "CELLS declares size %d, found %d", size, read)
	}
	return nil
}

func (d *Document) readCellTypes(t *tokenizer) error {
	n, err := t.count("CELL_TYPES")
	if err != nil {
		return err
	}
	if n != len(d.Cells) {
		return errors.New(errors.ErrCodeInvalidFormat, "CELL_TYPES has %d entries for %d cells", n, len(d.Cells))
	}
	for i := range d.Cells {
		if d.Cells[i].Type, err = t.atoi("cell type %d", i); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) readCellData(t *tokenizer) error {
	n, err := t.count("CELL_DATA")
	if err != nil {
		return err
	}
	if n != len(d.Cells) {
		return errors.New(errors.ErrCodeInvalidFormat, "CELL_DATA has %d entries for %d cells", n, len(d.Cells))
	}
	if kw := t.next(); kw != "SCALARS" {
		return errors.New(errors.ErrCodeUnsupported, "unsupported cell data %q", kw)
	}
	t.next() // name
	t.next() // data type
	if t.peek() != "LOOKUP_TABLE" {
		t.next() // component count
	}
	if kw := t.next(); kw != "LOOKUP_TABLE" {
		return errors.New(errors.ErrCodeInvalidFormat, "expected LOOKUP_TABLE, got %q", kw)
	}
	t.next() // table name

	d.TagIndex = make([]int, n)
	for i := range d.TagIndex {
		// Some writers declare the scalars as float.
		v, err := t.atof("cell data %d", i)
		if err != nil {
			return err
		}
		d.TagIndex[i] = int(v)
	}
	return nil
}

// Mesh converts the document into a mesh. Every cell must be a 2-node line.
// Tag indices are applied only when the title carries a tag list.
func (d *Document) Mesh() (*mesh.Mesh, error) {
	cells := make([][2]int, len(d.Cells))
	for i, c := range d.Cells {
		if c.Type != CellTypeLine || len(c.Points) != 2 {
			return nil, errors.New(errors.ErrCodeUnsupported, "cell %d is not a line (type %d, %d points)", i, c.Type, len(c.Points))
		}
		cells[i] = [2]int{c.Points[0], c.Points[1]}
	}
	var tagIndex []int
	if len(d.Tags) > 0 {
		if d.TagIndex == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "title lists tags but the file has no CELL_DATA")
		}
		tagIndex = d.TagIndex
	}
	return mesh.Assemble(d.Points, cells, d.Tags, tagIndex)
}

func readLine(br *bufio.Reader) (string, error) {
	s, err := br.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		if err == io.EOF {
			return "", errors.New(errors.ErrCodeInvalidFormat, "unexpected end of vtk header")
		}
		return "", errors.IOFailure(err, "read vtk")
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// maxPrealloc bounds slices sized from counts declared in the file; longer
// sections grow as their records are read.
const maxPrealloc = 1 << 16

func capacity(n int) int {
	return min(n, maxPrealloc)
}

// tokenizer splits the body of the file into whitespace separated words.
type tokenizer struct {
	sc     *bufio.Scanner
	peeked string
	err    error
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

// next returns the next word, or "" at end of input.
func (t *tokenizer) next() string {
	if t.peeked != "" {
		s := t.peeked
		t.peeked = ""
		return s
	}
	if t.sc.Scan() {
		return t.sc.Text()
	}
	t.err = t.sc.Err()
	return ""
}

func (t *tokenizer) peek() string {
	if t.peeked == "" {
		t.peeked = t.next()
	}
	return t.peeked
}

func (t *tokenizer) atoi(format string, args ...any) (int, error) {
	s := t.next()
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, t.fail(s, err, format, args...)
	}
	return v, nil
}

func (t *tokenizer) atof(format string, args ...any) (float64, error) {
	s := t.next()
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, t.fail(s, err, format, args...)
	}
	return v, nil
}

func (t *tokenizer) count(what string) (int, error) {
	n, err := t.atoi("%s count", what)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "%s count is negative: %d", what, n)
	}
	return n, nil
}

func (t *tokenizer) fail(tok string, cause error, format string, args ...any) error {
	if t.err != nil {
		return errors.IOFailure(t.err, "read vtk")
	}
	if tok == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "unexpected end of file reading "+format, args...)
	}
	return errors.Wrap(errors.ErrCodeInvalidFormat, cause, "invalid "+format, args...)
}
