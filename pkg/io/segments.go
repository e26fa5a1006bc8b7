package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
)

type segmentFile struct {
	Segments []segment `json:"segments"`
}

type segment struct {
	A   geom.Point3D `json:"a"`
	B   geom.Point3D `json:"b"`
	Tag *string      `json:"tag,omitempty"`
}

// ReadSegmentsJSON decodes a segment document from r.
//
// Tags containing ';' or a line break are rejected with INVALID_INPUT
// because they cannot be represented in the VTK title line. Malformed JSON
// yields INVALID_FORMAT. ReadSegmentsJSON does not close r.
func ReadSegmentsJSON(r io.Reader) ([]geom.Segment, error) {
	var data segmentFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode segments")
	}

	out := make([]geom.Segment, len(data.Segments))
	for i, s := range data.Segments {
		if s.Tag == nil {
			out[i] = geom.NewSegment(s.A, s.B)
			continue
		}
		if err := errors.ValidateTag(*s.Tag); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out[i] = geom.NewTaggedSegment(s.A, s.B, *s.Tag)
	}
	return out, nil
}

// ImportSegmentsJSON reads the segment document at path.
func ImportSegmentsJSON(path string) ([]geom.Segment, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSegmentsJSON(f)
}

// WriteSegmentsJSON encodes segments as a segment document.
// Untagged segments are written without a "tag" field.
func WriteSegmentsJSON(w io.Writer, segments []geom.Segment) error {
	out := segmentFile{Segments: make([]segment, len(segments))}
	for i, s := range segments {
		out.Segments[i] = segment{A: s.A, B: s.B}
		if s.Tagged {
			tag := s.Tag
			out.Segments[i].Tag = &tag
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.IOFailure(enc.Encode(out), "encode segments")
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.IOFailure(err, "open %s", path)
	}
	return f, nil
}
