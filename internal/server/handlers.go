package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/trussmesh/pkg/buildinfo"
	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
	trussio "github.com/matzehuels/trussmesh/pkg/io"
	"github.com/matzehuels/trussmesh/pkg/mesh"
	"github.com/matzehuels/trussmesh/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatVTK:  "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDXF:  "application/dxf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
}

type requestBody struct {
	Options pipeline.Options `json:"options"`
}

type pointJSON struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

type edgeJSON struct {
	ID       int    `json:"id"`
	A        int    `json:"a"`
	B        int    `json:"b"`
	Tag      string `json:"tag,omitempty"`
	TagIndex int    `json:"tag_index"`
}

type meshResponse struct {
	RequestID string       `json:"request_id"`
	Hash      string       `json:"hash"`
	Points    []pointJSON  `json:"points"`
	Edges     []edgeJSON   `json:"edges"`
	Tags      []string     `json:"tags"`
	Labels    []mesh.Label `json:"labels"`
}

type errorResponse struct {
	RequestID string     `json:"request_id"`
	Error     errorField `json:"error"`
}

type errorField struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleMesh(w http.ResponseWriter, r *http.Request) {
	segments, opts, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.runner.Build(r.Context(), segments, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := meshResponse{
		RequestID: RequestID(r.Context()),
		Hash:      pipeline.MeshHash(m),
		Points:    make([]pointJSON, len(m.Points)),
		Edges:     make([]edgeJSON, len(m.Edges)),
		Tags:      m.Tags(),
		Labels:    m.Labels(),
	}
	for i, p := range m.Points {
		resp.Points[i] = pointJSON{ID: p.ID, X: p.X, Y: p.Y, Z: p.Z}
	}
	for i, e := range m.Edges {
		resp.Edges[i] = edgeJSON{ID: e.ID, A: e.A, B: e.B, Tag: e.Tag, TagIndex: e.TagIndex}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	segments, opts, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(opts.Formats) > 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "export takes one format, got %d", len(opts.Formats)))
		return
	}
	opts.Segments = segments
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Mesh-Hash", res.MeshHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// decodeRequest reads the segments and options of a request body.
// opts.Formats defaults to vtk.
func decodeRequest(w http.ResponseWriter, r *http.Request) ([]geom.Segment, pipeline.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	segments, err := trussio.ReadSegmentsJSON(bytes.NewReader(body))
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	if segments == nil {
		segments = []geom.Segment{}
	}

	var req requestBody
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode options")
	}
	opts := req.Options
	opts.Input = ""
	opts.Refresh = false
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatVTK}
	}
	return segments, opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{
		RequestID: RequestID(r.Context()),
		Error:     errorField{Code: code, Message: errors.UserMessage(err)},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
