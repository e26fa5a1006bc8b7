package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/trussmesh/pkg/observability"
)

const triangle = `{"segments": [
	{"a": {"x": 0, "y": 0, "z": 0}, "b": {"x": 4, "y": 0, "z": 0}, "tag": "chord"},
	{"a": {"x": 4, "y": 0, "z": 0}, "b": {"x": 2, "y": 0, "z": 3}, "tag": "diagonal"},
	{"a": {"x": 2, "y": 0, "z": 3}, "b": {"x": 0, "y": 0, "z": 0}, "tag": "diagonal"}
]`

func do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	New(nil, nil).Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("request id %q is not a uuid", rec.Header().Get(RequestIDHeader))
	}
}

func TestMesh(t *testing.T) {
	rec := do(t, http.MethodPost, "/v1/mesh", triangle+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp meshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Points) != 3 || len(resp.Edges) != 3 {
		t.Fatalf("got %d points, %d edges", len(resp.Points), len(resp.Edges))
	}
	if len(resp.Tags) != 2 || resp.Tags[0] != "chord" || resp.Tags[1] != "diagonal" {
		t.Errorf("tags = %v", resp.Tags)
	}
	if len(resp.Labels) != 6 || resp.Labels[0].Text != "n:0" || resp.Labels[3].Text != "e:0 chord" {
		t.Errorf("labels = %+v", resp.Labels)
	}
	if resp.RequestID != rec.Header().Get(RequestIDHeader) {
		t.Errorf("request id %q does not match header", resp.RequestID)
	}
	if resp.Hash == "" {
		t.Error("hash missing")
	}
}

func TestExport(t *testing.T) {
	rec := do(t, http.MethodPost, "/v1/export", triangle+`, "options": {"unit": "mm", "title": "roof"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "# vtk DataFile Version 3.0\nroof -- tags:chord;diagonal\nASCII\n") {
		t.Errorf("body:\n%s", body)
	}
	if !strings.Contains(body, "101.600") {
		t.Error("coordinates not converted to mm")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestExport_DOT(t *testing.T) {
	rec := do(t, http.MethodPost, "/v1/export", triangle+`, "options": {"formats": ["dot"]}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.HasPrefix(rec.Body.String(), "graph G {") {
		t.Errorf("body:\n%s", rec.Body)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", "/v1/mesh", `{"segments": [`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad tag", "/v1/mesh", `{"segments": [{"a": {}, "b": {"x": 1}, "tag": "a;b"}]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad ordering", "/v1/mesh", `{"segments": [], "options": {"ordering": "random"}}`, http.StatusBadRequest, "INVALID_ORDERING"},
		{"bad unit", "/v1/export", `{"segments": [], "options": {"unit": "furlong"}}`, http.StatusBadRequest, "INVALID_UNIT"},
		{"bad format", "/v1/export", `{"segments": [], "options": {"formats": ["stl"]}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"two formats", "/v1/export", `{"segments": [], "options": {"formats": ["vtk", "json"]}}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body %q: %v", rec.Body, err)
			}
			if string(resp.Error.Code) != tt.code {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.code)
			}
		})
	}
}

func TestInputFieldIgnored(t *testing.T) {
	rec := do(t, http.MethodPost, "/v1/export", `{"segments": [], "options": {"input": "/etc/passwd.json"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "POINTS 0 float") {
		t.Errorf("server read a file input:\n%s", rec.Body)
	}
}

func TestRequestIDKept(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	New(nil, nil).Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	do(t, http.MethodGet, "/healthz", "")
	do(t, http.MethodPost, "/v1/mesh", "{")

	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("statuses = %v", hooks.statuses)
	}
}
