package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

const family = `{
  "nodes": [{"id": "Mary"}, {"id": "Roy"}, {"id": "Frank"}, {"id": "Melanie"}],
  "links": [
    {"source": "Mary", "target": "Roy"},
    {"source": "Mary", "target": "Frank"},
    {"source": "Mary", "target": "Melanie"},
    {"source": "Frank", "target": "Melanie"}
  ]
}`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(&bytes.Buffer{})
	return New(pipeline.NewRunner(c, nil, logger), logger, opts...)
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/v1/render", `{"graph": `+family+`, "formats": ["svg", "json"], "ticks": 10, "highlight": "Mary"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var resp RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(resp.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing")
	}
	if len(resp.Artifacts["json"]) == 0 {
		t.Error("json artifact missing")
	}
	if resp.Stats.Nodes != 4 || resp.Stats.Ticks != 10 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if resp.Layout != "DEFAULT" {
		t.Errorf("layout = %s", resp.Layout)
	}
	if resp.RequestID == "" || resp.RequestID != rec.Header().Get(RequestIDHeader) {
		t.Errorf("request id %q vs header %q", resp.RequestID, rec.Header().Get(RequestIDHeader))
	}

	again := post(t, s, "/v1/render", `{"graph": `+family+`, "formats": ["svg", "json"], "ticks": 10, "highlight": "Mary"}`)
	var cached RenderResponse
	json.Unmarshal(again.Body.Bytes(), &cached)
	if !cached.Stats.RenderCache {
		t.Error("second request should be served from cache")
	}
}

func TestRenderFormat(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/v1/render/dot", `{"graph": `+family+`, "ticks": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %s", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "graph") {
		t.Errorf("body = %.40q", rec.Body.String())
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/v1/layout", `{"graph": `+family+`, "ticks": 10, "layout": "STRONGTREE", "automatic_layout": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp LayoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Positions) != 4 || len(resp.Frame.Nodes) != 4 {
		t.Errorf("positions = %d, frame nodes = %d", len(resp.Positions), len(resp.Frame.Nodes))
	}
	if resp.Layout != "STRONGTREE" {
		t.Errorf("layout = %s", resp.Layout)
	}
}

func TestErrors(t *testing.T) {
	s := newTestServer(t, WithMaxTicks(100), WithMaxBodyBytes(4096))

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad json", "/v1/render", `{`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/render", `{"graph": {}, "bogus": 1}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no graph", "/v1/render", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"graph path", "/v1/render", `{"graph_path": "/etc/passwd"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"too many ticks", "/v1/render", `{"graph": ` + family + `, "ticks": 5000}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "/v1/render/gif", `{"graph": ` + family + `}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad layout", "/v1/render", `{"graph": ` + family + `, "layout": "SPIRAL"}`, http.StatusBadRequest, "INVALID_LAYOUT"},
		{"bad config", "/v1/render", `{"graph": ` + family + `, "config": {"width": 10}}`, http.StatusBadRequest, "INVALID_CONFIG"},
		{"duplicate ids", "/v1/render", `{"graph": {"nodes": [{"id": "a"}, {"id": "a"}]}}`, http.StatusBadRequest, "INVALID_GRAPH"},
		{"too large", "/v1/render", `{"graph": {"nodes": [` + strings.Repeat(`{"id": "x"},`, 500) + `{"id": "y"}]}}`, http.StatusRequestEntityTooLarge, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", resp.Code, tt.code, resp.Error)
			}
		})
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t)
	const id = "0b5f5a52-8f0c-4a4e-9b7e-5f4f4b1c2d3e"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}
