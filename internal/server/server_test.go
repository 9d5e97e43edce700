package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

const testOutline = "# Roadmap\n## Now\n- Auth\n- Billing\n## Next\n## Later\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
	srv := httptest.NewServer(New(runner, logger, config.Default().Server))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body healthResponse
	decode(t, resp, &body)
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("health = %+v", body)
	}
}

func TestParse(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/api/parse", map[string]any{"outline": testOutline, "expand_all": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body parseResponse
	decode(t, resp, &body)
	if body.Tree == nil || body.Tree.Text != "Roadmap" {
		t.Fatalf("tree = %+v", body.Tree)
	}
	if body.Nodes != 6 || body.Visible != 6 || body.MaxDepth != 2 {
		t.Errorf("counts = %d/%d/%d, want 6/6/2", body.Nodes, body.Visible, body.MaxDepth)
	}
	if len(body.Hash) != 64 {
		t.Errorf("hash = %q", body.Hash)
	}
}

func TestLayoutCaches(t *testing.T) {
	srv := newTestServer(t)
	req := map[string]any{"outline": testOutline, "direction": "right"}

	first := post(t, srv, "/api/layout", req)
	if first.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", first.StatusCode)
	}
	if got := first.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	var d diagram.Diagram
	decode(t, first, &d)
	if len(d.Nodes) != 4 {
		t.Errorf("nodes = %d, want 4", len(d.Nodes))
	}
	for _, n := range d.Nodes {
		if !n.IsRoot() && n.Side != "right" {
			t.Errorf("node %s on side %q, want right", n.ID, n.Side)
		}
	}

	second := post(t, srv, "/api/layout", req)
	if got := second.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
}

func TestRenderAndShare(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/api/render", map[string]any{
		"outline": testOutline,
		"formats": []string{"svg", "png"},
		"style":   "dark",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body renderResponse
	decode(t, resp, &body)
	if !strings.Contains(body.Artifacts["svg"], "<svg") {
		t.Error("svg artifact missing")
	}
	if _, ok := body.Artifacts["png"]; ok {
		t.Error("binary artifacts should not be inlined")
	}
	pngURL := body.URLs["png"]
	if pngURL != "/api/diagrams/"+body.ID+".png" {
		t.Fatalf("png url = %q", pngURL)
	}

	got, err := http.Get(srv.URL + pngURL)
	if err != nil {
		t.Fatal(err)
	}
	defer got.Body.Close()
	if got.StatusCode != http.StatusOK {
		t.Fatalf("share status = %d", got.StatusCode)
	}
	if ct := got.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got.Header.Get("X-Cache") != "HIT" {
		t.Error("shared png should come from the artifact cache")
	}
	data, _ := io.ReadAll(got.Body)
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("share did not return a PNG")
	}

	// A format that was not rendered up front is rendered on demand.
	dot, err := http.Get(srv.URL + "/api/diagrams/" + body.ID + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	defer dot.Body.Close()
	if dot.StatusCode != http.StatusOK {
		t.Errorf("dot status = %d", dot.StatusCode)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad json", http.MethodPost, "/api/layout", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", http.MethodPost, "/api/layout", `{"outlines":"x"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad direction", http.MethodPost, "/api/layout", `{"outline":"# a","direction":"up"}`, http.StatusBadRequest, "INVALID_DIRECTION"},
		{"bad format", http.MethodPost, "/api/render", `{"outline":"# a","formats":["gif"]}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad share id", http.MethodGet, "/api/diagrams/nope.svg", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"missing share", http.MethodGet, "/api/diagrams/00000000-0000-4000-8000-000000000000.svg", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body map[string]string
			decode(t, resp, &body)
			if body["code"] != tt.code {
				t.Errorf("code = %q, want %q", body["code"], tt.code)
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	cfg := config.Default().Server
	cfg.MaxBodyBytes = 64
	h := New(runner, logger, cfg)

	body := `{"outline":"` + strings.Repeat("a", 200) + `"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(body)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}
