package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/observability"
)

type recordedHTTP struct {
	observability.NoopHTTPHooks
	requests int
	status   int
}

func (h *recordedHTTP) OnRequest(context.Context, string, string) { h.requests++ }

func (h *recordedHTTP) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.status = status
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{
			name:    "implicit ok",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) },
			want:    http.StatusOK,
		},
		{
			name:    "explicit status",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) },
			want:    http.StatusTeapot,
		},
		{
			name:    "no write",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			want:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hooks := &recordedHTTP{}
			observability.SetHTTPHooks(hooks)
			t.Cleanup(observability.Reset)

			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{})
			h := RequestLogger(logger)(tt.handler)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/thing", nil))

			if hooks.requests != 1 {
				t.Errorf("OnRequest calls = %d, want 1", hooks.requests)
			}
			if hooks.status != tt.want {
				t.Errorf("OnResponse status = %d, want %d", hooks.status, tt.want)
			}
			out := buf.String()
			if !strings.Contains(out, "path=/api/thing") {
				t.Errorf("log missing path: %q", out)
			}
		})
	}
}

func TestRequestLoggerKeepsFlusher(t *testing.T) {
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	var flushable bool
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		flushable = ok
		if ok {
			f.Flush()
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if !flushable {
		t.Fatal("wrapped writer should implement http.Flusher")
	}
	if !rec.Flushed {
		t.Error("Flush should reach the underlying writer")
	}
}
