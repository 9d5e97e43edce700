package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mindmap/pkg/observability"
)

// RequestLogger logs every request and reports it to the HTTP hooks.
func RequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hooks := observability.HTTP()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			dur := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", dur,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
